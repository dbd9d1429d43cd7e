/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"log"
	"net/http"
	"os"

	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/masnyjimmy/srihc/server"
	"github.com/spf13/cobra"
)

// ==================== Cobra Command ====================

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generation over HTTP for editor plugins",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, src, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("origin") {
			cfg.Server.AllowedOrigins, _ = cmd.Flags().GetStringSlice("origin")
		}

		Serve(cfg, src, catalog)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().StringSlice("origin", nil, "Allowed CORS origins (overrides server.allowedOrigins)")
}

func Serve(cfg *config.Config, src source, catalog *resolve.Catalog) {

	options := server.DefaultOptions()
	options.BaseUrl = cfg.Server.BasePath
	options.AllowedOrigins = cfg.Server.AllowedOrigins

	bridge := server.New(catalog, scaffold.OptionsFromConfig(cfg), options)

	watcher, err := server.WatchFile(src.filename, options.DebounceTime)

	if err != nil {
		log.Printf("Unable to watch for file updates: %v", err)
	} else {
		defer watcher.Close()

		watchHandler := func() {
			for err := range watcher.Update {
				if err != nil {
					log.Print(err)
					continue
				}

				catalog, err := src.load(cfg)
				if err != nil {
					log.Printf("Unable to update metadata: %v", err)
					bridge.ReportError(err)
					continue
				}

				log.Printf("Reloaded %v route(s)", len(catalog.Routes()))
				bridge.SetResolver(catalog)
			}
		}
		go watchHandler()
	}

	log.Printf("Started server at http://%v%v", cfg.Server.Addr, cfg.Server.BasePath)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, bridge.Handler(nil)))
}
