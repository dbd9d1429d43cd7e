/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/masnyjimmy/srihc/mcptools"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve synthesis and scaffolding as MCP tools over stdio",
	Run: func(cmd *cobra.Command, _ []string) {
		cfg, _, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		s := server.NewMCPServer(
			"srihc",
			"1.0.0",
			server.WithToolCapabilities(true),
			server.WithInstructions("srihc fills .http requests for Spring endpoints. Use synthesize_request to see what an endpoint expects and scaffold_http_file to insert it into an .http file."),
		)

		mcptools.RegisterAll(s, catalog, scaffold.OptionsFromConfig(cfg))

		log.Printf("Serving %v route(s) over stdio", len(catalog.Routes()))

		if err := server.ServeStdio(s); err != nil {
			errorLogger.Printf("Server error: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
