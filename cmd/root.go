/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/metadata"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "srihc",
	Short: "Scaffold .http requests for Spring endpoints",
	Long: `srihc fills the request under the caret of an .http file with what the
Spring endpoint serving it expects: a query string for @RequestParam
parameters, a JSON body skeleton for @RequestBody and a multipart section
for file uploads.

Endpoints are described by a YAML metadata file or an OpenAPI document.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var errorLogger *log.Logger = log.New(os.Stderr, "Error ", log.Ltime)

const (
	exitOK = iota
	exitConfig
	exitMetadata
	exitInput
	exitOutput
)

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultFileName, "Config file, ignored when missing unless given explicitly")
	rootCmd.PersistentFlags().StringP("metadata", "m", "endpoints.yaml", "Endpoint metadata or OpenAPI file")
	rootCmd.PersistentFlags().String("format", string(metadata.FormatAuto), "Metadata format: auto, metadata or openapi")

	rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	rootCmd.MarkPersistentFlagFilename("metadata", "yaml", "yml", "json")
}

func loadConfig(cmd *cobra.Command) (*config.Config, int) {
	path, _ := cmd.Flags().GetString("config")
	optional := !cmd.Flags().Changed("config")

	cfg, err := config.Load(path, optional)
	if err != nil {
		errorLogger.Print(err)
		return nil, exitConfig
	}

	return cfg, exitOK
}

type source struct {
	filename string
	format   metadata.Format
}

func metadataSource(cmd *cobra.Command) (source, error) {
	filename, _ := cmd.Flags().GetString("metadata")
	name, _ := cmd.Flags().GetString("format")

	format, err := metadata.ParseFormat(name)
	if err != nil {
		return source{}, err
	}

	return source{filename: filename, format: format}, nil
}

func (s source) load(cfg *config.Config) (*resolve.Catalog, error) {
	log.Printf("Loading %v", s.filename)
	return metadata.Load(s.filename, s.format, cfg)
}

// setup loads the config and the endpoint catalog every command needs.
func setup(cmd *cobra.Command) (*config.Config, source, *resolve.Catalog, int) {
	cfg, code := loadConfig(cmd)
	if code != exitOK {
		return nil, source{}, nil, code
	}

	src, err := metadataSource(cmd)
	if err != nil {
		errorLogger.Print(err)
		return nil, source{}, nil, exitConfig
	}

	catalog, err := src.load(cfg)
	if err != nil {
		errorLogger.Printf("Unable to load %v: %v", src.filename, err)
		return nil, source{}, nil, exitMetadata
	}

	return cfg, src, catalog, exitOK
}
