/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/openapi"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert an OpenAPI document into endpoint metadata",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, code := loadConfig(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		if res := ImportFile(output, input, cfg); res != exitOK {
			os.Exit(res)
		}
	},
}

func ImportFile(output, input string, cfg *config.Config) int {

	log.Printf("Reading %v", input)

	bytes, err := os.ReadFile(input)
	if err != nil {
		errorLogger.Printf("Unable to read file \"%v\": %v", input, err)
		return exitInput
	}

	log.Print("Importing OpenAPI document..")

	document, err := openapi.Import(bytes, openapi.OptionsFromConfig(cfg))
	if err != nil {
		errorLogger.Printf("Import failed: %v", err)
		return exitMetadata
	}

	bytes, err = yaml.Marshal(document)
	if err != nil {
		errorLogger.Printf("Unable to encode metadata: %v", err)
		return exitOutput
	}

	if output == "" || output == "-" {
		os.Stdout.Write(bytes)
		return exitOK
	}

	log.Printf("Writing to %v", output)

	if err := os.WriteFile(output, bytes, 0644); err != nil {
		errorLogger.Printf("Unable to write file %v: %v", output, err)
		return exitOutput
	}

	return exitOK
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "openapi.yaml", "OpenAPI 3 document")
	importCmd.MarkFlagFilename("input", "yaml", "yml", "json")
	importCmd.Flags().StringP("output", "o", "-", "Metadata file to write, - for stdout")
	importCmd.MarkFlagFilename("output", "yaml", "yml")
}
