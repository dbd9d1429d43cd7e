/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate and compile the endpoint metadata",
	Run: func(cmd *cobra.Command, args []string) {
		_, src, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		log.Printf("%v is valid, %v route(s)", src.filename, len(catalog.Routes()))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
