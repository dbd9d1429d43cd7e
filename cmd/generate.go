/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/masnyjimmy/srihc/httpfile"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill the request under the caret of an .http file",
	Long: `Generate resolves the request under the caret against the endpoint
metadata and inserts what is missing: the query string after the request
target, Content-Type headers after the existing headers and the body
skeleton or multipart section at the caret.

The caret has to sit in the blank area after the headers of a request that
has no body yet. Otherwise nothing is generated.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		file, _ := cmd.Flags().GetString("file")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		var pos caret
		pos.offset, _ = cmd.Flags().GetInt("caret")
		pos.line, _ = cmd.Flags().GetInt("line")
		pos.column, _ = cmd.Flags().GetInt("column")

		if res := GenerateFile(file, pos, catalog, scaffold.OptionsFromConfig(cfg), dryRun); res != exitOK {
			os.Exit(res)
		}
	},
}

type caret struct {
	offset int
	line   int
	column int
}

func (c caret) resolve(doc *httpfile.Document) (int, error) {
	if c.offset >= 0 {
		return c.offset, nil
	}
	if c.line <= 0 {
		return 0, fmt.Errorf("either --caret or --line is required")
	}
	offset, ok := doc.LineColumnOffset(c.line, c.column)
	if !ok {
		return 0, fmt.Errorf("position %d:%d is outside the document", c.line, c.column)
	}
	return offset, nil
}

func GenerateFile(file string, pos caret, resolver resolve.Resolver, opts scaffold.Options, dryRun bool) int {

	log.Printf("Reading %v", file)

	bytes, err := os.ReadFile(file)
	if err != nil {
		errorLogger.Printf("Unable to read file \"%v\": %v", file, err)
		return exitInput
	}

	doc := httpfile.Parse(string(bytes))

	offset, err := pos.resolve(doc)
	if err != nil {
		errorLogger.Print(err)
		return exitInput
	}

	text, plan, err := scaffold.Run(doc, offset, resolver, opts)
	if err != nil {
		if scaffold.IsSkip(err) {
			log.Printf("Nothing generated: %v", err)
			return exitOK
		}
		errorLogger.Printf("Generation failed: %v", err)
		return exitInput
	}

	log.Printf("Resolved %v %v to %v", plan.Endpoint.Method, plan.Endpoint.Pattern, plan.Endpoint.Handler)

	if !plan.BodyTypeResolved {
		log.Printf("Unknown body type, body skeleton left empty")
	}

	if len(plan.Edits) == 0 {
		log.Printf("Endpoint takes no query, body or file parameters")
		return exitOK
	}

	if dryRun {
		fmt.Print(text)
		return exitOK
	}

	log.Printf("Writing %v edit(s) to %v", len(plan.Edits), file)

	if err := os.WriteFile(file, []byte(text), 0644); err != nil {
		errorLogger.Printf("Unable to write file %v: %v", file, err)
		return exitOutput
	}

	return exitOK
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("file", "f", "", ".http file to fill")
	generateCmd.MarkFlagRequired("file")
	generateCmd.MarkFlagFilename("file", "http", "rest")

	generateCmd.Flags().Int("caret", -1, "Caret offset in bytes")
	generateCmd.Flags().Int("line", 0, "Caret line, 1-based")
	generateCmd.Flags().Int("column", 1, "Caret column, 1-based")
	generateCmd.MarkFlagsMutuallyExclusive("caret", "line")

	generateCmd.Flags().Bool("dry-run", false, "Print the result instead of writing the file")
}
