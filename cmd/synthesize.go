/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
	"github.com/spf13/cobra"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Print the request fragments for an endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		method, _ := cmd.Flags().GetString("method")
		path, _ := cmd.Flags().GetString("path")
		asJSON, _ := cmd.Flags().GetBool("json")

		if res := Synthesize(method, path, catalog, scaffold.OptionsFromConfig(cfg), asJSON); res != exitOK {
			os.Exit(res)
		}
	},
}

func Synthesize(method, path string, resolver resolve.Resolver, opts scaffold.Options, asJSON bool) int {
	plan, err := scaffold.Synthesize(resolver, method, path, opts)
	if err != nil {
		errorLogger.Print(err)
		return exitInput
	}

	if asJSON {
		bytes, err := json.MarshalIndent(plan.Result, "", "  ")
		if err != nil {
			errorLogger.Printf("Unable to encode result: %v", err)
			return exitOutput
		}
		fmt.Println(string(bytes))
		return exitOK
	}

	fmt.Print(render(method, path, plan))
	return exitOK
}

// render lays the fragments out as a request the way generate would.
func render(method, path string, plan *scaffold.Plan) string {
	if method == "" {
		method = plan.Endpoint.Method
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(method) + " " + path + plan.Result.Query + "\n")
	for _, h := range plan.Result.Headers {
		b.WriteString(h.String() + "\n")
	}

	parts := make([]string, 0, 2)
	for _, part := range []string{plan.Result.Body, plan.Result.Form} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) != 0 {
		b.WriteString("\n" + strings.Join(parts, "\n") + "\n")
	}

	return b.String()
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().StringP("method", "X", "", "HTTP method, narrows the match when several endpoints share a path")
	synthesizeCmd.Flags().StringP("path", "p", "", "Request path")
	synthesizeCmd.MarkFlagRequired("path")
	synthesizeCmd.Flags().Bool("json", false, "Print the fragments as JSON")
}
