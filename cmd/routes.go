/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the compiled routes",
	Run: func(cmd *cobra.Command, args []string) {
		_, _, catalog, code := setup(cmd)
		if code != exitOK {
			os.Exit(code)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tHANDLER")
		for _, route := range catalog.Routes() {
			fmt.Fprintf(w, "%v\t%v\t%v\n", route.Method, route.Template.Pattern, route.Handler)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
