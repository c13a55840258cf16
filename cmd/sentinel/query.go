package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var detailCmd = &cobra.Command{
	Use:   "detail SYMBOL",
	Short: "Print the full analysis of one symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newService().Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a)
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview [SYMBOLS...]",
	Short: "Print overview rows for the given symbols or the configured universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbols := args
		if len(symbols) == 0 {
			symbols = cfg.Overview.Symbols
		}
		entries := newService().Overview(cmd.Context(), symbols)
		if len(entries) == 0 {
			return fmt.Errorf("no data for any of %d symbols", len(symbols))
		}
		return printJSON(cmd.OutOrStdout(), entries)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Suggest symbols matching a company name or ticker",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := newService().Search(cmd.Context(), strings.Join(args, " "))
		return printJSON(cmd.OutOrStdout(), results)
	},
}
