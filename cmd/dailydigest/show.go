package main

import (
	"dailydigest/internal/ingest"
	"dailydigest/internal/render"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show DATE [ID]",
	Short: "Print one issue's digest sections, or one paper's blocks",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		res := ingest.NewResolver(cfg.Build.IssuesDir)
		out := cmd.OutOrStdout()

		if len(args) == 2 {
			it, err := res.Item(args[0], args[1])
			if err != nil {
				return err
			}
			if showJSON {
				return writeJSON(cmd, it)
			}
			fmt.Fprintf(out, "%s\n%s\n", it.Title, it.Authors)
			for _, b := range render.ParseBlocks(it.Markdown) {
				if len(b.Items) > 0 {
					fmt.Fprintf(out, "[%s] %v\n", b.Kind, b.Items)
					continue
				}
				fmt.Fprintf(out, "[%s] %s\n", b.Kind, b.Text)
			}
			return nil
		}

		is, err := res.Issue(args[0])
		if err != nil {
			return err
		}
		if showJSON {
			return writeJSON(cmd, is)
		}
		sec := render.ParseDigest(is.Digest)
		fmt.Fprintf(out, "%s (%d papers)\n", is.Title, len(is.Papers))
		for _, h := range sec.Highlights {
			fmt.Fprintf(out, "  * %s\n", h)
		}
		for i, tr := range sec.Trends {
			fmt.Fprintf(out, "  %d. %s\n", i+1, tr)
		}
		for _, f := range sec.Focus {
			fmt.Fprintf(out, "  # %s\n    %s\n", f.Title, f.Text)
		}
		for _, p := range is.Papers {
			fmt.Fprintf(out, "- %s  %s\n", p.ID, p.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the resolved model as JSON")
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
