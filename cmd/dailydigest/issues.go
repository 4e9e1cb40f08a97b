package main

import (
	"dailydigest/internal/app"
	"dailydigest/internal/domain/config"
	"dailydigest/internal/domain/content"
	"dailydigest/internal/index"
	"dailydigest/internal/ingest"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var issuesRoutes bool

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Refresh the index and list issues (or the full route table)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if issuesRoutes {
			rb := &app.RouteBuilder{Index: st}
			routes, err := rb.BuildAll()
			if err != nil {
				return err
			}
			for _, r := range routes {
				fmt.Fprintln(out, r.String())
			}
			return nil
		}

		issues, err := st.ListIssues(index.ListOptions{Page: 1, Size: 1000})
		if err != nil {
			return err
		}
		for _, is := range issues {
			fmt.Fprintf(out, "%s  %-3d  %s", is.Date, len(is.Papers), is.Title)
			if tags := is.TopTags(3); len(tags) > 0 {
				fmt.Fprintf(out, "  [%s]", strings.Join(tags, ", "))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
	issuesCmd.Flags().BoolVar(&issuesRoutes, "routes", false, "print every page route instead")
}

// openIndex 打开 bbolt 索引并用当前文件内容整体重建。
func openIndex(cfg config.Config) (*index.Store, error) {
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	results, warns, err := ingest.NewResolver(cfg.Build.IssuesDir).LoadAll()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("ingest: %w", err)
	}
	for _, w := range warns {
		log.Printf("[warn] %s: %s", w.Path, w.Msg)
	}
	issues := make([]content.Issue, 0, len(results))
	for _, r := range results {
		issues = append(issues, r.Issue)
	}
	if err := st.Rebuild(issues); err != nil {
		st.Close()
		return nil, fmt.Errorf("index rebuild: %w", err)
	}
	return st, nil
}
