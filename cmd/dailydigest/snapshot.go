package main

import (
	"context"
	"dailydigest/internal/build"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	snapshotDate  string
	snapshotForce bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write issue-data.json snapshots from the raw issue files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b := &build.Builder{Cfg: cfg}
		res, err := b.Run(context.Background(), snapshotDate, snapshotForce)
		if res != nil {
			for _, w := range res.Warnings {
				log.Printf("[warn] %s: %s", w.Path, w.Msg)
			}
		}
		if err != nil {
			return err
		}
		for _, d := range res.Written {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote    %s\n", d)
		}
		for _, d := range res.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "unchanged %s\n", d)
		}
		log.Printf("[snapshot] %d written, %d unchanged", len(res.Written), len(res.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapshotDate, "date", "", "only this issue (YYYY-MM-DD)")
	snapshotCmd.Flags().BoolVar(&snapshotForce, "force", false, "rewrite even when sources are unchanged")
}
