package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ssai-innovid/internal/errmsg"
	"github.com/llehouerou/ssai-innovid/internal/journal"
	"github.com/llehouerou/ssai-innovid/internal/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
		}
		store, err := journal.Open(cfg.GetJournalConfig().Path)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpJournalOpen, err))
		}
		defer store.Close()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpJournalRead, err))
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "journal is empty")
			return nil
		}
		// oldest first so the output reads like the original log
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(out, "%-16s %s %-7s %s\n",
				humanize.Time(e.At), shortRun(e.RunID), e.Source, render.Sanitize(e.Message))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "number of entries, 0 for all")
}

func shortRun(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
