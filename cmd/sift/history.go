package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/dkoosis/sift/internal/config"
	"github.com/dkoosis/sift/internal/history"
	"github.com/dkoosis/sift/pkg/report"
)

func (a *app) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded by analyze --history.",
		Args:  cobra.NoArgs,
		RunE:  a.history,
	}
	cmd.Flags().String("history", "", `SQLite run history path (default: the user config dir)`)
	cmd.Flags().Int("limit", 20, "number of runs listed (0 lists all)")
	return cmd
}

func (a *app) history(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.History == "" {
		cfg.History = config.HistoryDefault
	}
	path, err := cfg.HistoryPath(history.DefaultPath)
	if err != nil {
		return err
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded in %s\n", path)
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.RecordedAt.Local().Format(time.DateTime),
			r.Label,
			strconv.Itoa(r.Sources),
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Errors),
			strconv.Itoa(r.Warnings),
			strconv.Itoa(r.Infos),
		})
	}
	return report.WriteTable(out, []string{"Run", "Recorded", "Label", "Captures", "Total", "Errors", "Warnings", "Info"}, rows, tw.AlignLeft)
}
