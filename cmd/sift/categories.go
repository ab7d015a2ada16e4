package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/classify"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/report"
)

func (a *app) newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the classification taxonomy in match order.",
		Long: `Categories lists every category in the order rules are tried; the first
match wins. Messages matching no rule fall back to "other".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			showPatterns, _ := cmd.Flags().GetBool("patterns")
			return listCategories(cmd.OutOrStdout(), showPatterns)
		},
	}
	cmd.Flags().Bool("patterns", false, "print the expressions of each category")
	return cmd
}

func listCategories(w io.Writer, showPatterns bool) error {
	rules := classify.Rules()
	rows := make([][]string, 0, len(rules))
	for i, r := range rules {
		info := aggregate.PriorityOf(r.Category)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(r.Category),
			string(info.Priority),
			info.Description,
			strconv.Itoa(len(r.Patterns)),
		})
	}
	other := aggregate.PriorityOf(diag.CategoryOther)
	rows = append(rows, []string{
		strconv.Itoa(len(rules) + 1), string(diag.CategoryOther), string(other.Priority), other.Description, "fallback",
	})
	if err := report.WriteTable(w, []string{"#", "Category", "Priority", "Description", "Patterns"}, rows, tw.AlignLeft); err != nil {
		return err
	}

	if !showPatterns {
		return nil
	}
	for _, r := range rules {
		if len(r.Patterns) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", r.Category)
		for _, p := range r.Patterns {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	return nil
}
