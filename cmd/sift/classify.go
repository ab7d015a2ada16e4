package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/classify"
)

func (a *app) newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [message...]",
		Short: "Show the category of a diagnostic message.",
		Long: `Classify prints the category and priority of a single message given as
arguments, or of every non-empty line read from stdin.`,
		Example: `  sift classify "Object is possibly 'null'."
  grep -h Error check.log | sift classify`,
		RunE: a.classify,
	}
}

func (a *app) classify(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		printClassified(cmd, strings.Join(args, " "))
		return nil
	}

	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		printClassified(cmd, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func printClassified(cmd *cobra.Command, msg string) {
	msg = classify.NormalizeMessage(msg)
	c := classify.Classify(msg)
	fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-8s %s\n", c, aggregate.PriorityOf(c).Priority, msg)
}
