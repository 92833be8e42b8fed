package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent add/edit/delete attempts from the mutation journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.JournalPath == "" {
		return fmt.Errorf("mutation journal is disabled (journal is empty in config)")
	}

	db, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), entries)
	return nil
}

// printHistory renders journal entries as a table, newest first
func printHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No mutations recorded.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		value := grades.FormatScore(e.Value)
		if e.NewValue != nil {
			value += " → " + grades.FormatScore(*e.NewValue)
		}
		result := "ok"
		if !e.OK {
			result = e.Error
		}
		rows = append(rows, []string{
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			string(e.Op),
			string(e.Category),
			e.Subject,
			value,
			result,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("WHEN", "OP", "TIPO", "DISCIPLINA", "VALOR", "RESULT").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
