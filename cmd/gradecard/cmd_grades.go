package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

// gradesCmd groups the one-shot grade operations
var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "List, show, add, edit and delete grades",
}

var gradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every category and subject with its scores",
	Args:  cobra.NoArgs,
	RunE:  runGradesList,
}

var gradesShowCmd = &cobra.Command{
	Use:   "show [tipo] [disciplina]",
	Short: "Print the numbered scores of a subject",
	Example: `  gradecard grades show Challenge "Front-End"
  gradecard grades show Global Python`,
	Args: cobra.ExactArgs(2),
	RunE: runGradesShow,
}

var gradesAddCmd = &cobra.Command{
	Use:     "add [tipo] [disciplina] [valor]",
	Short:   "Append a score to a subject",
	Example: `  gradecard grades add Checkpoint Java 8.5`,
	Args:    cobra.ExactArgs(3),
	RunE:    runGradesAdd,
}

var gradesEditCmd = &cobra.Command{
	Use:     "edit [tipo] [disciplina] [valorAntigo] [novoValor]",
	Short:   "Replace a score of a subject",
	Example: `  gradecard grades edit Global Python 6.5 7`,
	Args:    cobra.ExactArgs(4),
	RunE:    runGradesEdit,
}

var gradesDeleteCmd = &cobra.Command{
	Use:     "delete [tipo] [disciplina] [valor]",
	Short:   "Remove a score from a subject",
	Example: `  gradecard grades delete Challenge "Front-End" 8`,
	Args:    cobra.ExactArgs(3),
	RunE:    runGradesDelete,
}

func init() {
	gradesCmd.AddCommand(gradesListCmd)
	gradesCmd.AddCommand(gradesShowCmd)
	gradesCmd.AddCommand(gradesAddCmd)
	gradesCmd.AddCommand(gradesEditCmd)
	gradesCmd.AddCommand(gradesDeleteCmd)
}

func runGradesList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	set, err := svc.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load grades: %w", err)
	}
	printGrades(cmd.OutOrStdout(), set)
	return nil
}

func runGradesShow(cmd *cobra.Command, args []string) error {
	c, err := grades.ParseCategory(args[0])
	if err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	set, err := svc.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load grades: %w", err)
	}

	d := portfolio.BuildDetail(set, c, args[1])
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s\n", d.Category, d.Subject)
	if d.Empty() {
		fmt.Fprintln(out, portfolio.MsgNoScores)
		return nil
	}
	for _, line := range d.Lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

func runGradesAdd(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = svc.Add(cmd.Context(), portfolio.AddInput{Category: args[0], Subject: args[1], Value: args[2]})
	if err != nil {
		return fmt.Errorf("add grade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), portfolio.MsgAdded)
	return nil
}

func runGradesEdit(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = svc.Edit(cmd.Context(), portfolio.EditInput{
		Category: args[0],
		Subject:  args[1],
		OldValue: args[2],
		NewValue: args[3],
	})
	if err != nil {
		return fmt.Errorf("edit grade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), portfolio.MsgEdited)
	return nil
}

func runGradesDelete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = svc.Delete(cmd.Context(), portfolio.DeleteInput{Category: args[0], Subject: args[1], Value: args[2]})
	if err != nil {
		return fmt.Errorf("%s: %w", portfolio.MsgDeleteFailed, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), portfolio.MsgDeleted)
	return nil
}

// printGrades writes the set grouped by category in display order
func printGrades(w io.Writer, set grades.Set) {
	for _, c := range grades.Categories() {
		fmt.Fprintln(w, c)
		subjects := set.Subjects(c)
		if len(subjects) == 0 {
			fmt.Fprintln(w, "  -")
			continue
		}
		for _, subject := range subjects {
			scores, _ := set.Scores(c, subject)
			formatted := make([]string, 0, len(scores))
			for _, v := range scores {
				formatted = append(formatted, grades.FormatScore(v))
			}
			fmt.Fprintf(w, "  %s: %s\n", subject, strings.Join(formatted, ", "))
		}
	}
}
