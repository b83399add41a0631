package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"warden/internal/report"
	"warden/internal/ui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [flags] <file.txt>",
	Short: "Review findings interactively",
	Long:  "Walk the findings of a report one by one in a terminal UI, applying or dismissing each.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().String("report", "", "path to the saved report (default <file>.warden)")
}

func runReview(cmd *cobra.Command, args []string) error {
	textPath := args[0]

	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return err
	}
	if reportPath == "" {
		reportPath = textPath + ".warden"
	}
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("review requires a terminal; use 'warden apply' or 'warden show' instead")
	}

	cfg, err := loadProjectConfig(textPath)
	if err != nil {
		return err
	}
	text, sess, err := loadSession(textPath, reportPath, cfg)
	if err != nil {
		return err
	}
	if sess.Len() == 0 {
		fmt.Println("no findings")
		return nil
	}

	model := ui.NewReviewModel(text, sess)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("review: %w", err)
	}
	if err := model.Err(); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	if model.AppliedCount() == 0 {
		fmt.Printf("no changes, %d finding(s) remaining\n", sess.Len())
		return nil
	}
	final := model.Text()
	if err := os.WriteFile(textPath, []byte(final.String()), 0o644); err != nil {
		return fmt.Errorf("review: failed to write %q: %w", textPath, err)
	}
	rep := report.Build(final, sess.Errors(), sess.Suggestions())
	if err := report.Save(rep, reportPath); err != nil {
		return fmt.Errorf("review: failed to refresh report %q: %w", reportPath, err)
	}
	fmt.Printf("applied %d finding(s), %d remaining\n", model.AppliedCount(), sess.Len())
	return nil
}
