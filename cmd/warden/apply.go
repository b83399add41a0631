package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warden/internal/report"
	"warden/internal/session"
	"warden/internal/source"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <file.txt>",
	Short: "Apply replacement suggestions from a report to the text",
	Long:  "Load a saved report, apply its replacement suggestions to the text according to the chosen strategy, and write the result back.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().Bool("all", false, "apply every finding with a replacement")
	applyCmd.Flags().Bool("once", false, "apply the first applicable finding (default)")
	applyCmd.Flags().String("id", "", "apply the finding with a specific identifier")
	applyCmd.Flags().String("report", "", "path to the saved report (default <file>.warden)")
	applyCmd.Flags().Bool("dry-run", false, "print the result instead of writing the file")
}

func runApply(cmd *cobra.Command, args []string) error {
	textPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if reportPath == "" {
		reportPath = textPath + ".warden"
	}

	cfg, err := loadProjectConfig(textPath)
	if err != nil {
		return err
	}
	text, sess, err := loadSession(textPath, reportPath, cfg)
	if err != nil {
		return err
	}

	var applied int
	switch {
	case targetID != "":
		text, applied, err = applyByID(text, sess, targetID)
	case applyAll:
		text, applied, err = applyMany(text, sess, -1)
	default:
		text, applied, err = applyMany(text, sess, 1)
	}
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	if applied == 0 {
		fmt.Println("no applicable findings")
		return nil
	}

	if dryRun {
		fmt.Print(text.String())
		if s := text.String(); len(s) > 0 && s[len(s)-1] != '\n' {
			fmt.Println()
		}
	} else {
		if err := os.WriteFile(textPath, []byte(text.String()), 0o644); err != nil {
			return fmt.Errorf("apply: failed to write %q: %w", textPath, err)
		}
		// Applied edits shift every later span, so the old report no
		// longer describes the file. Refresh it with the survivors.
		rep := report.Build(text, sess.Errors(), sess.Suggestions())
		if err := report.Save(rep, reportPath); err != nil {
			return fmt.Errorf("apply: failed to refresh report %q: %w", reportPath, err)
		}
	}
	fmt.Printf("applied %d finding(s), %d remaining\n", applied, sess.Len())
	return nil
}

// applyOne performs the full edit handshake for a single item. Returns the
// new text and whether the edit landed.
func applyOne(text *source.Text, sess *session.Session, it session.Item) (*source.Text, bool, error) {
	req, ok := sess.RequestEdit(it)
	if !ok {
		return text, false, nil
	}
	edited, ok := text.Replace(req.Span, req.Replacement)
	if !ok {
		sess.CancelEdit()
		return text, false, nil
	}
	next, err := source.NewText(edited)
	if err != nil {
		sess.CancelEdit()
		return text, false, err
	}
	replText, err := source.NewText(req.Replacement)
	if err != nil {
		sess.CancelEdit()
		return text, false, err
	}
	sess.ConfirmEdit(int64(replText.ScalarCount()))
	return next, true, nil
}

// applyMany applies items front to back until limit edits landed or nothing
// applicable remains. limit < 0 means no limit.
func applyMany(text *source.Text, sess *session.Session, limit int) (*source.Text, int, error) {
	applied := 0
	skipped := make(map[string]bool)
	for limit < 0 || applied < limit {
		progressed := false
		for _, it := range sess.Items() {
			if skipped[it.Ref().Key()] {
				continue
			}
			next, ok, err := applyOne(text, sess, it)
			if err != nil {
				return text, applied, err
			}
			if !ok {
				// No replacement or stale span; do not retry it.
				skipped[it.Ref().Key()] = true
				continue
			}
			text = next
			applied++
			progressed = true
			break
		}
		if !progressed {
			break
		}
	}
	return text, applied, nil
}

func applyByID(text *source.Text, sess *session.Session, id string) (*source.Text, int, error) {
	for _, it := range sess.Items() {
		match := it.Ref().Key() == id ||
			(it.Sugg != nil && it.Sugg.ID == id) ||
			(it.Err != nil && it.Err.RuleID == id)
		if !match {
			continue
		}
		next, ok, err := applyOne(text, sess, it)
		if err != nil {
			return text, 0, err
		}
		if !ok {
			return text, 0, fmt.Errorf("finding %q has no applicable replacement", id)
		}
		return next, 1, nil
	}
	return text, 0, fmt.Errorf("no finding with id %q", id)
}
