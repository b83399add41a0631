package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warden/internal/lintfmt"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <file.txt>",
	Short: "Show the findings of a report against its text",
	Long:  "Load a saved grammar/style report, verify it still matches the text, and render every finding with its sentence context.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("report", "", "path to the saved report (default <file>.warden)")
	showCmd.Flags().String("format", "", "output format (pretty|json|short)")
	showCmd.Flags().Bool("suggestions", true, "include replacement suggestions")
	showCmd.Flags().Int("max-words", 0, "window truncation threshold in words")
}

func runShow(cmd *cobra.Command, args []string) error {
	textPath := args[0]

	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return err
	}
	if reportPath == "" {
		reportPath = textPath + ".warden"
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	showSuggestions, err := cmd.Flags().GetBool("suggestions")
	if err != nil {
		return err
	}
	maxWords, err := cmd.Flags().GetInt("max-words")
	if err != nil {
		return err
	}
	maxFindings, err := cmd.Root().PersistentFlags().GetInt("max-findings")
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(textPath)
	if err != nil {
		return err
	}
	if maxWords == 0 && cfg != nil {
		maxWords = cfg.Output.MaxWords
	}
	if format == "" {
		format = "pretty"
		if cfg != nil && cfg.Output.Format != "" {
			format = cfg.Output.Format
		}
	}

	text, sess, err := loadSession(textPath, reportPath, cfg)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		useColor, colorErr := resolveColor(cmd, cfg)
		if colorErr != nil {
			return colorErr
		}
		lintfmt.Pretty(os.Stdout, text, sess, lintfmt.PrettyOpts{
			Color:           useColor,
			ShowSuggestions: showSuggestions,
			MaxFindings:     maxFindings,
			MaxWords:        maxWords,
		})
	case "json":
		if err := lintfmt.JSON(os.Stdout, text, sess, lintfmt.JSONOpts{
			IncludeWindows:     true,
			IncludeSuggestions: showSuggestions,
			Max:                maxFindings,
		}); err != nil {
			return err
		}
	case "short":
		lintfmt.Short(os.Stdout, sess)
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json|short)", format)
	}
	return nil
}
