package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func shouldColor(mode colorMode) bool {
	switch mode {
	case colorModeOn:
		return true
	case colorModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// resolveColor reads the persistent --color flag, falling back to the
// project config when the flag was left on auto.
func resolveColor(cmd *cobra.Command, cfg *projectConfig) (bool, error) {
	raw, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readColorMode(raw)
	if err != nil {
		return false, err
	}
	if mode == colorModeAuto && cfg != nil && cfg.Output.Color != "" {
		if mode, err = readColorMode(cfg.Output.Color); err != nil {
			return false, fmt.Errorf("warden.toml: %w", err)
		}
	}
	return shouldColor(mode), nil
}
