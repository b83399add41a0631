package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"warden/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit hash and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print warden version information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	switch strings.ToLower(versionFormat) {
	case "text":
		fmt.Printf("warden %s\n", version.Version)
		if versionShowFull {
			if version.GitCommit != "" {
				fmt.Printf("commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Printf("built:  %s\n", version.BuildDate)
			}
		}
	case "json":
		payload := versionPayload{Tool: "warden", Version: version.Version}
		if versionShowFull {
			payload.GitCommit = version.GitCommit
			payload.BuildDate = version.BuildDate
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unknown format %q (expected text|json)", versionFormat)
	}
	return nil
}
