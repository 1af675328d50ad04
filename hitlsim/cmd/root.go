// Package cmd provides the command-line interface for hitlsim.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "hitlsim",
	Short: "hitlsim simulates a human-in-the-loop agent pipeline and " +
		"serves its schedule for inspection.",
	Long: `hitlsim runs a deterministic simulation of items flowing through ` +
		`an agent processing loop with a human reviewer: items are admitted ` +
		`through a bounded input queue, orbit the loop, and either complete ` +
		`autonomously or wait for human service. The schedule can be ` +
		`printed, recorded to SQLite, or served over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

// parseOverrides turns repeated key=value flags into a scenario override
// map, guessing the value type the way a JSON decoder would.
func parseOverrides(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	overrides := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf(
				"override %q is not in key=value form", pair)
		}

		switch {
		case raw == "true" || raw == "false":
			overrides[key] = raw == "true"
		default:
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"override %q has a non-numeric value", pair)
			}
			overrides[key] = value
		}
	}

	return overrides, nil
}
