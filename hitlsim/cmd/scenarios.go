package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hitlsim/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the available scenario presets.",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range scenario.Names() {
			cfg, err := scenario.Resolve(name, nil)
			if err != nil {
				panic(err)
			}

			fmt.Printf("%-20s %3d items, %3.0f%% auto, "+
				"%3.0f%% return, capacity %d\n",
				name, cfg.ItemCount,
				cfg.AutoProcessRate*100, cfg.ReturnToAgentRate*100,
				cfg.MaxInputQueueCapacity)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
