package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/hitlsim/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a scenario's schedule over HTTP.",
	Long: "`serve --scenario [name]` starts the monitoring server for the " +
		"named scenario. The port comes from --port, or from HITLSIM_PORT " +
		"in the environment or a .env file; otherwise a random port is " +
		"picked.",
	Run: func(cmd *cobra.Command, _ []string) {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		sets, _ := cmd.Flags().GetStringArray("set")
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")

		overrides, err := parseOverrides(sets)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		builder := simulation.MakeBuilder().
			WithScenario(scenarioName)
		for key, value := range overrides {
			builder = builder.WithOverride(key, value)
		}

		if port == 0 {
			port = portFromEnv()
		}
		if port > 0 {
			builder = builder.WithMonitorPort(port)
		}

		s, err := builder.Build()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		if open {
			err = browser.OpenURL(s.GetMonitor().Addr())
			if err != nil {
				fmt.Fprintf(os.Stderr,
					"Could not open the dashboard: %v\n", err)
			}
		}

		select {}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("scenario", "efficient",
		"Scenario preset to serve")
	serveCmd.Flags().StringArray("set", nil,
		"Override a configuration field, e.g. --set itemCount=8")
	serveCmd.Flags().Int("port", 0, "Port for the monitoring server")
	serveCmd.Flags().Bool("open", false,
		"Open the dashboard in the default browser")
}

// portFromEnv reads HITLSIM_PORT from the environment, loading a .env
// file first when one exists.
func portFromEnv() int {
	_ = godotenv.Load()

	raw := os.Getenv("HITLSIM_PORT")
	if raw == "" {
		return 0
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr,
			"Ignoring non-numeric HITLSIM_PORT %q\n", raw)
		return 0
	}

	return port
}
