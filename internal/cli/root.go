package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"trivia-quiz-service/internal/config"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "trivia-quiz",
		Short:        "Trivia quiz web service backed by the Open Trivia DB",
		SilenceUsage: true,
	}

	// empty means "use the config file", so PORT only overrides when set
	cmd.PersistentFlags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewJobsCmd(&configPath, &port))
	return cmd
}

// loadConfig reads path, falling back to defaults when the file does not exist.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func pickPort(flag, configured, fallback string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return fallback
	}
}
