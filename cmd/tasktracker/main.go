package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/burnsba/tasktracker/internal/config"
	"github.com/burnsba/tasktracker/internal/logging"
	"github.com/burnsba/tasktracker/internal/store"
)

var configPath string

// appEnv is what every command needs once the config has been read.
type appEnv struct {
	manager *config.Manager
	cfg     config.Config
	clock   clockwork.Clock
	storage *store.Storage
}

var env *appEnv

var rootCmd = &cobra.Command{
	Use:   "tasktracker [file]",
	Short: "Track the time spent on a single task",
	Long: `Task Time Tracker keeps a running total of time spent on one task.
Each task lives in its own file; run without a command to open the overlay
window, optionally loading the given task file.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runGUI,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is tasktracker/tasktracker.yml in the user config dir)")
	rootCmd.AddCommand(newCmd, showCmd, trackCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	m, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := m.Config()
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	clock := clockwork.NewRealClock()
	env = &appEnv{
		manager: m,
		cfg:     cfg,
		clock:   clock,
		storage: store.NewStorage(
			store.WithClock(clock),
			store.WithSaveInterval(cfg.SaveInterval),
			store.WithLogger(logging.Logger),
		),
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
