// Command medtracker is a personal health diary: per half-hour slot it
// records a severity value, medications taken and free-text comments, kept
// in sync with a remote JSON document store and cached locally.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jgfrigo2/medtracker2/internal/config"
	"github.com/jgfrigo2/medtracker2/internal/localstore"
	"github.com/jgfrigo2/medtracker2/internal/remote"
	"github.com/jgfrigo2/medtracker2/internal/store"
)

var debug bool

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "medtracker",
		Short: "Track severity, medications and comments per half-hour slot",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(levelFromConfig())
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newMedsCmd())
	rootCmd.AddCommand(newPatternCmd())
	rootCmd.AddCommand(newCalCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func levelFromConfig() zerolog.Level {
	cfg, err := config.Load()
	if err != nil {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// withStore wires config, local cache, remote client and store together,
// runs fn, and flushes any pending save before the process exits.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ls, err := localstore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = ls.Close() }()

	rc := remote.New(cfg.BaseURL, cfg.HTTPTimeout)
	st := store.New(rc, ls, store.WithDebounce(cfg.SaveDebounce))

	ctx := cmd.Context()
	st.Startup(ctx)

	if err := fn(ctx, st); err != nil {
		_ = st.Close(ctx)
		return err
	}
	return st.Close(ctx)
}

func requireReady(st *store.Store) error {
	if st.State() != store.StateReady {
		return fmt.Errorf("not logged in; run \"medtracker login\" first")
	}
	return nil
}

// dateArg resolves an optional date argument, defaulting to today.
func dateArg(args []string) (string, error) {
	if len(args) == 0 {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", args[0]); err != nil {
		return "", fmt.Errorf("invalid date %q (want yyyy-MM-dd)", args[0])
	}
	return args[0], nil
}
