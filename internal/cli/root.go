// Package cli wires configuration, logging, storage and the TUI behind the cm command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cm/internal/config"
	"cm/internal/logging"
	"cm/internal/shell"
	"cm/internal/store"
	"cm/internal/ui"
	"cm/internal/ui/logic"
)

// App holds the values of the global flags
type App struct {
	ConfigPath string
	DBPath     string
	DryRun     bool
	NoFixtures bool

	version string
}

// ExitError carries the exit status of the command run after the UI closed
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCmd builds the cm command
func NewRootCmd(version string) *cobra.Command {
	app := &App{version: version}

	cmd := &cobra.Command{
		Use:           "cm",
		Short:         "Browse, run and manage saved shell commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cm

  # Use another database and only print the picked command
  cm --db ./team.db --dry-run
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&app.DBPath, "db", "", "Path to the SQLite database (overrides "+config.EnvDB+" and db_path)")
	cmd.Flags().BoolVar(&app.DryRun, "dry-run", false, "Print the picked command instead of running it")
	cmd.Flags().BoolVar(&app.NoFixtures, "no-fixtures", false, "Do not seed an empty database with the example command")

	cmd.AddCommand(newVersionCmd(app))
	return cmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cm version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cm %s\n", app.version)
			return err
		},
	}
}

func run(ctx context.Context, out io.Writer, app *App) error {
	cfg, err := loadOrCreateConfig(config.NewConfigService(app.ConfigPath))
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.File = cfg.LogFile()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	log, closer, err := logging.Open(logCfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	exec, err := runTUI(ctx, cfg, app, log)
	if err != nil {
		log.Error().Err(err).Msg("ui failed")
		return err
	}
	if exec == nil {
		log.Info().Msg("quit without a command")
		return nil
	}
	return runExecution(ctx, out, cfg, app, exec, shell.NewRunner(), log)
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(svc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(svc.Path()); errors.Is(err, os.ErrNotExist) {
		cfg := config.DefaultConfig()
		if err := svc.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return svc.Load()
}

// openStore opens the database picked by flag, environment or config and seeds it
func openStore(ctx context.Context, cfg *config.Config, app *App, log zerolog.Logger) (*store.SQLiteStore, error) {
	path, err := cfg.ResolveDBPath(app.DBPath)
	if err != nil {
		return nil, err
	}
	ds, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if cfg.SeedFixtures && !app.NoFixtures {
		if err := store.Seed(ctx, ds); err != nil {
			ds.Close()
			return nil, err
		}
	}
	log.Info().Str("db", path).Msg("store opened")
	return ds, nil
}

// runTUI runs the UI until the user quits or picks a command. The store is closed
// before returning so the picked command never holds the database open.
func runTUI(ctx context.Context, cfg *config.Config, app *App, log zerolog.Logger) (*logic.Execution, error) {
	ds, err := openStore(ctx, cfg, app, log)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	engine := logic.NewEngine(ds, cfg.StoreTimeout.Duration, log.With().Str("component", "engine").Logger())
	model, err := ui.NewModel(ctx, cfg, engine, log.With().Str("component", "ui").Logger())
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Debug().Msg("starting ui")
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("run ui: %w", err)
	}
	return model.Result(), nil
}

// runExecution starts the picked command in the foreground, or prints it under --dry-run
func runExecution(ctx context.Context, out io.Writer, cfg *config.Config, app *App, exec *logic.Execution, runner *shell.Runner, log zerolog.Logger) error {
	c, err := shell.Parse(exec.Command, cfg.ShellPath())
	if err != nil {
		return fmt.Errorf("command %q: %w", exec.Tag, err)
	}
	if app.DryRun {
		_, err := fmt.Fprintln(out, c.String())
		return err
	}

	log.Info().Str("tag", exec.Tag).Str("command", c.String()).Msg("running command")
	if err := runner.Run(ctx, c); err != nil {
		code := shell.ExitCode(err)
		log.Warn().Err(err).Int("exit_code", code).Msg("command failed")
		return &ExitError{Code: code, Err: err}
	}
	return nil
}
