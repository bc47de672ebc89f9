package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/swigup/internal/adapters/repository"
	service "github.com/okian/swigup/internal/app"
	"github.com/okian/swigup/internal/config"
	"github.com/okian/swigup/internal/domain/intake"
	"github.com/okian/swigup/pkg/logger"
)

// cli carries state resolved once in the root pre-run and shared by every
// subcommand.
type cli struct {
	cfg    *config.Config
	dbPath string
	addr   string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "swigup",
		Short:         "swigup tracks daily water intake against a personal goal",
		Long:          "swigup derives a daily hydration goal from weight and activity, logs manual and scanned intake, and ranks progress against a small community.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "Path to SQLite database (overrides db_path)")

	root.AddCommand(
		c.newServeCmd(),
		c.newOnboardCmd(),
		c.newGoalCmd(),
		c.newProfileCmd(),
	)
	return root
}

// setup loads configuration and initializes logging on stderr so command
// output on stdout stays clean.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	c.cfg = cfg

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// withStore opens the configured sqlite slot for the duration of run.
func (c *cli) withStore(ctx context.Context, run func(*repository.ProfileStore) error) error {
	kv, err := repository.OpenSQLite(ctx, c.cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	return run(repository.NewProfileStore(kv,
		repository.WithKey(c.cfg.StorageKey),
		repository.WithLogger(logger.Named("profile_store")),
	))
}

// newService builds the session from configuration.
func (c *cli) newService(store repository.Store) *service.Service {
	adapter := intake.NewAdapter(
		intake.WithScanDefault(c.cfg.ScanDefaultMl),
		intake.WithStructuredScanDefault(c.cfg.ScanStructuredDefaultMl),
		intake.WithPresets(c.cfg.ManualPresets),
	)
	return service.New(
		service.WithLogger(logger.Named("session")),
		service.WithStore(store),
		service.WithAdapter(adapter),
		service.WithRoster(c.cfg.Roster),
		service.WithSelfSuffix(c.cfg.SelfSuffix),
		service.WithDedupeSize(c.cfg.DedupeSize),
	)
}
