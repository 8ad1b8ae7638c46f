// Package cli implements the cartctl commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/cartstore/internal/cart"
	"github.com/nikolayk812/cartstore/internal/config"
	"github.com/nikolayk812/cartstore/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const serviceName = "cartctl"

type app struct {
	v          *viper.Viper
	configFile string
	envFile    string

	cfg    config.Config
	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Manage the course cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded when present")
	flags.String("backend", "", "storage backend: memory, sqlite, postgres or redis")
	flags.String("namespace", "", "storage namespace of the cart")

	_ = a.v.BindPFlag("backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("namespace", flags.Lookup("namespace"))

	root.AddCommand(
		a.newAddCommand(),
		a.newRemoveCommand(),
		a.newClearCommand(),
		a.newListCommand(),
		newHoursCommand(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	a.cfg = cfg

	a.logger = logger.New(cmd.ErrOrStderr(), logger.Options{
		Service: serviceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	return nil
}

// withStore opens the configured cart store for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(store *cart.Store) error) (err error) {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}

	storage, release, err := openStorage(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer func() {
		if releaseErr := release(); releaseErr != nil {
			err = errors.Join(err, fmt.Errorf("release: %w", releaseErr))
		}
	}()

	store, err := cart.Open(ctx, storage,
		cart.WithNamespace(a.cfg.Namespace),
		cart.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("cart.Open: %w", err)
	}
	defer store.Close()

	a.logger.Debug("cart opened",
		"backend", a.cfg.Backend,
		"namespace", store.Namespace(),
		"items", store.Len())

	return fn(store)
}
