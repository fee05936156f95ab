// Package main provides the storefront CLI: catalog browsing, cart
// management and account handling against the remote store API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cartapp "github.com/nvaldebenito/storefront/internal/cart/app"
	"github.com/nvaldebenito/storefront/internal/cart/infra/adapter"
	cartrest "github.com/nvaldebenito/storefront/internal/cart/infra/rest"
	catalogapp "github.com/nvaldebenito/storefront/internal/catalog/app"
	catalogrest "github.com/nvaldebenito/storefront/internal/catalog/infra/rest"
	sessionapp "github.com/nvaldebenito/storefront/internal/session/app"
	sessionrest "github.com/nvaldebenito/storefront/internal/session/infra/rest"
	"github.com/nvaldebenito/storefront/internal/session/infra/storage"
	"github.com/nvaldebenito/storefront/pkg/config"
	"github.com/nvaldebenito/storefront/pkg/logger"
	"github.com/nvaldebenito/storefront/pkg/restclient"
	"github.com/nvaldebenito/storefront/pkg/shutdown"
)

var version = "0.1.0"

type application struct {
	cfg     config.Config
	log     *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	session *sessionapp.Store
	auth    *sessionrest.AuthClient
	catalog *catalogapp.Service
	cart    *cartapp.Service
	closers []func() error
}

var (
	app     *application
	offline bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "storefront",
		Short:   "Storefront client: browse products, manage your cart, check out later",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = newApplication()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			app.cancel()
			for _, close := range app.closers {
				if err := close(); err != nil {
					app.log.Warn("close failed", slog.Any("err", err))
				}
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "keep cart changes locally when the server is unreachable")

	rootCmd.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		whoamiCmd(),
		profileCmd(),
		productsCmd(),
		productCmd(),
		cartCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newApplication() (*application, error) {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())

	a := &application{cfg: cfg, log: log, ctx: ctx, cancel: cancel}

	store, err := a.openSessionStorage()
	if err != nil {
		cancel()
		return nil, err
	}
	a.session = sessionapp.NewStore(store, log)

	rc := restclient.New(restclient.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Tokens:  a.session,
		Logger:  log,
	})
	rc.SetUnauthorizedHandler(func() {
		a.session.HandleUnauthorized()
		fmt.Fprintln(os.Stderr, color.YellowString("Session expired, please log in again."))
	})

	a.auth = sessionrest.NewAuthClient(rc)
	a.catalog = catalogapp.NewService(catalogrest.NewProductClient(rc))

	policy, err := cartapp.ParsePolicy(cfg.SyncPolicy)
	if err != nil {
		log.Warn("invalid sync policy, using strict", slog.String("value", cfg.SyncPolicy))
	}
	if offline {
		policy = cartapp.PolicyLenient
	}

	a.cart = cartapp.NewService(
		cartapp.NewStore(),
		adapter.NewCatalogStockValidator(a.catalog),
		adapter.NewCatalogProductReader(a.catalog),
		cartrest.NewCartClient(rc),
		policy,
		log,
	)

	return a, nil
}

func (a *application) openSessionStorage() (sessionapp.Storage, error) {
	dataDir := a.cfg.DataDir
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			a.log.Warn("no config dir, keeping session in memory", slog.Any("err", err))
			return storage.NewMemory(), nil
		}
		dataDir = filepath.Join(base, "storefront")
	}

	switch a.cfg.StorageBackend {
	case "file":
		return storage.NewFile(dataDir)
	case "memory":
		return storage.NewMemory(), nil
	default:
		st, err := storage.NewSQLite(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open session storage: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		return st, nil
	}
}

// requireLogin guards commands that only make sense with a session.
func requireLogin() error {
	if !app.session.Current().LoggedIn() {
		return fmt.Errorf("not logged in, run 'storefront login' first")
	}
	return nil
}
