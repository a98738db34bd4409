// Package commands provides the shared plumbing every subcommand needs:
// config loading, the local store, the account registry and a GitHub
// client for the active account.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/friuns/vibehub/internal/account"
	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/config"
	"github.com/friuns/vibehub/internal/github"
)

// BaseCommand carries common fields and initialization for all commands.
type BaseCommand struct {
	ConfigFile *string
	LoadConfig func(string) (*config.Config, error)

	Config   *config.Config
	Store    *cache.Store
	Registry *account.Registry
	Cache    *cache.Cache
	Client   *github.Client
	Account  account.Account
	Context  context.Context
}

// InitStore loads the config and opens the local store and account
// registry, running the one-time legacy account migration. Enough for
// commands that manage accounts without talking to GitHub.
func (bc *BaseCommand) InitStore() error {
	cfg, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	bc.Config = cfg

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	bc.Store = store

	bc.Registry = account.NewRegistry(store)
	bc.Registry.MigrateLegacy()

	bc.Context = context.Background()
	return nil
}

// Init performs the full setup: store, active account (falling back to
// the GITHUB_TOKEN environment variable when no account is registered),
// the account-scoped cache and the GitHub client.
func (bc *BaseCommand) Init() error {
	if err := bc.InitStore(); err != nil {
		return err
	}

	acct, ok := bc.Registry.Active()
	if !ok {
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return fmt.Errorf("no account configured: run 'vibehub accounts add' or set GITHUB_TOKEN")
		}
		acct = account.Account{Token: token}
	}
	bc.Account = acct
	bc.Cache = cache.NewCache(bc.Store, acct.ID)
	bc.Client = github.NewClient(bc.Context, acct.Token)
	return nil
}

// Close releases the store. Safe to call when Init failed part-way.
func (bc *BaseCommand) Close() {
	if bc.Store != nil {
		bc.Store.Close()
	}
}
