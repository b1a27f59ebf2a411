package cli

import (
	"github.com/mrz1836/xrbwallet/internal/backup"
	"github.com/mrz1836/xrbwallet/internal/config"
	"github.com/mrz1836/xrbwallet/internal/output"
	walletsvc "github.com/mrz1836/xrbwallet/internal/service/wallet"
	"github.com/mrz1836/xrbwallet/internal/storage"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// CommandContext holds dependencies for CLI commands. Storage is opened
// on first use so commands that never touch wallets never open it.
type CommandContext struct {
	Config    *config.Config
	Logger    *config.Logger
	Formatter *output.Formatter

	db      storage.DB
	store   *wallet.Store
	service *walletsvc.Service
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	return &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
	}
}

// WithDB sets an already open database.
func (c *CommandContext) WithDB(db storage.DB) *CommandContext {
	c.db = db
	c.store = nil
	c.service = nil
	return c
}

// Store returns the wallet store, opening the configured backend if needed.
func (c *CommandContext) Store() (*wallet.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	if c.db == nil {
		db, err := storage.Open(c.Config.Storage.Backend, c.Config.StoragePath())
		if err != nil {
			return nil, walleterr.WithCause(walleterr.ErrStorage, err)
		}
		c.Logger.With("storage").Debug("opened %s storage at %s", c.Config.Storage.Backend, c.Config.StoragePath())
		c.db = db
	}
	c.store = wallet.NewStore(c.db)
	return c.store, nil
}

// Service returns the wallet service backed by Store.
func (c *CommandContext) Service() (*walletsvc.Service, error) {
	if c.service != nil {
		return c.service, nil
	}
	store, err := c.Store()
	if err != nil {
		return nil, err
	}
	c.service = walletsvc.NewService(&walletsvc.Config{
		Storage: store,
		Config:  c.Config,
		Logger:  c.Logger.With("wallet"),
	})
	return c.service, nil
}

// Backup returns the backup service for Store.
func (c *CommandContext) Backup() (*backup.Service, error) {
	store, err := c.Store()
	if err != nil {
		return nil, err
	}
	return backup.NewService(store), nil
}

// Close closes the database if one was opened.
func (c *CommandContext) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.store = nil
	c.service = nil
	return err
}
