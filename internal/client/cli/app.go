package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/blogsync/internal/client/config"
	"github.com/dmitrijs2005/blogsync/internal/client/content"
	"github.com/dmitrijs2005/blogsync/internal/client/localdb"
	"github.com/dmitrijs2005/blogsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogsync/internal/client/store"
	"github.com/dmitrijs2005/blogsync/internal/filex"
	"github.com/dmitrijs2005/blogsync/internal/logging"
)

// openStore dials blogd. Tests replace it with an in-memory store.
var openStore = func(cfg *config.Config, db *sql.DB, l logging.Logger) (store.Client, error) {
	return store.NewGRPCStore(cfg.ServerEndpointAddr, metadata.NewSQLiteRepository(db), l)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   store.Client
	content *content.Synchronizer
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewText(errOut, level)

	if c.DBPath != localdb.MemoryDSN {
		if err := filex.EnsureParentDir(c.DBPath); err != nil {
			return nil, err
		}
	}
	db, err := localdb.Open(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "Error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	st, err := openStore(c, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	synchronizer := content.New(st, logger)
	if err := synchronizer.Start(ctx); err != nil {
		_ = st.Close()
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		logger:  logger.With("module", "cli"),
		db:      db,
		store:   st,
		content: synchronizer,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

func (a *App) Close() {
	a.content.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "Error closing store", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "Error closing database", "error", err)
	}
}

// pinger is implemented by stores that can check the server is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}
