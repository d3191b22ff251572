package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/fundquant/internal/navdata"
	"github.com/wonny/fundquant/pkg/config"
	"github.com/wonny/fundquant/pkg/database"
	"github.com/wonny/fundquant/pkg/httputil"
	"github.com/wonny/fundquant/pkg/logger"
)

// deps holds the shared wiring every command needs: config, logger and
// the database-backed NAV repository. Close releases the pool.
type deps struct {
	cfg  *config.Config
	log  *logger.Logger
	db   *database.DB
	repo *navdata.Repository
}

func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	repo := navdata.NewRepository(db.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &deps{
		cfg:  cfg,
		log:  log,
		db:   db,
		repo: repo,
	}, nil
}

func (d *deps) Close() {
	d.db.Close()
}

// collector builds the Eastmoney sync pipeline on top of the shared deps.
func (d *deps) collector() *navdata.Collector {
	client := httputil.New(d.cfg, d.log)
	provider := navdata.NewProvider(client, d.cfg.Eastmoney.BaseURL)
	return navdata.NewCollector(provider, d.repo, d.log)
}
