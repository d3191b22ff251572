package navdata

import (
	"context"
	"fmt"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/pkg/logger"
)

// Collector wires the Eastmoney provider to the NAV repository.
type Collector struct {
	provider *Provider
	repo     contracts.NavRepository
	log      *logger.Logger
}

// NewCollector creates a collector.
func NewCollector(provider *Provider, repo contracts.NavRepository, log *logger.Logger) *Collector {
	return &Collector{provider: provider, repo: repo, log: log}
}

// SyncFund fetches the full NAV history for a fund and upserts it.
// Re-running is safe: records are keyed by (fund, date).
func (c *Collector) SyncFund(ctx context.Context, code string) (*Fund, error) {
	log := c.log.WithField("fund", code)
	log.Info("syncing fund NAV history")

	fund, err := c.provider.FetchFund(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("sync fund %s: %w", code, err)
	}

	if err := c.repo.SaveBatch(ctx, fund.Navs); err != nil {
		return nil, fmt.Errorf("sync fund %s: %w", code, err)
	}

	log.WithFields(map[string]interface{}{
		"name":  fund.Name,
		"navs":  len(fund.Navs),
		"first": fund.Navs[0].Date,
		"last":  fund.Navs[len(fund.Navs)-1].Date,
	}).Info("fund NAV history synced")

	return fund, nil
}

// SyncFunds syncs several funds, stopping at the first failure.
func (c *Collector) SyncFunds(ctx context.Context, codes []string) error {
	for _, code := range codes {
		if _, err := c.SyncFund(ctx, code); err != nil {
			return err
		}
	}
	return nil
}
