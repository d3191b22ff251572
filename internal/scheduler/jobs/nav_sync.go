// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"

	"github.com/wonny/fundquant/internal/navdata"
)

// NavSync refreshes the stored NAV history for a set of funds.
// Eastmoney publishes the day's NAV in the evening, so the default
// schedule runs nightly after publication.
type NavSync struct {
	collector *navdata.Collector
	codes     []string
	schedule  string
}

// DefaultNavSyncSchedule runs every day at 20:30 local time.
const DefaultNavSyncSchedule = "0 30 20 * * *"

// NewNavSync creates the sync job. An empty schedule selects the default.
func NewNavSync(collector *navdata.Collector, codes []string, schedule string) *NavSync {
	if schedule == "" {
		schedule = DefaultNavSyncSchedule
	}
	return &NavSync{collector: collector, codes: codes, schedule: schedule}
}

func (j *NavSync) Name() string     { return "nav_sync" }
func (j *NavSync) Schedule() string { return j.schedule }

func (j *NavSync) Run(ctx context.Context) error {
	return j.collector.SyncFunds(ctx, j.codes)
}
