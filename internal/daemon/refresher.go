package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/ui"
)

// Display receives rendered surfaces.
type Display interface {
	Show(s ui.Surfaces) error
}

// RefresherConfig holds refresher configuration.
type RefresherConfig struct {
	Interval time.Duration // How often today's report is re-rendered
}

// DefaultRefresherConfig returns default refresher configuration.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{Interval: time.Second}
}

// Refresher polls the log store and re-renders the day report.
// Ticks always show today; SelectDate renders another day immediately.
type Refresher struct {
	config  RefresherConfig
	status  ui.StatusSource
	logs    domain.LogStore
	display Display
	selects chan time.Time
	now     func() time.Time
	logger  *zap.Logger
}

// NewRefresher creates a new refresher.
func NewRefresher(
	config RefresherConfig,
	status ui.StatusSource,
	logs domain.LogStore,
	display Display,
	logger *zap.Logger,
) *Refresher {
	if config.Interval <= 0 {
		config.Interval = DefaultRefresherConfig().Interval
	}
	return &Refresher{
		config:  config,
		status:  status,
		logs:    logs,
		display: display,
		selects: make(chan time.Time, 1),
		now:     time.Now,
		logger:  logger,
	}
}

// SelectDate asks the running loop to render the given day.
// Only the latest pending selection is kept.
func (r *Refresher) SelectDate(date time.Time) {
	for {
		select {
		case r.selects <- date:
			return
		default:
		}
		select {
		case <-r.selects:
		default:
		}
	}
}

// Run renders on every tick until ctx is canceled.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			r.render(r.now())

		case date := <-r.selects:
			r.render(date)
		}
	}
}

func (r *Refresher) render(date time.Time) {
	surfaces, err := ui.Collect(r.status, r.logs, date)
	if err != nil {
		r.logger.Warn("failed to build report", zap.Error(err))
		return
	}
	if err := r.display.Show(surfaces); err != nil {
		r.logger.Warn("failed to show report", zap.Error(err))
	}
}
