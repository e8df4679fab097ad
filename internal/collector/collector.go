package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lowceiling/mos-data-etl/internal/domain"
)

// Sink publishes raw bulletin events, normally the Kafka writer aimed at the
// source topic.
type Sink interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Collector periodically fetches MOS bulletins from NOAA for a fixed set of
// stations and publishes them as raw bulletin messages.
type Collector struct {
	source      domain.BulletinSource
	sink        Sink
	stations    []string
	reportTypes []string
	interval    time.Duration
	clock       clockwork.Clock
	logger      *slog.Logger
}

// New creates a Collector that fetches every interval.
func New(source domain.BulletinSource, sink Sink, stations, reportTypes []string, interval time.Duration, logger *slog.Logger) *Collector {
	return &Collector{
		source:      source,
		sink:        sink,
		stations:    stations,
		reportTypes: reportTypes,
		interval:    interval,
		clock:       clockwork.NewRealClock(),
		logger:      logger,
	}
}

// Run fetches all stations immediately, then again on every tick until the
// context is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	c.logger.Info("collector started",
		"stations", len(c.stations),
		"report_types", c.reportTypes,
		"interval", c.interval)

	c.collectCycle(ctx)

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("collector stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			c.collectCycle(ctx)
		}
	}
}

// collectCycle fetches every station and report type combination and publishes
// whatever came back. Fetch failures are logged and skipped; a station with no
// current product is silently skipped.
func (c *Collector) collectCycle(ctx context.Context) {
	var events []domain.OutputEvent

	for _, station := range c.stations {
		for _, reportType := range c.reportTypes {
			if ctx.Err() != nil {
				return
			}

			text, err := c.source.Fetch(ctx, station, reportType)
			if err != nil {
				c.logger.Warn("bulletin fetch failed",
					"station", station,
					"report_type", reportType,
					"error", err)
				continue
			}
			if text == "" {
				continue
			}

			event, err := serializeBulletin(station, reportType, text)
			if err != nil {
				c.logger.Error("serialize bulletin failed",
					"station", station,
					"report_type", reportType,
					"error", err)
				continue
			}
			events = append(events, event)
		}
	}

	if len(events) == 0 {
		c.logger.Debug("collect cycle produced no bulletins")
		return
	}

	if err := c.sink.LoadBatch(ctx, events); err != nil {
		c.logger.Error("publish bulletins failed", "count", len(events), "error", err)
		return
	}
	c.logger.Info("published bulletins", "count", len(events))
}

func serializeBulletin(station, reportType, text string) (domain.OutputEvent, error) {
	payload, err := json.Marshal(domain.RawBulletinMessage{
		Station:    station,
		ReportType: reportType,
		Text:       text,
	})
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return domain.OutputEvent{
		// Keyed by station so each station's bulletins stay ordered within
		// a partition.
		Key:   []byte(station),
		Value: payload,
		Headers: map[string]string{
			"report_type": reportType,
			"station":     station,
		},
	}, nil
}
