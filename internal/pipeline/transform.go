package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lowceiling/mos-data-etl/internal/domain"
	"github.com/lowceiling/mos-data-etl/internal/observability"
)

// BulletinTransformer implements Transformer by decoding raw MOS bulletin
// envelopes into structured forecast reports.
type BulletinTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a BulletinTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *BulletinTransformer {
	return &BulletinTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

func (t *BulletinTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	report, err := domain.DecodeRawMessage(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.PeriodsPerReport.Observe(float64(len(report.Periods)))

	return serializeReport(report)
}

// serializeReport marshals a decoded report into a sink-topic event. The key
// is the deterministic report ID so replays land on the same partition.
func serializeReport(report *domain.Report) (domain.OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize report: %w", err)
	}
	return domain.OutputEvent{
		Key:   []byte(report.ID),
		Value: data,
		Headers: map[string]string{
			"report_type": report.ReportType,
			"station":     report.Station,
			"decoded_at":  report.DecodedAt.Format(time.RFC3339),
		},
	}, nil
}
