package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Supported MOS report types.
const (
	ReportTypeMAV = "mav" // short-range guidance
	ReportTypeMEX = "mex" // extended-range guidance
)

// Timestamp pairs a literal token from the bulletin with its resolved UTC
// instant. The issuance timestamp keeps the header's date text; period
// timestamps keep the bare hour token.
type Timestamp struct {
	Repr string    `json:"repr"`
	Time time.Time `json:"time"`
}

// Number is a decoded numeric token. Repr preserves the bulletin text;
// Value is the converted measurement.
type Number struct {
	Repr  string  `json:"repr"`
	Value float64 `json:"value"`
}

// FieldValue is one decoded data-row value for a period. Exactly one of
// Number or Code is set: Number for numeric fields, Code for categorical
// fields carried as raw tokens (sky cover, precip type, vision obstruction).
type FieldValue struct {
	Number *Number `json:"number,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// Period is one forecast valid-time slot. Fields maps field names (e.g.
// "temperature", "wind_speed") to decoded values; a field a bulletin row
// contributed no value for is simply absent from the map.
type Period struct {
	Time   Timestamp             `json:"time"`
	Fields map[string]FieldValue `json:"fields,omitempty"`
}

// Report is a fully decoded MOS bulletin.
type Report struct {
	ID         string    `json:"id"`
	Station    string    `json:"station"`
	ReportType string    `json:"report_type"`
	Issued     Timestamp `json:"issued"`
	Periods    []Period  `json:"periods"`
	Remarks    string    `json:"remarks,omitempty"` // unused by MOS products, kept for parity with other report kinds
	Raw        string    `json:"raw"`
	DecodedAt  time.Time `json:"decoded_at"`
}

// RawBulletinMessage is the JSON envelope the collector publishes to the
// source topic: the station it fetched, which product, and the raw text.
type RawBulletinMessage struct {
	Station    string `json:"station"`
	ReportType string `json:"report_type"` // "mav" or "mex"
	Text       string `json:"text"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// BulletinSource fetches raw MOS bulletin text for a station.
type BulletinSource interface {
	// Fetch returns the raw bulletin text for the given station and report
	// type ("mav" or "mex"). An empty string means the product is not
	// currently available for that station.
	Fetch(ctx context.Context, station, reportType string) (string, error)
}

// generateID produces a deterministic ID from the report's key fields.
// Re-decoding the same bulletin yields the same ID, so downstream consumers
// can upsert and replays stay idempotent.
func generateID(station, reportType string, issued time.Time) string {
	input := fmt.Sprintf("%s|%s|%s", station, reportType, issued.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if reportType == "" {
		return short
	}
	return reportType + "-" + short
}
