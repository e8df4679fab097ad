package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBulletin marks a message whose bulletin text decoded to nothing.
// The pipeline commits and skips these without counting a decode failure.
var ErrEmptyBulletin = errors.New("empty bulletin text")

// DecodeRawMessage deserializes a RawEvent's value into its bulletin envelope
// and decodes the bulletin with the format the envelope names.
func DecodeRawMessage(raw RawEvent) (*Report, error) {
	var msg RawBulletinMessage
	if err := json.Unmarshal(raw.Value, &msg); err != nil {
		return nil, fmt.Errorf("parse raw bulletin message: %w", err)
	}

	var (
		report *Report
		err    error
	)
	switch strings.ToLower(msg.ReportType) {
	case ReportTypeMAV:
		report, err = DecodeMAV(msg.Text)
	case ReportTypeMEX:
		report, err = DecodeMEX(msg.Text)
	default:
		return nil, fmt.Errorf("unknown report type %q", msg.ReportType)
	}
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrEmptyBulletin
	}

	report.DecodedAt = clock.Now()
	return report, nil
}
