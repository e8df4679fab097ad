package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header timestamp span and layout. The date field is right-aligned in NOAA
// headers, so a one-digit month leaves a leading space inside the span:
//
//	KJFK   GFS MOS GUIDANCE    1/02/2023  1200 UTC
//	KJFK   GFS MOS GUIDANCE   12/02/2023  1200 UTC
const (
	headerSpanStart = 26
	headerSpanEnd   = 42
	headerLayout    = "1/02/2006  1504"
)

// ParseError reports a bulletin that cannot be timestamped. A bulletin whose
// issuance time is unreadable cannot be decoded at all, so this aborts the
// whole parse.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse bulletin header %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// headerTimestamp extracts the issuance timestamp from the header line,
// pairing the literal date text with its resolved UTC instant.
func headerTimestamp(line string) (Timestamp, error) {
	if len(line) < headerSpanEnd {
		return Timestamp{}, &ParseError{Line: line, Err: fmt.Errorf("header shorter than %d characters", headerSpanEnd)}
	}
	text := strings.TrimSpace(line[headerSpanStart:headerSpanEnd])
	ts, err := time.Parse(headerLayout, text)
	if err != nil {
		return Timestamp{}, &ParseError{Line: line, Err: err}
	}
	return Timestamp{Repr: text, Time: ts.UTC()}, nil
}

// buildTimeline converts the hour-line tokens into one empty Period per
// non-empty token. The bulletin never states the date of later periods, only
// the hour, so each token is resolved to the next occurrence of that hour at
// or after the previous period: the running clock advances by the hour delta,
// plus a day whenever the hour does not increase. Resolved times are
// monotonically non-decreasing. Non-digit tokens are skipped like empty ones.
func buildTimeline(hours []string, issued time.Time) []Period {
	previous := issued.Hour()
	clock := issued
	var periods []Period
	for _, token := range hours {
		if token == "" {
			continue
		}
		hour, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		delta := hour - previous
		if delta < 0 {
			delta += 24
		}
		clock = clock.Add(time.Duration(delta) * time.Hour)
		previous = hour
		periods = append(periods, Period{
			Time:   Timestamp{Repr: token, Time: clock},
			Fields: map[string]FieldValue{},
		})
	}
	return periods
}
