//go:build noaa

package noaa

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lowceiling/mos-data-etl/internal/domain"
	"github.com/lowceiling/mos-data-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real NWS MOS CGI endpoints.
// Run with: go test -tags=noaa ./internal/adapter/noaa/ -v -count=1

func smokeClient() *Client {
	return NewClient(
		"https://www.nws.noaa.gov/cgi-bin/mos",
		15*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSmoke_FetchMAV(t *testing.T) {
	c := smokeClient()

	text, err := c.Fetch(context.Background(), "KJFK", "mav")
	require.NoError(t, err)
	require.NotEmpty(t, text)
	assert.Contains(t, text, "KJFK")
	assert.Contains(t, text, "GFS MOS GUIDANCE")

	report, err := domain.DecodeMAV(text)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Periods)
}

func TestSmoke_FetchMEX(t *testing.T) {
	c := smokeClient()

	text, err := c.Fetch(context.Background(), "KJFK", "mex")
	require.NoError(t, err)
	require.NotEmpty(t, text)
	assert.Contains(t, text, "GFSX MOS GUIDANCE")

	report, err := domain.DecodeMEX(text)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Periods)
}

func TestSmoke_CachedSource(t *testing.T) {
	c := smokeClient()
	cached := NewCachedSource(c, 10, time.Hour, observability.NewMetricsForTesting())

	// First call misses and hits the live endpoint.
	r1, err := cached.Fetch(context.Background(), "KBOS", "mav")
	require.NoError(t, err)

	// Second call should come from cache.
	r2, err := cached.Fetch(context.Background(), "KBOS", "mav")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
