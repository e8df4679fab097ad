package noaa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lowceiling/mos-data-etl/internal/observability"
)

// Client implements domain.BulletinSource against the NWS MOS text product
// CGI endpoints. Each report type maps to its own script, e.g.
// <base>/getmav.pl?sta=KJFK, which returns an HTML page with the bulletin
// wrapped in a <PRE> block.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a NOAA MOS text product client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves the raw bulletin text for a station. An empty string with
// a nil error means NOAA has no current product for that station.
func (c *Client) Fetch(ctx context.Context, station, reportType string) (string, error) {
	switch reportType {
	case "mav", "mex":
	default:
		return "", fmt.Errorf("unsupported report type %q", reportType)
	}

	params := url.Values{"sta": {station}}
	fullURL := fmt.Sprintf("%s/get%s.pl?%s", c.baseURL, reportType, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.WithLabelValues(reportType).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(reportType, "error").Inc()
		return "", fmt.Errorf("%s fetch for %s: %w", reportType, station, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues(reportType, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("noaa API error: status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(reportType, "error").Inc()
		return "", fmt.Errorf("read response: %w", err)
	}

	bulletin := extractBulletin(string(body), station)
	if bulletin == "" {
		c.metrics.FetchRequests.WithLabelValues(reportType, "empty").Inc()
		c.logger.Debug("no bulletin available", "station", station, "report_type", reportType)
		return "", nil
	}

	c.metrics.FetchRequests.WithLabelValues(reportType, "success").Inc()
	return bulletin, nil
}

// extractBulletin pulls the bulletin text out of the HTML response. The CGI
// scripts wrap the product in a <PRE> block; anything outside it is page
// chrome. A block that never mentions the station is a "no data" page.
func extractBulletin(page, station string) string {
	text := preBlock(page)
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	if !strings.Contains(text, station) {
		return ""
	}
	return text
}

func preBlock(page string) string {
	for _, open := range []string{"<PRE>", "<pre>"} {
		start := strings.Index(page, open)
		if start < 0 {
			continue
		}
		rest := page[start+len(open):]
		end := strings.Index(rest, "</")
		if end < 0 {
			return rest
		}
		return rest[:end]
	}
	return ""
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
