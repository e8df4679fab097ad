// Command genmock generates mock MOS bulletin fixtures and their decoded
// counterparts. It builds synthetic MAV and MEX bulletins for a handful of
// stations, runs them through the actual decoder under a frozen clock, and
// writes both sides so other test suites can assert against real pipeline
// output.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lowceiling/mos-data-etl/internal/domain"
)

// issued is the synthetic bulletin issuance time. Keep in sync with validate.
var issued = time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC)

var stations = []string{"KJFK", "KBOS", "KSFO", "KDFW", "KORD"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "output directory for fixture files")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Freeze the clock so DecodedAt stamps are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 26, 13, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	var raws []domain.RawBulletinMessage
	var reports []domain.Report

	for i, station := range stations {
		for _, msg := range []domain.RawBulletinMessage{
			{Station: station, ReportType: domain.ReportTypeMAV, Text: mavBulletin(station, i)},
			{Station: station, ReportType: domain.ReportTypeMEX, Text: mexBulletin(station, i)},
		} {
			report, err := decodeMessage(msg)
			if err != nil {
				return fmt.Errorf("decode %s %s: %w", msg.Station, msg.ReportType, err)
			}
			raws = append(raws, msg)
			reports = append(reports, *report)
		}
	}

	rawPath := filepath.Join(*outDir, "mos_bulletins.json")
	if err := writeJSON(rawPath, raws); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s (%d bulletins)", rawPath, len(raws))

	decodedPath := filepath.Join(*outDir, "mos_reports.json")
	if err := writeJSON(decodedPath, reports); err != nil {
		return fmt.Errorf("writing decoded fixture: %w", err)
	}
	log.Printf("wrote decoded fixture: %s (%d reports)", decodedPath, len(reports))

	printStats(reports)
	return nil
}

// decodeMessage runs the real envelope decode path used by the pipeline.
func decodeMessage(msg domain.RawBulletinMessage) (*domain.Report, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return domain.DecodeRawMessage(domain.RawEvent{Value: payload})
}

// buildRow renders a fixed-width bulletin row: a left-aligned label in the
// prefix columns followed by right-aligned tokens.
func buildRow(label string, prefix, width int, tokens ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", prefix, label)
	for _, tok := range tokens {
		fmt.Fprintf(&b, "%*s", width, tok)
	}
	return b.String()
}

func nums(values ...int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%d", v)
	}
	return out
}

// mavBulletin builds a short-range bulletin with six 3-hourly periods.
// The offset skews temperatures so each station decodes differently.
func mavBulletin(station string, offset int) string {
	// Three spaces after the model name land the timestamp on the columns
	// the decoder reads.
	header := fmt.Sprintf("%s   GFS MOS GUIDANCE   %s UTC",
		station, issued.Format("01/02/2006  1504"))

	// Thunder rows use a 5-column label and slash-joined cell pairs, so the
	// row is assembled cell by cell instead of through buildRow.
	thunder := "T06  " + "   " + " 3/" + " 1 " + "   " + " 8/" + " 2 "

	lines := []string{
		header,
		" DT /APR  26            /APR  27",
		buildRow("HR", 4, 3, "15", "18", "21", "00", "03", "06"),
		buildRow("TMP", 4, 3, nums(61+offset, 65+offset, 62+offset, 55+offset, 51+offset, 49+offset)...),
		buildRow("DPT", 4, 3, nums(48+offset, 49+offset, 50+offset, 48+offset, 47+offset, 46+offset)...),
		buildRow("CLD", 4, 3, "FW", "SC", "BK", "OV", "OV", "BK"),
		buildRow("WDR", 4, 3, "18", "19", "20", "22", "23", "25"),
		buildRow("WSP", 4, 3, "08", "10", "12", "09", "06", "05"),
		buildRow("P06", 4, 3, "", "5", "", "19", "", "34"),
		thunder,
	}
	return strings.Join(lines, "\n")
}

// mexBulletin builds an extended-range bulletin with five daily periods.
func mexBulletin(station string, offset int) string {
	header := fmt.Sprintf("%s   GFSX MOS GUIDANCE  %s UTC",
		station, issued.Format("01/02/2006  1504"))

	lines := []string{
		header,
		buildRow("FHR", 4, 4, "24", "36", "48", "60", "72"),
		buildRow("X/N", 4, 4, nums(66+offset, 50+offset, 68+offset, 52+offset, 70+offset)...),
		buildRow("TMP", 4, 4, nums(58+offset, 54+offset, 60+offset, 55+offset, 62+offset)...),
		buildRow("DPT", 4, 4, nums(47+offset, 45+offset, 49+offset, 46+offset, 50+offset)...),
		buildRow("CLD", 4, 4, "PC", "OV", "CL", "PC", "OV"),
		buildRow("WSP", 4, 4, "10", "14", "08", "11", "09"),
		buildRow("P12", 4, 4, "9", "24", "5", "41", "17"),
		buildRow("T12", 4, 4, "2", "11", "1", "18", "6"),
		buildRow("SNW", 4, 4, "0", "0", "0", "0", "0"),
	}
	return strings.Join(lines, "\n")
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.Report) {
	typeCounts := map[string]int{}
	fieldCounts := map[string]int{}
	totalPeriods := 0
	for i := range reports {
		r := &reports[i]
		typeCounts[r.ReportType]++
		totalPeriods += len(r.Periods)
		for _, period := range r.Periods {
			for name := range period.Fields {
				fieldCounts[name]++
			}
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total reports: %d (mav=%d, mex=%d)\n",
		len(reports), typeCounts[domain.ReportTypeMAV], typeCounts[domain.ReportTypeMEX])
	fmt.Printf("Total periods: %d\n", totalPeriods)
	fmt.Printf("Field populations: %v\n", fieldCounts)

	if len(reports) > 0 {
		r := &reports[0]
		fmt.Printf("\nFirst report:\n")
		fmt.Printf("  ID: %s\n", r.ID)
		fmt.Printf("  Station: %s, Type: %s\n", r.Station, r.ReportType)
		fmt.Printf("  Issued: %s\n", r.Issued.Time.Format(time.RFC3339))
		fmt.Printf("  Periods: %d (first %s, last %s)\n",
			len(r.Periods),
			r.Periods[0].Time.Time.Format(time.RFC3339),
			r.Periods[len(r.Periods)-1].Time.Time.Format(time.RFC3339))
	}
}
