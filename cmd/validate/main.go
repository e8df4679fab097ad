// Command validate performs integrity checks across the MOS mock fixtures:
// the raw bulletin JSON and the decoded report JSON that genmock produces.
// It verifies envelope shape, re-runs the decoder under the same frozen
// clock to confirm byte-for-byte parity, and checks structural rules every
// decoded report must satisfy.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/mos_bulletins.json \
//	  -decoded-json data/mock/mos_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/lowceiling/mos-data-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw bulletin JSON fixture")
	decodedJSON := flag.String("decoded-json", "", "path to decoded report JSON fixture")
	flag.Parse()

	if *rawJSON == "" || *decodedJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *decodedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, decodedPath string) int {
	// Freeze the clock to the same instant genmock used so re-decoded
	// DecodedAt stamps line up.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 26, 13, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== MOS Fixture Integrity Validation ===")
	fmt.Println()

	raws, err := loadJSON[domain.RawBulletinMessage](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}

	reports, err := loadJSON[domain.Report](decodedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load decoded JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRawEnvelopes(raws),
		validateDecodeParity(raws, reports),
		validateReportStructure(reports),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw bulletins, %d decoded reports\n", len(raws), len(reports))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// validateRawEnvelopes checks that every raw fixture entry is a well-formed
// bulletin envelope.

func validateRawEnvelopes(raws []domain.RawBulletinMessage) *phase {
	p := &phase{name: "Phase 1: Raw Envelopes"}

	seen := map[string]bool{}
	for i, raw := range raws {
		if len(raw.Station) != 4 {
			p.errorf("raw %d: station %q is not a 4-character identifier", i, raw.Station)
		}
		if raw.ReportType != domain.ReportTypeMAV && raw.ReportType != domain.ReportTypeMEX {
			p.errorf("raw %d: report_type %q not in {mav, mex}", i, raw.ReportType)
		}
		if strings.TrimSpace(raw.Text) == "" {
			p.errorf("raw %d (%s %s): text is empty", i, raw.Station, raw.ReportType)
			continue
		}
		if !strings.HasPrefix(raw.Text, raw.Station) {
			p.errorf("raw %d: text does not start with station %q", i, raw.Station)
		}

		key := raw.Station + "|" + raw.ReportType
		if seen[key] {
			p.errorf("raw %d: duplicate bulletin for %s", i, key)
		}
		seen[key] = true
	}
	return p
}

// validateDecodeParity re-decodes each raw bulletin and requires it to
// reproduce the decoded fixture exactly.

func validateDecodeParity(raws []domain.RawBulletinMessage, reports []domain.Report) *phase {
	p := &phase{name: "Phase 2: Decode Parity"}

	byID := map[string]*domain.Report{}
	for i := range reports {
		byID[reports[i].ID] = &reports[i]
	}

	for i, raw := range raws {
		payload, err := json.Marshal(raw)
		if err != nil {
			p.errorf("raw %d: marshal: %v", i, err)
			continue
		}
		decoded, err := domain.DecodeRawMessage(domain.RawEvent{Value: payload})
		if err != nil {
			p.errorf("raw %d (%s %s): decode: %v", i, raw.Station, raw.ReportType, err)
			continue
		}

		fixture, ok := byID[decoded.ID]
		if !ok {
			p.errorf("raw %d (%s %s): ID %q not found in decoded fixture", i, raw.Station, raw.ReportType, decoded.ID)
			continue
		}
		if diff := cmp.Diff(fixture, decoded); diff != "" {
			p.errorf("ID %s: re-decode mismatch (-fixture +decoded):\n%s", decoded.ID, diff)
		}
	}

	if len(raws) != len(reports) {
		p.errorf("count mismatch: %d raw bulletins, %d decoded reports", len(raws), len(reports))
	}
	return p
}

// validateReportStructure applies the structural rules every decoded report
// must satisfy regardless of content.

func validateReportStructure(reports []domain.Report) *phase {
	p := &phase{name: "Phase 3: Report Structure"}
	for i := range reports {
		checkReport(p, i, &reports[i])
	}
	return p
}

func checkReport(p *phase, i int, r *domain.Report) {
	pf := func(format string, args ...any) {
		p.errorf("report %d (ID %s): "+format, append([]any{i, r.ID}, args...)...)
	}

	if r.ID == "" {
		pf("id is empty")
	} else if !strings.HasPrefix(r.ID, r.ReportType+"-") {
		pf("id %q doesn't start with type prefix %q-", r.ID, r.ReportType)
	}
	if r.Station == "" {
		pf("station is empty")
	}
	if r.Issued.Time.IsZero() {
		pf("issued time is zero")
	}
	if r.Raw == "" {
		pf("raw text is empty")
	}
	if r.DecodedAt.IsZero() {
		pf("decoded_at is zero")
	}

	if len(r.Periods) == 0 {
		pf("no forecast periods")
		return
	}

	prev := r.Issued.Time
	for j, period := range r.Periods {
		if !period.Time.Time.After(prev) {
			pf("period %d: time %s not after %s", j,
				period.Time.Time.Format(time.RFC3339), prev.Format(time.RFC3339))
		}
		prev = period.Time.Time
		if len(period.Fields) == 0 {
			pf("period %d: no fields decoded", j)
		}
	}
}
