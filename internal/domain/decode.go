package domain

import "strings"

// climoMarker starts the climatology block MEX bulletins may append to the
// right of the grid. Everything from the marker on must be cut from every
// line or column alignment breaks for the rest of the bulletin.
const climoMarker = " CLIMO"

// formatSpec fixes the shape of one bulletin variant: column width, where the
// hour line sits, where data rows start, the resolved handler table, and any
// preprocessing of the raw lines.
type formatSpec struct {
	reportType string
	size       int
	hourLine   int
	hourPrefix int
	dataStart  int
	handlers   map[string]handlerEntry
	preprocess func(lines []string) []string
	convert    NumberConverter
}

var mavFormat = formatSpec{
	reportType: ReportTypeMAV,
	size:       3,
	hourLine:   2,
	hourPrefix: defaultPrefix,
	dataStart:  3,
	handlers:   mavHandlers,
	convert:    ParseNumber,
}

var mexFormat = formatSpec{
	reportType: ReportTypeMEX,
	size:       4,
	hourLine:   1,
	hourPrefix: defaultPrefix,
	dataStart:  3,
	handlers:   mexHandlers,
	preprocess: truncateClimo,
	convert:    ParseNumber,
}

// DecodeMAV decodes a short-range (MAV) MOS bulletin. Empty input yields a
// nil report with no error; an unreadable header timestamp is the only fatal
// condition.
func DecodeMAV(text string) (*Report, error) {
	return decode(text, mavFormat)
}

// DecodeMEX decodes an extended-range (MEX) MOS bulletin. Any appended CLIMO
// block is stripped before decoding. Error semantics match [DecodeMAV].
func DecodeMEX(text string) (*Report, error) {
	return decode(text, mexFormat)
}

func decode(text string, spec formatSpec) (*Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")

	// The header is timestamped before any preprocessing so a CLIMO block
	// starting unusually far left can never clip the timestamp span.
	issued, err := headerTimestamp(lines[0])
	if err != nil {
		return nil, err
	}
	station := lines[0][:4]
	if spec.preprocess != nil {
		lines = spec.preprocess(lines)
	}

	hours := splitColumns(lineAt(lines, spec.hourLine), spec.size, spec.hourPrefix, defaultCutset)
	periods := buildTimeline(hours, issued.Time)
	mergeRows(periods, tailLines(lines, spec.dataStart), spec.size, spec.handlers, spec.convert)

	return &Report{
		ID:         generateID(station, spec.reportType, issued.Time),
		Station:    station,
		ReportType: spec.reportType,
		Issued:     issued,
		Periods:    periods,
		Raw:        text,
	}, nil
}

// mergeRows routes each data row to its handler by 3-character field code and
// merges the per-period results into the periods in place. Unknown codes and
// short lines are annotation noise and skipped silently. Absent values never
// overwrite; a later row for the same field wins over an earlier one. Pair
// results merge element-wise, so an absent first element does not block a
// present second one.
func mergeRows(periods []Period, lines []string, size int, handlers map[string]handlerEntry, conv NumberConverter) {
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		entry, ok := handlers[line[:3]]
		if !ok {
			continue
		}
		values := entry.handler(line, size, conv)
		for i := range periods {
			if i >= len(values) {
				break
			}
			value := values[i]
			switch {
			case value.pair != nil:
				for j, field := range entry.fields {
					if j < len(value.pair) && value.pair[j] != nil {
						periods[i].Fields[field] = FieldValue{Number: value.pair[j]}
					}
				}
			case value.scalar != nil:
				periods[i].Fields[entry.fields[0]] = *value.scalar
			}
		}
	}
}

// truncateClimo cuts every line at the column where the CLIMO block starts,
// located on the third line when present.
func truncateClimo(lines []string) []string {
	if len(lines) < 3 {
		return lines
	}
	index := strings.Index(lines[2], climoMarker)
	if index < 0 {
		return lines
	}
	truncated := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > index {
			line = line[:index]
		}
		truncated[i] = line
	}
	return truncated
}

func lineAt(lines []string, index int) string {
	if index >= len(lines) {
		return ""
	}
	return lines[index]
}

func tailLines(lines []string, start int) []string {
	if start >= len(lines) {
		return nil
	}
	return lines[start:]
}
