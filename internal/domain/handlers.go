package domain

// Paired rows (thunderstorm/severe) use a wider prefix and slash separators:
//
//	T06      6/ 1  12/ 3   ...
const (
	pairPrefix = 5
	pairCutset = " /"
)

// slotValue is the decoded result for one period slot of a data row.
// The zero value is absent. Scalar handlers set scalar; the paired handler
// sets pair, whose elements are independently nilable.
type slotValue struct {
	scalar *FieldValue
	pair   []*Number
}

// rowHandler converts one data-row line into per-period slot values aligned
// with the hour-line tokenization. Handlers never fail: slots without a
// usable token are absent.
type rowHandler func(line string, size int, conv NumberConverter) []slotValue

// handlerEntry binds a field code to its destination field name(s) and row
// handler. Paired handlers list two names, one per pair element.
type handlerEntry struct {
	fields  []string
	handler rowHandler
}

// numberRow decodes a numeric row. The postfix is appended to each token
// before conversion; wind direction uses it to restore the trailing zero of
// tens-of-degrees encoding.
func numberRow(postfix string) rowHandler {
	return func(line string, size int, conv NumberConverter) []slotValue {
		tokens := splitColumns(line, size, defaultPrefix, defaultCutset)
		values := make([]slotValue, len(tokens))
		for i, token := range tokens {
			if token == "" {
				continue
			}
			if n := conv(token + postfix); n != nil {
				values[i].scalar = &FieldValue{Number: n}
			}
		}
		return values
	}
}

// codeRow decodes a categorical row, carrying each non-empty token through
// unchanged.
func codeRow(line string, size int, _ NumberConverter) []slotValue {
	tokens := splitColumns(line, size, defaultPrefix, defaultCutset)
	values := make([]slotValue, len(tokens))
	for i, token := range tokens {
		if token != "" {
			values[i].scalar = &FieldValue{Code: token}
		}
	}
	return values
}

// pairRow decodes rows whose values arrive as adjacent-column pairs. Scanning
// left to right, a non-empty token becomes the pending first element; the
// next non-empty token completes the pair, which lands on that token's slot.
// Isolated tokens, including a trailing one with no partner, yield absent
// slots rather than one-element pairs.
func pairRow(line string, size int, conv NumberConverter) []slotValue {
	tokens := splitColumns(line, size, pairPrefix, pairCutset)
	values := make([]slotValue, len(tokens))
	var pending *Number
	for i, token := range tokens {
		switch {
		case token == "":
		case pending != nil:
			values[i].pair = []*Number{pending, conv(token)}
			pending = nil
		default:
			pending = conv(token)
		}
	}
	return values
}

// baseHandlers covers the field codes shared by both formats.
var baseHandlers = map[string]handlerEntry{
	"TMP": {fields: []string{"temperature"}, handler: numberRow("")},
	"DPT": {fields: []string{"dewpoint"}, handler: numberRow("")},
	"CLD": {fields: []string{"cloud"}, handler: codeRow},
	"WDR": {fields: []string{"wind_direction"}, handler: numberRow("0")},
	"WSP": {fields: []string{"wind_speed"}, handler: numberRow("")},
	"P06": {fields: []string{"precip_chance_6"}, handler: numberRow("")},
	"P12": {fields: []string{"precip_chance_12"}, handler: numberRow("")},
	"P24": {fields: []string{"precip_chance_24"}, handler: numberRow("")},
	"Q06": {fields: []string{"precip_amount_6"}, handler: numberRow("")},
	"Q12": {fields: []string{"precip_amount_12"}, handler: numberRow("")},
	"Q24": {fields: []string{"precip_amount_24"}, handler: numberRow("")},
	"TYP": {fields: []string{"precip_type"}, handler: codeRow},
}

// Per-format overlays. T12 means a thunderstorm/severe pair in MAV but a
// single cumulative thunderstorm probability in MEX, so each format owns its
// resolved table.
var mavHandlers = overlayHandlers(baseHandlers, map[string]handlerEntry{
	"T06": {fields: []string{"thunder_storm_6", "severe_storm_6"}, handler: pairRow},
	"T12": {fields: []string{"thunder_storm_12", "severe_storm_12"}, handler: pairRow},
	"POZ": {fields: []string{"freezing_precip"}, handler: numberRow("")},
	"POS": {fields: []string{"snow"}, handler: numberRow("")},
	"CIG": {fields: []string{"ceiling"}, handler: numberRow("")},
	"VIS": {fields: []string{"visibility"}, handler: numberRow("")},
	"OBV": {fields: []string{"vis_obstruction"}, handler: codeRow},
})

var mexHandlers = overlayHandlers(baseHandlers, map[string]handlerEntry{
	"T12": {fields: []string{"thunder_storm_12"}, handler: numberRow("")},
	"T24": {fields: []string{"thunder_storm_24"}, handler: numberRow("")},
	"PZP": {fields: []string{"freezing_precip"}, handler: numberRow("")},
	"PRS": {fields: []string{"rain_snow_mix"}, handler: numberRow("")},
	"PSN": {fields: []string{"snow"}, handler: numberRow("")},
	"SNW": {fields: []string{"snow_amount_24"}, handler: numberRow("")},
})

// overlayHandlers builds a format's resolved table once at startup, with
// overlay entries winning on a code collision. The result is never mutated.
func overlayHandlers(base, overlay map[string]handlerEntry) map[string]handlerEntry {
	merged := make(map[string]handlerEntry, len(base)+len(overlay))
	for code, entry := range base {
		merged[code] = entry
	}
	for code, entry := range overlay {
		merged[code] = entry
	}
	return merged
}
