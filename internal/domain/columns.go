package domain

import "strings"

// Default tokenization for MOS data rows: a 3-character field-code prefix
// padded to 4, columns separated by spaces or pipe rulers.
const (
	defaultPrefix = 4
	defaultCutset = " |"
)

// splitColumns slices a fixed-width line into stripped tokens. The first
// prefix characters are discarded, then size-character chunks are consumed
// until fewer than size remain; each chunk is trimmed of cutset characters
// on both ends. Empty tokens mark periods without a value and are kept.
// Short or malformed lines yield fewer (possibly zero) tokens, never an
// error.
func splitColumns(line string, size, prefix int, cutset string) []string {
	if len(line) < prefix {
		return nil
	}
	line = line[prefix:]
	var tokens []string
	for len(line) >= size {
		tokens = append(tokens, strings.Trim(line[:size], cutset))
		line = line[size:]
	}
	return tokens
}
