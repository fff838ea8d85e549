package pricing

import (
	"regexp"
	"strings"
)

// postcodeRe is the general UK postcode grammar. Validity is reported
// but never fatal: resolution proceeds (degraded) on invalid input.
var postcodeRe = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)

// Resolution is the outcome of a postcode lookup.
type Resolution struct {
	Area       string
	Region     string
	Multiplier float64
	Valid      bool // matched the UK postcode grammar
}

// Resolve maps a free-text postcode to a cost multiplier and region
// band. Unknown or malformed postcodes fail open to (1.0, "UK Average");
// a request is never rejected for its postcode alone.
func Resolve(postcode string) Resolution {
	normalized := strings.ToUpper(strings.TrimSpace(postcode))
	res := Resolution{
		Region:     RegionUKAverage,
		Multiplier: 1.0,
		Valid:      postcodeRe.MatchString(normalized),
	}

	area := extractArea(normalized)
	if area == "" {
		return res
	}
	entry, ok := areaTable[area]
	if !ok {
		return res
	}
	res.Area = area
	res.Region = entry.Region
	res.Multiplier = entry.Multiplier
	return res
}

// extractArea returns the leading alphabetic run (1-2 letters) before
// the first digit, which is the postcode "area".
func extractArea(normalized string) string {
	end := 0
	for end < len(normalized) && end < 2 {
		c := normalized[end]
		if c < 'A' || c > 'Z' {
			break
		}
		end++
	}
	if end == 0 {
		return ""
	}
	// An area must be followed by a digit; a pure-letter prefix longer
	// than two characters is not a postcode area.
	if end < len(normalized) {
		c := normalized[end]
		if c < '0' || c > '9' {
			return ""
		}
	}
	return normalized[:end]
}
