package reservation

import (
	"fmt"
	"strconv"
	"strings"
)

const folioPrefix = "RES"

// FolioPrefix returns "RES-<year>-".
func FolioPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", folioPrefix, year)
}

// FormatFolio renders RES-<year>-<seq> with seq zero-padded to at least three digits.
func FormatFolio(year int, seq int64) string {
	return fmt.Sprintf("%s%03d", FolioPrefix(year), seq)
}

// ParseFolio splits a folio into its year and sequence.
func ParseFolio(folio string) (year int, seq int64, err error) {
	parts := strings.Split(folio, "-")
	if len(parts) != 3 || parts[0] != folioPrefix || len(parts[2]) < 3 {
		return 0, 0, fmt.Errorf("malformed folio %q", folio)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return 0, 0, fmt.Errorf("malformed folio year in %q", folio)
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("malformed folio sequence in %q", folio)
	}
	return year, seq, nil
}
