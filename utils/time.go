package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts found in the DATE-OBS and DATE-END keywords of FITS headers
var FITS_TIME_LAYOUTS = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// Parses a FITS date keyword, interpreting timestamps without a zone as UTC
func ParseFITSTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range FITS_TIME_LAYOUTS {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Could not parse FITS timestamp %q", s)
}
