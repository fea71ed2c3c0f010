package service

import (
	"fmt"
	"strings"
	"time"

	// embedded zone database so Asia/Jakarta resolves on slim images
	_ "time/tzdata"
)

var sheetTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// JakartaLocation returns Asia/Jakarta, or a fixed +07:00 zone if the zone
// database cannot be loaded.
func JakartaLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// FormatJakartaISO renders t as 2006-01-02T15:04:05+07:00.
func FormatJakartaISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(JakartaLocation()).Format(time.RFC3339)
}

// ParseSheetTime accepts RFC 3339 or a local date/time that is read in loc.
func ParseSheetTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range sheetTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
}
