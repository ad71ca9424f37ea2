package snippet

import (
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current instant to time-dependent code. Production
// callers use time.Now; tests inject a fixed instant for determinism.
type Clock func() time.Time

// Placeholder tokens recognized by Expand. The set is closed: any other
// {{...}} sequence is left verbatim in the output.
const (
	TokenDate      = "{{date}}"
	TokenTime      = "{{time}}"
	TokenDatetime  = "{{datetime}}"
	TokenTimestamp = "{{timestamp}}"
	TokenYear      = "{{year}}"
	TokenMonth     = "{{month}}"
	TokenDay       = "{{day}}"
)

// Expand substitutes every occurrence of each placeholder token in
// template with its value derived from now, and returns the result.
//
// The date token uses UTC calendar fields; time, datetime, year, month
// and day use the local wall-clock fields of now; timestamp is absolute.
// Replacement is a single left-to-right scan, so a substituted value is
// never re-examined and partial token names never match.
func Expand(template string, now time.Time) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	r := strings.NewReplacer(
		TokenDate, now.UTC().Format("2006-01-02"),
		TokenTime, now.Format("03:04 PM"),
		TokenDatetime, now.Format("1/2/2006, 3:04:05 PM"),
		TokenTimestamp, strconv.FormatInt(now.UnixMilli(), 10),
		TokenYear, now.Format("2006"),
		TokenMonth, now.Format("01"),
		TokenDay, now.Format("02"),
	)
	return r.Replace(template)
}
