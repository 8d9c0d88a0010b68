package table

import (
	"regexp"
	"strconv"
	"time"
)

var (
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDate   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// DateFilterFromISO converts a date-input value (yyyy-mm-dd) to the stored
// createdAt filter form d/mm/yyyy, e.g. "2020-05-01" → "1/05/2020".
// Anything else yields "".
func DateFilterFromISO(iso string) string {
	m := isoDate.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[3])
	return strconv.Itoa(day) + "/" + m[2] + "/" + m[1]
}

// DateFilterToISO converts a stored createdAt filter back to yyyy-mm-dd
// so a date input can be prefilled.  It accepts d/m/yyyy, dd/mm/yyyy, or
// an RFC 3339 / yyyy-mm-dd date; anything else yields "".
func DateFilterToISO(v string) string {
	if v == "" {
		return ""
	}
	if m := slashDate.FindStringSubmatch(v); m != nil {
		return m[3] + "-" + pad2s(m[2]) + "-" + pad2s(m[1])
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

func pad2s(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
