package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DayType selects which days of the week a bucket or TOU period covers.
type DayType string

const (
	DayTypeAll     DayType = "all"
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// Valid reports whether the day type is one of the known values.
func (d DayType) Valid() bool {
	return d == DayTypeAll || d == DayTypeWeekday || d == DayTypeWeekend
}

// WindowTotal is the window spelling for a full-month (no time slice) bucket.
const WindowTotal = "total"

// EndOfDayHHMM is the sentinel for midnight at the end of the day. A window
// ending at 2400 covers through the last minute of the day.
const EndOfDayHHMM = 2400

// BucketKey identifies a pre-aggregated kWh quantity over a day-type and
// time-window slice within a month. The wire grammar is
// kwh.m.<dayType>.<window> where window is "total" or "HHMM-HHMM".
type BucketKey struct {
	DayType   DayType
	Total     bool
	StartHHMM int
	EndHHMM   int
}

// TotalBucketKey returns the full-month key for a day type.
func TotalBucketKey(d DayType) BucketKey {
	return BucketKey{DayType: d, Total: true}
}

// WindowBucketKey returns the windowed key for a day type.
func WindowBucketKey(d DayType, startHHMM, endHHMM int) BucketKey {
	return BucketKey{DayType: d, StartHHMM: startHHMM, EndHHMM: endHHMM}
}

// String renders the key in wire form.
func (k BucketKey) String() string {
	if k.Total {
		return fmt.Sprintf("kwh.m.%s.%s", k.DayType, WindowTotal)
	}
	return fmt.Sprintf("kwh.m.%s.%04d-%04d", k.DayType, k.StartHHMM, k.EndHHMM)
}

// ParseBucketKey parses a wire-form bucket key.
func ParseBucketKey(s string) (BucketKey, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 || parts[0] != "kwh" || parts[1] != "m" {
		return BucketKey{}, fmt.Errorf("invalid bucket key: %s", s)
	}
	d := DayType(parts[2])
	if !d.Valid() {
		return BucketKey{}, fmt.Errorf("invalid bucket day type: %s", s)
	}
	if parts[3] == WindowTotal {
		return TotalBucketKey(d), nil
	}
	var start, end int
	if _, err := fmt.Sscanf(parts[3], "%4d-%4d", &start, &end); err != nil ||
		len(parts[3]) != 9 {
		return BucketKey{}, fmt.Errorf("invalid bucket window: %s", s)
	}
	if !validHHMM(start) || !validHHMM(end) || end == 0 {
		return BucketKey{}, fmt.Errorf("invalid bucket window bounds: %s", s)
	}
	return WindowBucketKey(d, start, end), nil
}

func validHHMM(v int) bool {
	if v == EndOfDayHHMM {
		return true
	}
	return v >= 0 && v < 2400 && v%100 < 60
}

// UsageBucketsByMonth maps a YYYY-MM month key to the kWh recorded for each
// bucket key in that month.
type UsageBucketsByMonth map[string]map[string]float64

// Months returns the month keys in ascending order.
func (u UsageBucketsByMonth) Months() []string {
	out := make([]string, 0, len(u))
	for m := range u {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// TrailingMonths returns the most recent n month keys in ascending order and
// whether n months were available.
func (u UsageBucketsByMonth) TrailingMonths(n int) ([]string, bool) {
	all := u.Months()
	if len(all) < n {
		return all, false
	}
	return all[len(all)-n:], true
}

// Kwh returns the kWh for the given bucket key in a month.
func (u UsageBucketsByMonth) Kwh(month string, key BucketKey) (float64, bool) {
	buckets, ok := u[month]
	if !ok {
		return 0, false
	}
	v, ok := buckets[key.String()]
	return v, ok
}

// ValidMonthKey reports whether s is a YYYY-MM month key.
func ValidMonthKey(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil || y < 1900 {
		return false
	}
	m, err := strconv.Atoi(s[5:])
	return err == nil && m >= 1 && m <= 12
}
