package plan

import (
	"fmt"

	"github.com/truecost/truecost/pkg/resolve"
	"github.com/truecost/truecost/pkg/types"
)

// LegacyShape identifies one of the two canonical TOU schedules recognized by
// exact boundary match. Anything else is a windowed schedule.
type LegacyShape int

const (
	LegacyNone LegacyShape = iota
	// LegacyDayNightAllDays is 07:00-20:00 day / 20:00-07:00 night, every day.
	LegacyDayNightAllDays
	// LegacyWeekdayWeekendAllDay is 00:00-24:00 with a weekday and a weekend rate.
	LegacyWeekdayWeekendAllDay
)

// TouPeriod is one time-of-use pricing window.
type TouPeriod struct {
	DayType     types.DayType
	StartHHMM   int
	EndHHMM     int
	CentsPerKwh float64
}

// FullDay reports whether the period covers the whole day.
func (p TouPeriod) FullDay() bool {
	return p.StartHHMM == 0 && p.EndHHMM == types.EndOfDayHHMM
}

// BucketKey returns the usage bucket the period's kWh must come from:
// the day-type total for full-day windows, the windowed key otherwise.
func (p TouPeriod) BucketKey() types.BucketKey {
	if p.FullDay() {
		return types.TotalBucketKey(p.DayType)
	}
	return types.WindowBucketKey(p.DayType, p.StartHHMM, p.EndHHMM)
}

// TouSchedule is a parsed time-of-use schedule.
type TouSchedule struct {
	Legacy  LegacyShape
	Periods []TouPeriod
}

// ExtractTouSchedule parses the TOU period array out of the blob and detects
// the legacy canonical shapes. It fails on empty, malformed, or
// ambiguously-priced periods.
func ExtractTouSchedule(rs types.RateStructure) (*TouSchedule, error) {
	var raw []any
	for _, f := range touPeriodFields {
		if s, ok := rs.Slice(f); ok {
			raw = s
			break
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("time-of-use plan has no periods")
	}

	periods := make([]TouPeriod, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tou period %d is not an object", i)
		}
		p, err := parseTouPeriod(types.RateStructure(m))
		if err != nil {
			return nil, fmt.Errorf("tou period %d: %w", i, err)
		}
		periods = append(periods, p)
	}

	return &TouSchedule{
		Legacy:  detectLegacyShape(periods),
		Periods: periods,
	}, nil
}

func parseTouPeriod(m types.RateStructure) (TouPeriod, error) {
	d := types.DayTypeAll
	if s, ok := m.String("dayType"); ok {
		d = types.DayType(s)
	} else if s, ok := m.String("days"); ok {
		d = types.DayType(s)
	}
	if !d.Valid() {
		return TouPeriod{}, fmt.Errorf("unknown day type %q", d)
	}

	start, err := parseHHMM(m, "start", "startHHMM", "startTime")
	if err != nil {
		return TouPeriod{}, err
	}
	end, err := parseHHMM(m, "end", "endHHMM", "endTime")
	if err != nil {
		return TouPeriod{}, err
	}
	if end == 0 {
		// a window ending at midnight must use the 2400 sentinel
		return TouPeriod{}, fmt.Errorf("period end 0000 must be %04d", types.EndOfDayHHMM)
	}

	rate, ok := resolve.ResolveUniqueFloat(
		m.Raw("centsPerKwh", "rateCents", "energyRateCents"),
		resolve.EnergyCentsPerKwh,
	)
	if !ok {
		return TouPeriod{}, fmt.Errorf("no confident period rate")
	}

	return TouPeriod{DayType: d, StartHHMM: start, EndHHMM: end, CentsPerKwh: rate}, nil
}

func parseHHMM(m types.RateStructure, aliases ...string) (int, error) {
	for _, a := range aliases {
		f, ok := m.Number(a)
		if !ok {
			continue
		}
		v := int(f)
		if float64(v) != f || v < 0 || v > types.EndOfDayHHMM || (v != types.EndOfDayHHMM && v%100 >= 60) {
			return 0, fmt.Errorf("invalid time %v in %s", f, a)
		}
		return v, nil
	}
	return 0, fmt.Errorf("missing time field (%v)", aliases)
}

// detectLegacyShape matches the two canonical shapes by exact boundary match,
// with no tolerance. Order of the periods does not matter.
func detectLegacyShape(periods []TouPeriod) LegacyShape {
	if len(periods) != 2 {
		return LegacyNone
	}
	a, b := periods[0], periods[1]

	isDayNight := func(day, night TouPeriod) bool {
		return day.DayType == types.DayTypeAll && night.DayType == types.DayTypeAll &&
			day.StartHHMM == 700 && day.EndHHMM == 2000 &&
			night.StartHHMM == 2000 && night.EndHHMM == 700
	}
	if isDayNight(a, b) || isDayNight(b, a) {
		return LegacyDayNightAllDays
	}

	isWdWe := func(wd, we TouPeriod) bool {
		return wd.DayType == types.DayTypeWeekday && we.DayType == types.DayTypeWeekend &&
			wd.FullDay() && we.FullDay()
	}
	if isWdWe(a, b) || isWdWe(b, a) {
		return LegacyWeekdayWeekendAllDay
	}

	return LegacyNone
}
