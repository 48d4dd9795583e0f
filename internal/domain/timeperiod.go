package domain

import "time"

// TimePeriod is one of the four fixed daily windows used for recurring
// compliance checks.
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
	PeriodNight     TimePeriod = "night"
)

func (p TimePeriod) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight:
		return true
	}
	return false
}

// periodWindow is a daily window delimited by whole hours. End is exclusive.
type periodWindow struct {
	Period TimePeriod
	Start  int
	End    int
}

// Morning runs until 12:00, afternoon until 18:00, evening until 22:00.
// Night spans 22:00 to 06:00 the next day and therefore never fully elapses
// within the same calendar day; missed-night coverage is owned by the
// night-check subsystem, so the daily derivation skips it.
var dayWindows = []periodWindow{
	{Period: PeriodMorning, Start: 6, End: 12},
	{Period: PeriodAfternoon, Start: 12, End: 18},
	{Period: PeriodEvening, Start: 18, End: 22},
}

// MissingPeriod is a window whose required log entry was not observed.
type MissingPeriod struct {
	Period      TimePeriod `json:"period"`
	ShouldAlert bool       `json:"should_alert"`
}

// DeriveMissingPeriods returns the periods of now's calendar day whose
// windows have fully elapsed and for which logged contains no entry. The
// result is ordered morning, afternoon, evening. Pure: the caller supplies
// the clock.
func DeriveMissingPeriods(logged map[TimePeriod]bool, now time.Time) []MissingPeriod {
	hour := now.Hour()

	var missing []MissingPeriod
	for _, w := range dayWindows {
		if hour < w.End {
			continue
		}
		if logged[w.Period] {
			continue
		}
		missing = append(missing, MissingPeriod{Period: w.Period, ShouldAlert: true})
	}
	return missing
}

// DayBounds returns the half-open [start, end) range of now's calendar day
// in now's location, for querying a day's worth of log entries.
func DayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
