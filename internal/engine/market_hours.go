package engine

import (
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// tradingWindow is a half-open range of minutes after UTC midnight. end may be minutesPerDay.
type tradingWindow struct {
	start int
	end   int
}

// MarketHours is a weekly UTC trading schedule.
//
// A window ending at 24:00 continues into the next day's window starting at 00:00, so the
// market is not considered closing at midnight while it keeps trading. WithMidnightSplit
// turns that off and measures every window to its own end.
type MarketHours struct {
	days            map[time.Weekday][]tradingWindow
	splitAtMidnight bool
}

// HoursOption configures a MarketHours.
type HoursOption func(*MarketHours)

// WithMidnightSplit treats midnight as the end of a session, so positions are force-closed
// ahead of every 24:00 boundary.
func WithMidnightSplit() HoursOption {
	return func(mh *MarketHours) { mh.splitAtMidnight = true }
}

// DefaultMarketHours is the spot gold CFD schedule.
func DefaultMarketHours(opts ...HoursOption) *MarketHours {
	hours, err := ParseMarketHours(map[time.Weekday][]string{
		time.Monday:    {"00:00 - 21:59", "23:00 - 00:00"},
		time.Tuesday:   {"00:00 - 21:59", "23:00 - 00:00"},
		time.Wednesday: {"00:00 - 21:59", "23:00 - 00:00"},
		time.Thursday:  {"00:00 - 19:30", "23:00 - 00:00"},
		time.Friday:    {"00:00 - 19:45"},
		time.Saturday:  {},
		time.Sunday:    {"23:00 - 00:00"},
	}, opts...)
	if err != nil {
		panic(err)
	}
	return hours
}

// ParseMarketHours builds a schedule from "HH:MM - HH:MM" ranges. An end of 00:00 means midnight.
func ParseMarketHours(schedule map[time.Weekday][]string, opts ...HoursOption) (*MarketHours, error) {
	mh := &MarketHours{days: make(map[time.Weekday][]tradingWindow, len(schedule))}
	for _, opt := range opts {
		opt(mh)
	}
	for day, ranges := range schedule {
		for _, r := range ranges {
			w, err := parseWindow(r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", day, err)
			}
			mh.days[day] = append(mh.days[day], w)
		}
	}
	return mh, nil
}

func parseWindow(r string) (tradingWindow, error) {
	parts := strings.Split(r, "-")
	if len(parts) != 2 {
		return tradingWindow{}, fmt.Errorf("invalid range %q", r)
	}
	start, err := parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return tradingWindow{}, err
	}
	end, err := parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return tradingWindow{}, err
	}
	if end == 0 {
		end = minutesPerDay
	}
	if end <= start {
		return tradingWindow{}, fmt.Errorf("range %q ends before it starts", r)
	}
	return tradingWindow{start: start, end: end}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesUntilClose returns the minutes left in the session containing t, following a
// session across midnight when the next day's schedule picks up at 00:00 unless the
// schedule splits at midnight. ok is false when t falls outside every session.
func (mh *MarketHours) MinutesUntilClose(t time.Time) (minutes int, ok bool) {
	t = t.UTC()
	day := t.Weekday()
	now := t.Hour()*60 + t.Minute()

	w, found := mh.windowAt(day, now)
	if !found {
		return 0, false
	}
	minutes = w.end - now
	if mh.splitAtMidnight {
		return minutes, true
	}

	// A week of chained full-day windows is treated as a single session ending after a week.
	for i := 0; i < 7 && w.end == minutesPerDay; i++ {
		day = (day + 1) % 7
		next, found := mh.windowAt(day, 0)
		if !found {
			break
		}
		w = next
		minutes += w.end
	}
	return minutes, true
}

// WillCloseWithin reports whether the market closes within the given minutes of t.
// Times outside every session count as closing.
func (mh *MarketHours) WillCloseWithin(t time.Time, minutes int) bool {
	left, ok := mh.MinutesUntilClose(t)
	if !ok {
		return true
	}
	return left <= minutes
}

func (mh *MarketHours) windowAt(day time.Weekday, minute int) (tradingWindow, bool) {
	for _, w := range mh.days[day] {
		if minute >= w.start && minute < w.end {
			return w, true
		}
	}
	return tradingWindow{}, false
}
