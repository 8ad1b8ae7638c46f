// Package schedule computes training durations from course time ranges.
package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var clockLayouts = []string{
	"15:04",
	"3:04PM",
	"3:04 PM",
	"3PM",
	"3 PM",
}

var minutesPerHour = decimal.NewFromInt(60)

const minutesPerDay = 24 * 60

type span struct {
	start, end int // minutes since midnight
}

// NetTrainingHours returns the hours covered by timeRange, rounded to two places.
//
// timeRange holds one or more "start - end" ranges separated by ',' or ';',
// for example "09:00 - 12:30, 1:30 PM - 5 PM". Overlapping ranges count once.
// An end of "24:00", "00:00" or "12 AM" means the midnight closing the day.
func NetTrainingHours(timeRange string) (decimal.Decimal, error) {
	if strings.TrimSpace(timeRange) == "" {
		return decimal.Zero, fmt.Errorf("time range is empty")
	}

	parts := strings.FieldsFunc(timeRange, func(r rune) bool {
		return r == ',' || r == ';'
	})

	spans := make([]span, 0, len(parts))

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		s, err := parseSpan(part)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parseSpan[%s]: %w", strings.TrimSpace(part), err)
		}

		spans = append(spans, s)
	}

	if len(spans) == 0 {
		return decimal.Zero, fmt.Errorf("time range is empty")
	}

	minutes := mergedMinutes(spans)

	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2), nil
}

func parseSpan(s string) (span, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return span{}, fmt.Errorf("separator '-' is missing")
	}

	startMin, err := parseClock(start)
	if err != nil {
		return span{}, fmt.Errorf("start: %w", err)
	}

	endMin, err := parseEndClock(end)
	if err != nil {
		return span{}, fmt.Errorf("end: %w", err)
	}

	if endMin <= startMin {
		return span{}, fmt.Errorf("end must be after start")
	}

	return span{start: startMin, end: endMin}, nil
}

func parseEndClock(s string) (int, error) {
	if strings.TrimSpace(s) == "24:00" {
		return minutesPerDay, nil
	}

	minutes, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	if minutes == 0 {
		return minutesPerDay, nil
	}

	return minutes, nil
}

func parseClock(s string) (int, error) {
	value := strings.ToUpper(strings.TrimSpace(s))

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}

	return 0, fmt.Errorf("clock[%s] is not valid", strings.TrimSpace(s))
}

func mergedMinutes(spans []span) int {
	slices.SortFunc(spans, func(a, b span) int {
		return a.start - b.start
	})

	var (
		total   int
		current = spans[0]
	)

	for _, s := range spans[1:] {
		if s.start > current.end {
			total += current.end - current.start
			current = s
			continue
		}
		current.end = max(current.end, s.end)
	}

	return total + current.end - current.start
}
