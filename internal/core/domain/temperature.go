package domain

import (
	"fmt"
	"sort"
	"time"
)

// TemperatureReading is one temperature sample at a point in time.
type TemperatureReading struct {
	// Time is the sample timestamp as unix epoch seconds.
	Time int64

	// Celsius is the 2-meter air temperature in degrees Celsius.
	Celsius float64
}

// TemperatureSeries is a collection of temperature readings ordered by
// timestamp with map semantics: duplicate timestamps collapse, the last
// value wins, and point lookup by timestamp is O(1).
type TemperatureSeries struct {
	byTime map[int64]float64
	times  []int64
}

// NewTemperatureSeries zips parallel time and value arrays, as returned by
// the historical provider, into a series. The arrays must have equal length.
func NewTemperatureSeries(times []int64, values []float64) (TemperatureSeries, error) {
	if len(times) != len(values) {
		return TemperatureSeries{}, fmt.Errorf(
			"mismatched series lengths: %d times, %d values", len(times), len(values))
	}

	byTime := make(map[int64]float64, len(times))

	for i, t := range times {
		byTime[t] = values[i]
	}

	ordered := make([]int64, 0, len(byTime))

	for t := range byTime {
		ordered = append(ordered, t)
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	return TemperatureSeries{byTime: byTime, times: ordered}, nil
}

// Len returns the number of distinct samples in the series.
func (s TemperatureSeries) Len() int {
	return len(s.times)
}

// At returns the reading at exactly the given epoch timestamp.
func (s TemperatureSeries) At(epoch int64) (TemperatureReading, bool) {
	value, ok := s.byTime[epoch]
	if !ok {
		return TemperatureReading{}, false
	}

	return TemperatureReading{Time: epoch, Celsius: value}, true
}

// Readings returns all samples ordered by timestamp.
func (s TemperatureSeries) Readings() []TemperatureReading {
	readings := make([]TemperatureReading, 0, len(s.times))

	for _, t := range s.times {
		readings = append(readings, TemperatureReading{Time: t, Celsius: s.byTime[t]})
	}

	return readings
}

// RoundToHour rounds a civil timestamp to the nearest full hour of its own
// location, with the half-hour boundary rounding up. The historical provider
// aligns hourly samples to local full hours, which in half-hour-offset zones
// (Asia/Kolkata, Australia/Adelaide) are not full hours in UTC, so rounding
// must happen in the local calendar rather than on the epoch value.
func RoundToHour(t time.Time) time.Time {
	floor := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())

	if t.Sub(floor) >= 30*time.Minute {
		return floor.Add(time.Hour)
	}

	return floor
}
