package model

import (
	"strconv"
	"time"
)

// TimeAxis identifies how the time column of a database is represented.
// A relationship derived from yearly data can only fill yearly data, and the
// same for date based data.
type TimeAxis string

const (
	YearAxis     TimeAxis = "year"
	DatetimeAxis TimeAxis = "time"
)

// TimeStep identifies one column of a timeseries table. On the year axis only
// Year is set, on the datetime axis only At is set. Steps are comparable and
// used as map keys, so datetime steps must be constructed consistently
// (same location).
type TimeStep struct {
	Year int       `json:"year,omitempty"`
	At   time.Time `json:"at,omitempty"`
}

func YearStep(year int) TimeStep {
	return TimeStep{Year: year}
}

func DatetimeStep(at time.Time) TimeStep {
	return TimeStep{At: at}
}

func (t TimeStep) Axis() TimeAxis {
	if t.At.IsZero() {
		return YearAxis
	}
	return DatetimeAxis
}

func (t TimeStep) Before(other TimeStep) bool {
	if t.Year != other.Year {
		return t.Year < other.Year
	}
	return t.At.Before(other.At)
}

func (t TimeStep) String() string {
	if !t.At.IsZero() {
		return t.At.Format(time.RFC3339)
	}
	return strconv.Itoa(t.Year)
}

// SeriesKey identifies one row of a timeseries table.
type SeriesKey struct {
	Model    string `json:"model"`
	Scenario string `json:"scenario"`
	Region   string `json:"region"`
}

func (k SeriesKey) Less(other SeriesKey) bool {
	if k.Model != other.Model {
		return k.Model < other.Model
	}
	if k.Scenario != other.Scenario {
		return k.Scenario < other.Scenario
	}
	return k.Region < other.Region
}

func (k SeriesKey) String() string {
	return k.Model + "|" + k.Scenario + "|" + k.Region
}
