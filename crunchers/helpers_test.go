package crunchers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/scendb"
)

const (
	eco2   = "Emissions|CO2"
	gtc    = "Gt C/yr"
	ech4   = "Emissions|CH4"
	mtch4  = "Mt CH4/yr"
	ec5f12 = "Emissions|HFC|C5F12"
	ec2f6  = "Emissions|HFC|C2F6"
	ktc2f6 = "kt C2F6/yr"
)

func series(m, s, variable, unit string, years []int, values []float64) []scendb.Point {
	points := make([]scendb.Point, 0, len(years))
	for i, year := range years {
		points = append(points, scendb.Point{
			Key:      model.SeriesKey{Model: m, Scenario: s, Region: "World"},
			Variable: variable,
			Unit:     unit,
			Step:     model.YearStep(year),
			Value:    values[i],
		})
	}
	return points
}

func mustDb(t *testing.T, points ...[]scendb.Point) *scendb.Database {
	t.Helper()
	flat := []scendb.Point{}
	for _, ps := range points {
		flat = append(flat, ps...)
	}
	db, err := scendb.New(model.YearAxis, flat)
	require.NoError(t, err)
	return db
}

// testDb mirrors the reference fixture: two emissions variables over four
// decades plus two single-series HFC variables (one with an intentionally
// odd unit).
func testDb(t *testing.T) *scendb.Database {
	years := []int{2010, 2030, 2050, 2070}
	return mustDb(t,
		series("model_a", "scen_a", eco2, gtc, years, []float64{1, 2, 3, 4}),
		series("model_a", "scen_b", eco2, gtc, years, []float64{1, 2, 2, 1}),
		series("model_b", "scen_a", eco2, gtc, years, []float64{0.5, 3.5, 3.5, 0.5}),
		series("model_b", "scen_b", eco2, gtc, years, []float64{3.5, 0.5, 0.5, 3.5}),
		series("model_a", "scen_a", ech4, mtch4, years, []float64{100, 200, 300, 400}),
		series("model_a", "scen_b", ech4, mtch4, years, []float64{100, 200, 250, 300}),
		series("model_b", "scen_a", ech4, mtch4, years, []float64{220, 260, 250, 230}),
		series("model_b", "scen_b", ech4, mtch4, years, []float64{50, 200, 500, 800}),
		series("model_a", "scen_a", ec5f12, mtch4, years, []float64{3.14, 4, 5, 6}),
		series("model_a", "scen_a", ec2f6, ktc2f6, years, []float64{1.2, 1.5, 1, 0.5}),
	)
}

// largeDb holds five scenarios at a single year, enough spread to exercise
// several windows.
func largeDb(t *testing.T) *scendb.Database {
	y := []int{2010}
	return mustDb(t,
		series("model_a", "scen_a", eco2, gtc, y, []float64{1}),
		series("model_a", "scen_b", eco2, gtc, y, []float64{5}),
		series("model_b", "scen_c", eco2, gtc, y, []float64{0.5}),
		series("model_b", "scen_d", eco2, gtc, y, []float64{3.5}),
		series("model_b", "scen_e", eco2, gtc, y, []float64{0.5}),
		series("model_a", "scen_a", ech4, mtch4, y, []float64{100}),
		series("model_a", "scen_b", ech4, mtch4, y, []float64{170}),
		series("model_b", "scen_c", ech4, mtch4, y, []float64{220}),
		series("model_b", "scen_d", ech4, mtch4, y, []float64{50}),
		series("model_b", "scen_e", ech4, mtch4, y, []float64{150}),
	)
}

func smallDb(t *testing.T) *scendb.Database {
	y := []int{2010}
	return mustDb(t,
		series("model_b", "scen_a", eco2, gtc, y, []float64{1.2}),
		series("model_a", "scen_b", eco2, gtc, y, []float64{2.3}),
	)
}

// simpleDb is the two-point-per-scenario fixture whose quantile flip points
// have closed-form values.
func simpleDb(t *testing.T) *scendb.Database {
	years := []int{2010, 2030, 2050}
	return mustDb(t,
		series("model_c", "scen_a", eco2, gtc, years, []float64{0, 1000, 5000}),
		series("model_c", "scen_b", eco2, gtc, years, []float64{1, 1000, 5000}),
		series("model_c", "scen_a", ech4, mtch4, years, []float64{0, 300, 500}),
		series("model_c", "scen_b", ech4, mtch4, years, []float64{1, 300, 500}),
	)
}

func downscaleDb(t *testing.T) *scendb.Database {
	years := []int{2010, 2030, 2050, 2070}
	return mustDb(t,
		series("model_c", "scen_a", eco2, gtc, years, []float64{1, 2, 3, 4}),
		series("model_c", "scen_b", eco2, gtc, years, []float64{0.5, 0.5, 0.5, 0.5}),
		series("model_c", "scen_c", eco2, gtc, years, []float64{5, 5, 5, 5}),
		series("model_a", "scen_c", eco2, gtc, years, []float64{1.5, 2.5, 2.8, 1.8}),
	)
}

func datetimeDb(t *testing.T, src *scendb.Database) *scendb.Database {
	t.Helper()
	points := src.Points()
	for i := range points {
		points[i].Step = model.DatetimeStep(time.Date(points[i].Step.Year, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	db, err := scendb.New(model.DatetimeAxis, points)
	require.NoError(t, err)
	return db
}

// observeLogs swaps the global logger for an observed one and restores it
// when the test ends.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

// valueAt pulls the single value for one scenario and year out of a result
// database.
func valueAt(t *testing.T, db *scendb.Database, scenario string, year int) float64 {
	t.Helper()
	sub := db.Filter(scendb.Filter{
		Scenarios: []string{scenario},
		Steps:     []model.TimeStep{model.YearStep(year)},
	})
	points := sub.Points()
	require.Len(t, points, 1)
	return points[0].Value
}

// valuesAt pulls every value at one year.
func valuesAt(db *scendb.Database, year int) []float64 {
	res := []float64{}
	for _, p := range db.Filter(scendb.Filter{Steps: []model.TimeStep{model.YearStep(year)}}).Points() {
		res = append(res, p.Value)
	}
	return res
}
