package scendb

import (
	"fmt"
	"path"
	"sort"

	"github.com/openharmon/infill/common"
	"github.com/openharmon/infill/model"
)

// Point is one observation in long form: one variable of one series at one
// time step.
type Point struct {
	Key      model.SeriesKey
	Variable string
	Unit     string
	Step     model.TimeStep
	Value    float64
}

// Database is an in-memory labeled scenario timeseries table. Every operation
// returns a new database, the receiver is never mutated, so databases can be
// shared between goroutines freely.
type Database struct {
	axis   model.TimeAxis
	points []Point
}

func New(axis model.TimeAxis, points []Point) (*Database, error) {
	for _, p := range points {
		if p.Step.Axis() != axis {
			return nil, fmt.Errorf("point at %v does not match the %q time axis: %w",
				p.Step, axis, common.ErrorTimeMismatch)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Database{axis: axis, points: cp}, nil
}

func (db *Database) Axis() model.TimeAxis {
	return db.axis
}

func (db *Database) Len() int {
	return len(db.points)
}

func (db *Database) Empty() bool {
	return db == nil || len(db.points) == 0
}

func (db *Database) Points() []Point {
	cp := make([]Point, len(db.points))
	copy(cp, db.points)
	return cp
}

// Filter describes the rows to select. Values within one dimension are OR
// combined, dimensions are AND combined. An empty dimension means no
// restriction. Values are matched literally first, then as glob patterns.
type Filter struct {
	Models    []string
	Scenarios []string
	Regions   []string
	Variables []string
	Units     []string
	Steps     []model.TimeStep
}

func (f Filter) match(p Point) bool {
	return matchDim(f.Models, p.Key.Model) &&
		matchDim(f.Scenarios, p.Key.Scenario) &&
		matchDim(f.Regions, p.Key.Region) &&
		matchDim(f.Variables, p.Variable) &&
		matchDim(f.Units, p.Unit) &&
		matchStep(f.Steps, p.Step)
}

func matchDim(patterns []string, value string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if pattern == value {
			return true
		}
		if ok, err := path.Match(pattern, value); err == nil && ok {
			return true
		}
	}
	return false
}

func matchStep(steps []model.TimeStep, step model.TimeStep) bool {
	if len(steps) == 0 {
		return true
	}
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}

// Filter returns the rows matching f.
func (db *Database) Filter(f Filter) *Database {
	res := make([]Point, 0, len(db.points))
	for _, p := range db.points {
		if f.match(p) {
			res = append(res, p)
		}
	}
	return &Database{axis: db.axis, points: res}
}

// Exclude returns the rows not matching f.
func (db *Database) Exclude(f Filter) *Database {
	res := make([]Point, 0, len(db.points))
	for _, p := range db.points {
		if !f.match(p) {
			res = append(res, p)
		}
	}
	return &Database{axis: db.axis, points: res}
}

// Variables returns the sorted unique variable names in the database.
func (db *Database) Variables() []string {
	seen := map[string]bool{}
	res := []string{}
	for _, p := range db.points {
		if !seen[p.Variable] {
			seen[p.Variable] = true
			res = append(res, p.Variable)
		}
	}
	sort.Strings(res)
	return res
}

// UnitsOf returns the sorted unique units recorded for a variable.
func (db *Database) UnitsOf(variable string) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, p := range db.points {
		if p.Variable != variable {
			continue
		}
		if !seen[p.Unit] {
			seen[p.Unit] = true
			res = append(res, p.Unit)
		}
	}
	sort.Strings(res)
	return res
}

// TimeSteps returns the sorted unique time steps in the database.
func (db *Database) TimeSteps() []model.TimeStep {
	seen := map[model.TimeStep]bool{}
	res := []model.TimeStep{}
	for _, p := range db.points {
		if !seen[p.Step] {
			seen[p.Step] = true
			res = append(res, p.Step)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Before(res[j]) })
	return res
}

// Append combines two databases over the same time axis.
func (db *Database) Append(other *Database) (*Database, error) {
	if db.axis != other.axis {
		return nil, fmt.Errorf("cannot append a %q axis database to a %q axis database: %w",
			other.axis, db.axis, common.ErrorTimeMismatch)
	}
	res := make([]Point, 0, len(db.points)+len(other.points))
	res = append(res, db.points...)
	res = append(res, other.points...)
	return &Database{axis: db.axis, points: res}, nil
}
