package scendb

import (
	"fmt"
	"math"
	"sort"

	"github.com/openharmon/infill/common"
	"github.com/openharmon/infill/model"
	"github.com/openharmon/infill/utils"
)

// WideTable is the database reshaped to one row per series identity and one
// column per time step, with one value matrix per variable. Cells without an
// observation hold NaN.
type WideTable struct {
	Keys  []model.SeriesKey
	Steps []model.TimeStep

	values map[string][][]float64 // variable -> [key index][step index]
}

// Wide reshapes the given variables of the database. A series observed twice
// for the same variable and time step is an error.
func (db *Database) Wide(variables ...string) (*WideTable, error) {
	sub := db.Filter(Filter{Variables: variables})

	keyIdx := map[model.SeriesKey]int{}
	stepIdx := map[model.TimeStep]int{}
	for _, p := range sub.points {
		if _, ok := keyIdx[p.Key]; !ok {
			keyIdx[p.Key] = 0
		}
		if _, ok := stepIdx[p.Step]; !ok {
			stepIdx[p.Step] = 0
		}
	}

	keys := make([]model.SeriesKey, 0, len(keyIdx))
	for k := range keyIdx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	for i, k := range keys {
		keyIdx[k] = i
	}

	steps := sub.TimeSteps()
	for j, s := range steps {
		stepIdx[s] = j
	}

	values := map[string][][]float64{}
	for _, v := range variables {
		matrix := make([][]float64, len(keys))
		for i := range matrix {
			row := make([]float64, len(steps))
			for j := range row {
				row[j] = math.NaN()
			}
			matrix[i] = row
		}
		values[v] = matrix
	}

	for _, p := range sub.points {
		i, j := keyIdx[p.Key], stepIdx[p.Step]
		matrix := values[p.Variable]
		if matrix == nil {
			continue
		}
		if !math.IsNaN(matrix[i][j]) {
			return nil, fmt.Errorf("series %v has more than one %q value at %v: %w",
				p.Key, p.Variable, p.Step, common.ErrorDuplicateData)
		}
		matrix[i][j] = p.Value
	}

	return &WideTable{Keys: keys, Steps: steps, values: values}, nil
}

// Values returns the [key][step] matrix for a variable.
func (w *WideTable) Values(variable string) ([][]float64, bool) {
	matrix, ok := w.values[variable]
	return matrix, ok
}

// Pairs extracts the (leader, follower) value pairs at one step index,
// dropping series where either side is NaN.
func (w *WideTable) Pairs(leader, follower string, step int) (xs, ys []float64) {
	lead, okLead := w.values[leader]
	follow, okFollow := w.values[follower]
	if !okLead || !okFollow {
		return nil, nil
	}
	for i := range w.Keys {
		x, y := lead[i][step], follow[i][step]
		if !utils.ValidPair(x, y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
