package crunchers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharmon/infill/scendb"
)

func rmsRefDb(t *testing.T) *scendb.Database {
	years := []int{2010, 2030, 2050}
	return mustDb(t,
		series("model_a", "scen_a", eco2, gtc, years, []float64{1, 2, 3}),
		series("model_a", "scen_b", eco2, gtc, years, []float64{10, 20, 30}),
		series("model_a", "scen_a", ech4, mtch4, years, []float64{100, 110, 120}),
		series("model_a", "scen_b", ech4, mtch4, years, []float64{500, 510, 520}),
	)
}

func TestRMSClosest_CopiesClosestScenario(t *testing.T) {
	ctx := context.Background()
	cruncher := NewRMSClosest(rmsRefDb(t))
	rel, err := cruncher.DeriveRelationship(ctx, ech4, []string{eco2})
	require.NoError(t, err)

	in := mustDb(t,
		series("model_x", "scen_x", eco2, gtc, []int{2010, 2030, 2050}, []float64{1.1, 2.1, 2.9}),
	)
	out, err := rel.Apply(ctx, in)
	require.NoError(t, err)

	// scen_a is far closer in the RMS sense, its follower series is copied
	// under the input's model and scenario labels
	assert.Equal(t, []string{ech4}, out.Variables())
	assert.Equal(t, 100.0, valueAt(t, out, "scen_x", 2010))
	assert.Equal(t, 110.0, valueAt(t, out, "scen_x", 2030))
	assert.Equal(t, 120.0, valueAt(t, out, "scen_x", 2050))
	for _, p := range out.Points() {
		assert.Equal(t, "model_x", p.Key.Model)
		assert.Equal(t, "scen_x", p.Key.Scenario)
	}
}

func TestRMSClosest_PartialOverlapUsesCommonYears(t *testing.T) {
	ctx := context.Background()
	cruncher := NewRMSClosest(rmsRefDb(t))
	rel, err := cruncher.DeriveRelationship(ctx, ech4, []string{eco2})
	require.NoError(t, err)

	// only 2010 and 2030 overlap with the reference years
	in := mustDb(t,
		series("model_x", "scen_x", eco2, gtc, []int{2010, 2030}, []float64{9, 21}),
	)
	out, err := rel.Apply(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 500.0, valueAt(t, out, "scen_x", 2010))
}

func TestRMSClosest_NoOverlap(t *testing.T) {
	ctx := context.Background()
	cruncher := NewRMSClosest(rmsRefDb(t))
	rel, err := cruncher.DeriveRelationship(ctx, ech4, []string{eco2})
	require.NoError(t, err)

	in := mustDb(t,
		series("model_x", "scen_x", eco2, gtc, []int{2100}, []float64{1}),
	)
	_, err = rel.Apply(ctx, in)
	assert.ErrorContains(t, err, "no time series overlap between the original and unfilled data")
}

func TestRMSClosest_TieGoesToFirstSeries(t *testing.T) {
	ctx := context.Background()
	years := []int{2010}
	db := mustDb(t,
		series("model_a", "scen_a", eco2, gtc, years, []float64{2}),
		series("model_a", "scen_b", eco2, gtc, years, []float64{4}),
		series("model_a", "scen_a", ech4, mtch4, years, []float64{111}),
		series("model_a", "scen_b", ech4, mtch4, years, []float64{222}),
	)
	cruncher := NewRMSClosest(db)
	rel, err := cruncher.DeriveRelationship(ctx, ech4, []string{eco2})
	require.NoError(t, err)

	// equidistant from both reference series
	in := mustDb(t, series("model_x", "scen_x", eco2, gtc, years, []float64{3}))
	out, err := rel.Apply(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 111.0, valueAt(t, out, "scen_x", 2010))
}

func TestRMSClosest_DeriveErrors(t *testing.T) {
	db := rmsRefDb(t)
	cruncher := NewRMSClosest(db.Exclude(scendb.Filter{Variables: []string{eco2}}))
	_, err := cruncher.DeriveRelationship(context.Background(), ech4, []string{eco2})
	assert.ErrorContains(t, err, "no data for leader variable")

	cruncher = NewRMSClosest(db.Exclude(scendb.Filter{Variables: []string{ech4}}))
	_, err = cruncher.DeriveRelationship(context.Background(), ech4, []string{eco2})
	assert.ErrorContains(t, err, "no data for follower variable")
}
