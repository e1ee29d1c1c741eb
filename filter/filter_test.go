package filter_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/hclust/arff"
	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMixed returns four rows over (colour{red,green,blue}, size, flag{no,yes}).
func buildMixed(t *testing.T) *dataset.Instances {
	t.Helper()
	miss := dataset.Missing()
	d := dataset.New("mixed",
		dataset.NewNominal("colour", "red", "green", "blue"),
		dataset.NewNumeric("size"),
		dataset.NewNominal("flag", "no", "yes"),
	)
	require.NoError(t, d.Add([]float64{0, 1, 1}))
	require.NoError(t, d.Add([]float64{2, miss, 1}))
	require.NoError(t, d.Add([]float64{2, 5, miss}))
	require.NoError(t, d.Add([]float64{miss, 3, 0}))

	return d
}

func TestReplaceMissingValues_MeansAndModes(t *testing.T) {
	d := buildMixed(t)
	f := filter.NewReplaceMissingValues()

	out, err := f.Apply(d)
	require.NoError(t, err)
	assert.False(t, out.HasMissing())

	assert.Equal(t, 2.0, out.Rows[3][0], "colour mode is blue")
	assert.Equal(t, 3.0, out.Rows[1][1], "size mean of 1,5,3")
	assert.Equal(t, 1.0, out.Rows[2][2], "flag mode is yes")
	assert.Equal(t, []float64{2, 3, 1}, f.Replacements())

	// Input untouched.
	assert.True(t, dataset.IsMissing(d.Rows[1][1]))
}

func TestReplaceMissingValues_WeightsAndTies(t *testing.T) {
	d := dataset.New("w", dataset.NewNumeric("x"), dataset.NewNominal("c", "a", "b"))
	require.NoError(t, d.AddWeighted([]float64{0, 0}, 3))
	require.NoError(t, d.AddWeighted([]float64{4, 1}, 1))
	require.NoError(t, d.AddWeighted([]float64{dataset.Missing(), dataset.Missing()}, 1))

	out, err := filter.NewReplaceMissingValues().Apply(d)
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Rows[2][0], "weighted mean (0*3+4*1)/4")
	assert.Equal(t, 0.0, out.Rows[2][1], "weighted mode prefers a (3 vs 1)")

	tie := dataset.New("tie", dataset.NewNominal("c", "a", "b"))
	require.NoError(t, tie.Add([]float64{1}))
	require.NoError(t, tie.Add([]float64{0}))
	require.NoError(t, tie.Add([]float64{dataset.Missing()}))
	out, err = filter.NewReplaceMissingValues().Apply(tie)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Rows[2][0], "ties resolve to the first label")
}

func TestReplaceMissingValues_SkipsClassAndEmptyColumns(t *testing.T) {
	miss := dataset.Missing()
	d := dataset.New("c",
		dataset.NewNumeric("empty"),
		dataset.NewString("note"),
		dataset.NewNominal("class", "x", "y"),
	)
	require.NoError(t, d.Add([]float64{miss, miss, 0}))
	require.NoError(t, d.Add([]float64{miss, miss, miss}))
	require.NoError(t, d.SetClassIndex(2))

	out, err := filter.NewReplaceMissingValues().Apply(d)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, out.CountMissing())
}

func TestNominalToBinary_Expansion(t *testing.T) {
	d := buildMixed(t)
	out, err := filter.NewNominalToBinary().Apply(d)
	require.NoError(t, err)

	names := make([]string, out.NumAttributes())
	for j, a := range out.Attributes {
		names[j] = a.Name
		assert.Equal(t, dataset.Numeric, a.Type)
	}
	assert.Equal(t, []string{"colour=red", "colour=green", "colour=blue", "size", "flag"}, names)

	assert.Equal(t, []float64{1, 0, 0, 1, 1}, out.Rows[0])
	assert.Equal(t, []float64{0, 0, 1, 5}, out.Rows[2][:4])
	assert.True(t, math.IsNaN(out.Rows[2][4]))
	for k := 0; k < 3; k++ {
		assert.True(t, math.IsNaN(out.Rows[3][k]), "missing propagates to indicator %d", k)
	}
	assert.Equal(t, d.Weights, out.Weights)
}

func TestNominalToBinary_TransformAllAndClass(t *testing.T) {
	d := buildMixed(t)
	require.NoError(t, d.SetClassIndex(0))

	f := &filter.NominalToBinary{TransformAll: true}
	out, err := f.Apply(d)
	require.NoError(t, err)

	require.Equal(t, 4, out.NumAttributes())
	assert.Equal(t, 0, out.ClassIndex)
	assert.Equal(t, dataset.Nominal, out.Attributes[0].Type, "class passes through")
	assert.Equal(t, "flag=no", out.Attributes[2].Name)
	assert.Equal(t, "flag=yes", out.Attributes[3].Name)
	assert.Equal(t, []float64{0, 1, 0, 1}, out.Rows[0])
}

func TestChain_AdultPipeline(t *testing.T) {
	d, err := arff.ReadFile("../testdata/adult.arff")
	require.NoError(t, err)

	chain, err := filter.ParseFilters([]string{"replace-missing", "NominalToBinary"})
	require.NoError(t, err)
	assert.Equal(t, "replace-missing | nominal-to-binary", chain.Name())

	out, err := chain.Apply(d)
	require.NoError(t, err)
	assert.False(t, out.HasMissing())

	// age, workclass=4, education=3, hours, sex, class (binary) = 1+4+3+1+1+1.
	assert.Equal(t, 11, out.NumAttributes())
	for _, a := range out.Attributes {
		assert.Equal(t, dataset.Numeric, a.Type, a.Name)
	}
	// Row 7 had a missing workclass: the mode (Private) is filled in.
	assert.Equal(t, []float64{1, 0, 0, 0}, out.Rows[6][1:5])
}

func TestParseFilters_TransformAll(t *testing.T) {
	chain, err := filter.ParseFilters([]string{"nominal-to-binary"}, filter.WithTransformAll(true))
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.True(t, chain[0].(*filter.NominalToBinary).TransformAll)

	out, err := chain.Apply(buildMixed(t))
	require.NoError(t, err)
	assert.Equal(t, 6, out.NumAttributes(), "flag expands into flag=no and flag=yes")

	chain, err = filter.ParseFilters([]string{"nominal-to-binary"})
	require.NoError(t, err)
	assert.False(t, chain[0].(*filter.NominalToBinary).TransformAll)
}

func TestChain_EmptyAndErrors(t *testing.T) {
	d := buildMixed(t)
	out, err := filter.Chain{}.Apply(d)
	require.NoError(t, err)
	out.Rows[0][1] = 42
	assert.Equal(t, 1.0, d.Rows[0][1], "empty chain still copies")

	_, err = filter.Chain{}.Apply(nil)
	assert.ErrorIs(t, err, filter.ErrNilDataset)

	_, err = filter.ParseFilters([]string{"discretize"})
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)
}
