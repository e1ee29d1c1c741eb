package dataset_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWeather returns a three-row dataset with one attribute of each kind.
func buildWeather(t *testing.T) *dataset.Instances {
	t.Helper()
	outlook := dataset.NewNominal("outlook", "sunny", "overcast", "rainy")
	temp := dataset.NewNumeric("temperature")
	note := dataset.NewString("note")
	d := dataset.New("weather", outlook, temp, note)

	require.NoError(t, d.Add([]float64{0, 85, float64(note.AddString("hot day"))}))
	require.NoError(t, d.Add([]float64{1, dataset.Missing(), float64(note.AddString("cloudy"))}))
	require.NoError(t, d.Add([]float64{dataset.Missing(), 65, float64(note.AddString("hot day"))}))

	return d
}

func TestInstances_AddAndValues(t *testing.T) {
	d := buildWeather(t)
	assert.Equal(t, 3, d.NumInstances())
	assert.Equal(t, 3, d.NumAttributes())
	assert.Equal(t, []float64{1, 1, 1}, d.Weights)
	assert.Equal(t, 2, d.Attributes[2].NumStrings(), "strings are interned")

	s, err := d.StringValue(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "sunny", s)

	s, _ = d.StringValue(1, 1)
	assert.Equal(t, "?", s)

	s, _ = d.StringValue(2, 2)
	assert.Equal(t, "hot day", s)

	_, err = d.Value(5, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = d.Value(0, 9)
	assert.ErrorIs(t, err, dataset.ErrNoSuchAttribute)
}

func TestInstances_AddRejectsBadRows(t *testing.T) {
	d := buildWeather(t)
	assert.ErrorIs(t, d.Add([]float64{0, 1}), dataset.ErrRowWidth)
	assert.ErrorIs(t, d.Add([]float64{3, 1, 0}), dataset.ErrLabelIndex)
	assert.ErrorIs(t, d.Add([]float64{0.5, 1, 0}), dataset.ErrLabelIndex)
}

func TestInstances_ClassIndex(t *testing.T) {
	d := buildWeather(t)
	assert.Nil(t, d.ClassAttribute())

	j, err := d.AttributeByName("outlook")
	require.NoError(t, err)
	require.NoError(t, d.SetClassIndex(j))
	assert.Equal(t, "outlook", d.ClassAttribute().Name)

	assert.ErrorIs(t, d.SetClassIndex(7), dataset.ErrClassIndex)
	require.NoError(t, d.SetClassIndex(dataset.NoClass))

	_, err = d.AttributeByName("humidity")
	assert.ErrorIs(t, err, dataset.ErrNoSuchAttribute)
}

func TestInstances_MissingAndCopy(t *testing.T) {
	d := buildWeather(t)
	assert.True(t, d.HasMissing())
	assert.Equal(t, []int{1, 1, 0}, d.CountMissing())

	cp := d.Copy()
	cp.Rows[0][1] = 0
	cp.Attributes[0].Labels[0] = "changed"
	assert.Equal(t, 85.0, d.Rows[0][1])
	assert.Equal(t, "sunny", d.Attributes[0].Labels[0])
	assert.Equal(t, 0, cp.Attributes[0].IndexOfLabel("sunny"), "index map is copied too")
}

func TestInstances_Matrix(t *testing.T) {
	d := buildWeather(t)
	m, err := d.Matrix()
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	v, _ := m.At(1, 1)
	assert.True(t, math.IsNaN(v))

	_, err = dataset.New("empty").Matrix()
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestAttribute_Lookups(t *testing.T) {
	a := dataset.NewNominal("colour", "red", "green")
	assert.Equal(t, 2, a.NumLabels())
	assert.Equal(t, 1, a.IndexOfLabel("green"))
	assert.Equal(t, -1, a.IndexOfLabel("blue"))
	assert.Equal(t, -1, dataset.NewNumeric("x").IndexOfLabel("red"))
	assert.Equal(t, "nominal", a.Type.String())
	assert.True(t, dataset.Date.IsNumeric())
	assert.False(t, dataset.String.IsNumeric())
	assert.Equal(t, "2.5", dataset.NewNumeric("x").Format(2.5))
}

func TestDates_JavaPatterns(t *testing.T) {
	assert.Equal(t, "2006-01-02T15:04:05", dataset.GoLayout(""))
	assert.Equal(t, "02/01/2006 15:04", dataset.GoLayout("dd/MM/yyyy HH:mm"))
	assert.Equal(t, "it's 2006", dataset.GoLayout("'it''s' yyyy"))

	ms, err := dataset.ParseDate("2001-04-03T12:00:00", "")
	require.NoError(t, err)
	assert.Equal(t, 986299200000.0, ms)

	a := dataset.NewDate("when", "yyyy-MM-dd")
	assert.Equal(t, "2001-04-03", a.Format(ms))

	_, err = dataset.ParseDate("yesterday", "")
	assert.Error(t, err)
}

func TestDates_SingleLetterPatterns(t *testing.T) {
	assert.Equal(t, "2006-1-2 15:4:5", dataset.GoLayout("yyyy-M-d H:m:s"))
	assert.Equal(t, "3:04 PM", dataset.GoLayout("h:mm a"))

	ms, err := dataset.ParseDate("2001-4-3 9:5:7", "yyyy-M-d H:m:s")
	require.NoError(t, err)
	assert.Equal(t, 986288707000.0, ms)

	ms, err = dataset.ParseDate("2001-12-31 23:59:59", "yyyy-M-d H:m:s")
	require.NoError(t, err)
	assert.Equal(t, "2001-12-31 23:59:59", dataset.NewDate("when", "yyyy-M-d H:m:s").Format(ms))
}
