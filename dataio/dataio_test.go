package dataio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0.5, 0.25, 0.5, 0.75})
	hdr := Header{
		Meta: [][2]string{{"rule", "hopping(k=1)"}, {"run", "test"}},
		Row:  "bin",
		Cols: TimeColumns([]float64{0, 0.1}),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m, hdr))
	newGoldie(t).Assert(t, "timeline", buf.Bytes())
}

func TestWriteMatrixColumnMismatch(t *testing.T) {
	m := mat.NewDense(2, 3, nil)
	err := WriteMatrix(&bytes.Buffer{}, m, Header{Row: "bin", Cols: []string{"a"}})
	assert.Error(t, err)
}

func TestWriteXY(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXY(&buf, []float64{0, 5, 10}, []float64{0, 0.125, 0.3}, Header{Row: "time", Cols: []string{"log area"}})
	require.NoError(t, err)
	newGoldie(t).Assert(t, "xy", buf.Bytes())

	err = WriteXY(&buf, []float64{0}, []float64{0, 1}, Header{Row: "x", Cols: []string{"y"}})
	assert.Error(t, err)
}

func TestLoadDistribution(t *testing.T) {
	d, err := LoadDistribution("testdata/mdn1.csv")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.25}, d.Prob)
	assert.Equal(t, []float64{0.01, 0.02, 0.01}, d.Err)
	assert.Equal(t, []float64{0, 1, 2}, d.Counts())
}

func TestReadDistributionWithoutErrors(t *testing.T) {
	in := "# comment\nProbability\n0.1\n0.9\n"
	d, err := ReadDistribution(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.9}, d.Prob)
	assert.Nil(t, d.Err)
}

func TestReadDistributionMissingColumn(t *testing.T) {
	_, err := ReadDistribution(strings.NewReader("count,prob\n0,1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestReadDistributionBadValue(t *testing.T) {
	_, err := ReadDistribution(strings.NewReader("Probability\nabc\n"))
	assert.Error(t, err)
}

func TestLoadDistributionMissingFile(t *testing.T) {
	_, err := LoadDistribution("testdata/does-not-exist.csv")
	assert.Error(t, err)
}
