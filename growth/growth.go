// Package growth measures the exponential growth rate of a bacterial colony
// from a time series of fluorescence frames.
package growth

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/RPGroup-PBoC/cshl-pboc/imaging"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyFrame is returned when a frame has no pixel above the threshold.
	ErrEmptyFrame = errors.New("growth: no cell area in frame")
	// ErrNoCandidates is returned when no candidate rate is given to FitRate.
	ErrNoCandidates = errors.New("growth: no candidate rates")
	// ErrLengthMismatch is returned when times and areas differ in length.
	ErrLengthMismatch = errors.New("growth: times and areas lengths differ")
)

// Params configures a growth rate measurement.
type Params struct {
	Glob      string  // frame file pattern
	Threshold float64 // normalized intensity above which a pixel is a cell
	Interval  float64 // minutes between frames
	RateMin   float64 // 1/min
	RateMax   float64 // 1/min
	RateCount int
}

// DefaultParams returns the parameters of the E. coli TRITC movie.
func DefaultParams() Params {
	return Params{
		Glob:      "data/ecoli_growth/ecoli_TRITC_*.tif",
		Threshold: 0.4,
		Interval:  5,
		RateMin:   0.02,
		RateMax:   0.045,
		RateCount: 50,
	}
}

var trailingNumber = regexp.MustCompile(`(\d+)\D*$`)

func frameNumber(path string) (int, bool) {
	m := trailingNumber.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// SortFrames sorts paths by the last number in their file name, so that
// frame_10 comes after frame_9. Paths without a number come last, by name.
func SortFrames(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ni, oki := frameNumber(paths[i])
		nj, okj := frameNumber(paths[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		}
		return paths[i] < paths[j]
	})
}

// Frames returns the files matching the pattern, in frame order.
func Frames(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("growth: no frame matches `%s`", pattern)
	}
	SortFrames(paths)
	return paths, nil
}

// AreaSeries returns the cell area, in pixels, of each frame: the number of
// normalized pixels strictly above threshold. paths are sorted in place.
func AreaSeries(paths []string, threshold float64) ([]float64, error) {
	SortFrames(paths)
	areas := make([]float64, len(paths))
	for i, path := range paths {
		img, err := imaging.Load(path)
		if err != nil {
			return nil, err
		}
		areas[i] = float64(imaging.Area(imaging.Above(imaging.Normalize(img), threshold)))
		if areas[i] == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyFrame)
		}
	}
	return areas, nil
}

// Times returns n frame times, interval apart, starting at zero.
func Times(n int, interval float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * interval
	}
	return t
}

// LogArea returns ln(A_t) - ln(A_0).
func LogArea(areas []float64) []float64 {
	out := make([]float64, len(areas))
	for i, a := range areas {
		out[i] = math.Log(a) - math.Log(areas[0])
	}
	return out
}

// Candidates returns n growth rates evenly spanning [lo, hi], or nil if n < 1.
func Candidates(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Fit is the result of a grid search over growth rates.
type Fit struct {
	Rate   float64   // best rate
	Index  int       // index of Rate in the candidates
	Misfit []float64 // sum of squared residuals of each candidate
}

// FitRate returns the candidate rate k minimizing sum((y - k*t)^2).
// Ties resolve to the first candidate.
func FitRate(times, logArea, candidates []float64) (Fit, error) {
	if len(candidates) == 0 {
		return Fit{}, ErrNoCandidates
	}
	if len(times) != len(logArea) {
		return Fit{}, ErrLengthMismatch
	}
	misfit := make([]float64, len(candidates))
	for i, k := range candidates {
		for j, t := range times {
			r := logArea[j] - k*t
			misfit[i] += r * r
		}
	}
	idx := floats.MinIdx(misfit)
	return Fit{Rate: candidates[idx], Index: idx, Misfit: misfit}, nil
}

// DoublingTime returns ln(2)/rate.
func DoublingTime(rate float64) float64 {
	return math.Ln2 / rate
}
