package dataio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Header describes a written table.
type Header struct {
	Meta [][2]string // written first as "# key: value" comment lines
	Row  string      // name of the first column
	Cols []string    // names of the remaining columns
}

func (h Header) writeMeta(w io.Writer) error {
	for _, kv := range h.Meta {
		if _, err := fmt.Fprintf(w, "# %s: %s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteMatrix writes m as CSV, one row per matrix row. The first field of
// each row is the row index. hdr.Cols must name every column of m.
func WriteMatrix(w io.Writer, m mat.Matrix, hdr Header) error {
	r, c := m.Dims()
	if len(hdr.Cols) != c {
		return fmt.Errorf("dataio: %d column names for %d columns", len(hdr.Cols), c)
	}
	bw := bufio.NewWriter(w)
	if err := hdr.writeMeta(bw); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	record := make([]string, c+1)
	record[0] = hdr.Row
	copy(record[1:], hdr.Cols)
	if err := cw.Write(record); err != nil {
		return err
	}
	for i := 0; i < r; i++ {
		record[0] = strconv.Itoa(i)
		for j := 0; j < c; j++ {
			record[j+1] = formatFloat(m.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteXY writes two columns x and y. hdr.Row names x and hdr.Cols[0] names y.
func WriteXY(w io.Writer, x, y []float64, hdr Header) error {
	if len(x) != len(y) {
		return fmt.Errorf("dataio: x has %d values, y has %d", len(x), len(y))
	}
	if len(hdr.Cols) != 1 {
		return fmt.Errorf("dataio: XY output needs exactly one column name")
	}
	bw := bufio.NewWriter(w)
	if err := hdr.writeMeta(bw); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{hdr.Row, hdr.Cols[0]}); err != nil {
		return err
	}
	for i := range x {
		if err := cw.Write([]string{formatFloat(x[i]), formatFloat(y[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// TimeColumns returns the names "t=<time>" for each time.
func TimeColumns(times []float64) []string {
	cols := make([]string, len(times))
	for i, t := range times {
		cols[i] = "t=" + formatFloat(t)
	}
	return cols
}
