package pboc

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RPGroup-PBoC/cshl-pboc/dataio"
)

// ExportConfig configures the exporting of a simulation.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	Timestamp bool
	Stride    int    // only every Stride-th step is written (the last step always is)
	Dir       string // overrides the configured output directory
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// csvPath returns the file a CSV export is written to.
func (c ExportConfig) csvPath() string {
	name := c.Filename
	if c.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	dir := c.Dir
	if dir == "" {
		dir = pbocConfig().outputDir
	}
	return filepath.Join(dir, "timeline-"+name+".csv")
}

// StreamTimeline writes the strided columns of tl to the configured CSV file
// and returns its path. meta is written as comment lines before the table.
func StreamTimeline(conf ExportConfig, tl *Timeline, meta [][2]string) (string, error) {
	filename := conf.csvPath()
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	cols := tl.Strided(conf.Stride)
	times := make([]float64, len(cols))
	for i, t := range cols {
		times[i] = float64(t) * tl.Dt
	}
	hdr := dataio.Header{
		Meta: append([][2]string{{"Creation date (UTC)", time.Now().UTC().Format(time.RFC3339)}}, meta...),
		Row:  "bin",
		Cols: dataio.TimeColumns(times),
	}
	if err := dataio.WriteMatrix(f, tl.Sub(cols), hdr); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, f.Close()
}
