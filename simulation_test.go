package pboc

import (
	"errors"
	"os"
	"strings"
	"testing"

	kitlog "github.com/go-kit/log"
)

func withOutputDir(t *testing.T) string {
	dir := t.TempDir()
	cfgLoaded = true
	config = defaultConfig()
	config.outputDir = dir
	t.Cleanup(func() { cfgLoaded = false })
	return dir
}

func TestSimulationExport(t *testing.T) {
	dir := withOutputDir(t)
	tl := NewTimeline(10, 21, 0.1)
	tl.SetInitial(PointSource(10, 4, 1))
	sim := NewSimulation("export", tl, Hopping{K: 1}, DiffusionBoundaries, ExportConfig{Filename: "export", AsCSV: true, Stride: 10})
	sim.SetLogger(kitlog.NewNopLogger())
	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sim.Exported(), dir) {
		t.Fatalf("exported to %s, not in %s", sim.Exported(), dir)
	}
	data, err := os.ReadFile(sim.Exported())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, exp := range []string{"# run: " + sim.ID().String(), "# rule: hopping(k=1)", "# boundaries: reflecting/reflecting", "bin,t=0,t=1,t=2\n"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("export does not contain %q:\n%s", exp, out)
		}
	}
	if rows := strings.Count(out, "\n"); rows != 5+1+10 {
		t.Fatalf("unexpected line count %d:\n%s", rows, out)
	}
}

func TestSimulationNoExport(t *testing.T) {
	withOutputDir(t)
	tl := NewTimeline(5, 5, 0.1)
	tl.SetInitial(PointSource(5, 0, 1))
	sim := NewSimulation("quiet", tl, Hopping{K: 1}, DiffusionBoundaries, ExportConfig{})
	sim.SetLogger(kitlog.NewNopLogger())
	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	if sim.Exported() != "" {
		t.Fatalf("unexpected export %s", sim.Exported())
	}
	if tl.Final()[1] == 0 {
		t.Fatal("timeline was not advanced")
	}
}

func TestSimulationStrict(t *testing.T) {
	tl := NewTimeline(5, 5, 0.9)
	tl.SetInitial(PointSource(5, 2, 1))
	sim := NewSimulation("strict", tl, Hopping{K: 1}, DiffusionBoundaries, ExportConfig{})
	sim.SetLogger(kitlog.NewNopLogger())
	sim.Strict = true
	var unstable *UnstableStepError
	if err := sim.Run(); !errors.As(err, &unstable) {
		t.Fatalf("expected an unstable step error, got %v", err)
	}
	if tl.Sum(4) != 0 {
		t.Fatal("strict simulation should not have run")
	}
	sim.Strict = false
	if err := sim.Run(); err != nil {
		t.Fatalf("lenient run failed: %s", err)
	}
}
