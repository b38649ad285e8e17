package main

import (
	"fmt"
	"os"

	pboc "github.com/RPGroup-PBoC/cshl-pboc"
	"github.com/RPGroup-PBoC/cshl-pboc/plots"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDiffusionCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("diffusion", "Integrate the diffusion master equation on a 1-D lattice", func(scenario string) error {
		return runDiffusion(root, scenario)
	})
}

func newBirthDeathCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("birthdeath", "Integrate the mRNA copy number master equation of a constitutive promoter", func(scenario string) error {
		return runBirthDeath(root, scenario)
	})
}

// initialCondition returns the named initial distribution.
func initialCondition(kind string, bins, source, from, to int) ([]float64, error) {
	switch kind {
	case "point":
		if source < 0 || source >= bins {
			return nil, fmt.Errorf("source %d outside of the %d boxes", source, bins)
		}
		return pboc.PointSource(bins, source, 1), nil
	case "corner":
		return pboc.PointSource(bins, 0, 1), nil
	case "frap":
		if from < 0 || to >= bins || from > to || to-from+1 == bins {
			return nil, fmt.Errorf("invalid bleached region [%d, %d] for %d boxes", from, to, bins)
		}
		return pboc.UniformWithHole(bins, from, to), nil
	}
	return nil, fmt.Errorf("unknown initial condition `%s`", kind)
}

func boundaries(v *viper.Viper, section string) (bc pboc.Boundaries, err error) {
	if bc.Lower, err = pboc.BoundaryFromString(v.GetString(section + ".lower")); err != nil {
		return bc, err
	}
	bc.Upper, err = pboc.BoundaryFromString(v.GetString(section + ".upper"))
	return bc, err
}

// renderTimeline writes the 3-D bar sweep and the snapshots of a run.
func renderTimeline(root *rootOptions, name string, tl *pboc.Timeline, labels plots.Labels, stride int, snapshots []int) error {
	html := root.path(name + ".html")
	f, err := os.Create(html)
	if err != nil {
		return err
	}
	if err := plots.Bar3(f, tl.P, labels, tl.Strided(stride), tl.Times()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	root.wrote("plot", html)

	snap := root.figure(name + "-snapshots")
	if err := plots.Snapshots(snap, tl.P, labels, snapshots, tl.Times(), root.size()); err != nil {
		return err
	}
	root.wrote("plot", snap)
	return nil
}

func runDiffusion(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "diffusion", map[string]interface{}{
		"D":           10.0,
		"dx":          0.01,
		"dt":          0.0,
		"bins":        100,
		"steps":       100,
		"stride":      3,
		"initial":     "point",
		"source":      49,
		"bleach_from": 4,
		"bleach_to":   10,
		"lower":       "reflecting",
		"upper":       "reflecting",
		"strict":      false,
		"movie":       false,
		"fps":         10,
	})
	if err != nil {
		return err
	}
	params := pboc.DiffusionParams{D: v.GetFloat64("diffusion.D"), Dx: v.GetFloat64("diffusion.dx"), Dt: v.GetFloat64("diffusion.dt")}
	bins, steps, stride := v.GetInt("diffusion.bins"), v.GetInt("diffusion.steps"), v.GetInt("diffusion.stride")
	if bins < 2 || steps < 1 || params.Step() <= 0 {
		return fmt.Errorf("invalid lattice: %d boxes, %d steps, dt=%g", bins, steps, params.Step())
	}
	initial, err := initialCondition(v.GetString("diffusion.initial"), bins, v.GetInt("diffusion.source"), v.GetInt("diffusion.bleach_from"), v.GetInt("diffusion.bleach_to"))
	if err != nil {
		return err
	}
	bc, err := boundaries(v, "diffusion")
	if err != nil {
		return err
	}

	tl := pboc.NewTimeline(bins, steps, params.Step())
	tl.SetInitial(initial)
	sim := pboc.NewSimulation("diffusion", tl, params.Rule(), bc, pboc.ExportConfig{Filename: "diffusion", AsCSV: true, Stride: stride, Dir: root.Output})
	sim.SetLogger(root.logger)
	sim.Strict = v.GetBool("diffusion.strict")
	if err := sim.Run(); err != nil {
		return err
	}

	labels := plots.Labels{Title: "diffusion", X: "time (sec)", Y: "box number", Z: "probability"}
	if err := renderTimeline(root, "diffusion", tl, labels, stride, []int{0, steps / 2, steps - 1}); err != nil {
		return err
	}
	if v.GetBool("diffusion.movie") {
		movie := root.path("diffusion.avi")
		if err := plots.Movie(movie, tl.P, labels, tl.Strided(stride), tl.Times(), v.GetInt("diffusion.fps"), root.size()); err != nil {
			return err
		}
		root.wrote("plot", movie)
	}
	return nil
}

func runBirthDeath(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "birthdeath", map[string]interface{}{
		"r":           1.0,
		"gamma":       1.0 / 3,
		"time":        60.0,
		"dt":          0.05,
		"upper_bound": 30,
		"stride":      60,
		"strict":      false,
	})
	if err != nil {
		return err
	}
	params := pboc.BirthDeathParams{
		R:          v.GetFloat64("birthdeath.r"),
		Gamma:      v.GetFloat64("birthdeath.gamma"),
		Duration:   v.GetFloat64("birthdeath.time"),
		Dt:         v.GetFloat64("birthdeath.dt"),
		UpperBound: v.GetInt("birthdeath.upper_bound"),
	}
	if params.UpperBound < 1 || params.Dt <= 0 || params.Steps() < 1 {
		return fmt.Errorf("invalid birth-death parameters %+v", params)
	}
	stride := v.GetInt("birthdeath.stride")

	tl := pboc.NewTimeline(params.Bins(), params.Steps(), params.Dt)
	tl.SetInitial(pboc.PointSource(params.Bins(), 0, 1))
	sim := pboc.NewSimulation("birthdeath", tl, params.Rule(), pboc.BirthDeathBoundaries, pboc.ExportConfig{Filename: "birthdeath", AsCSV: true, Stride: stride, Dir: root.Output})
	sim.SetLogger(root.logger)
	sim.Strict = v.GetBool("birthdeath.strict")
	if err := sim.Run(); err != nil {
		return err
	}
	last := tl.Steps() - 1
	level.Info(root.logger).Log("subsys", "birthdeath", "mean", tl.Mean(last), "steady_state", params.R/params.Gamma, "tail", tl.P.At(params.UpperBound, last))

	labels := plots.Labels{Title: "mRNA copy number", X: "time (min)", Y: "mRNA copy number", Z: "probability"}
	return renderTimeline(root, "birthdeath", tl, labels, stride, []int{0, last})
}
