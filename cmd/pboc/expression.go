package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RPGroup-PBoC/cshl-pboc/channel"
	"github.com/RPGroup-PBoC/cshl-pboc/dataio"
	"github.com/RPGroup-PBoC/cshl-pboc/expression"
	"github.com/RPGroup-PBoC/cshl-pboc/plots"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func newPromoterCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("promoter", "Integrate the mean mRNA copy number of a constitutive promoter", func(scenario string) error {
		return runPromoter(root, scenario)
	})
}

func newChannelCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("channel", "Open probability of a two-state ion channel", func(scenario string) error {
		return runChannel(root, scenario)
	})
}

func newMRNACommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("mrna", "Compare smFISH mRNA distributions to a Poisson distribution", func(scenario string) error {
		return runMRNA(root, scenario)
	})
}

// writeXY writes a two column CSV to the output directory.
func writeXY(root *rootOptions, name string, x, y []float64, hdr dataio.Header) error {
	path := root.path(name + ".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataio.WriteXY(f, x, y, hdr); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	root.wrote("export", path)
	return nil
}

func runPromoter(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "promoter", map[string]interface{}{
		"r":      1.0,
		"gamma":  1.0 / 3,
		"time":   20.0,
		"dt":     0.1,
		"m0":     0.0,
		"method": "euler",
	})
	if err != nil {
		return err
	}
	params := expression.PromoterParams{
		R:        v.GetFloat64("promoter.r"),
		Gamma:    v.GetFloat64("promoter.gamma"),
		Duration: v.GetFloat64("promoter.time"),
		Dt:       v.GetFloat64("promoter.dt"),
		M0:       v.GetFloat64("promoter.m0"),
	}
	if params.Dt <= 0 || params.Steps() < 1 || params.Gamma <= 0 {
		return fmt.Errorf("invalid promoter parameters %+v", params)
	}
	method, err := expression.MethodFromString(v.GetString("promoter.method"))
	if err != nil {
		return err
	}
	times, m, err := expression.MeanTrajectory(params, method)
	if err != nil {
		return err
	}
	steady := params.SteadyState()
	level.Info(root.logger).Log("subsys", "promoter", "method", method, "final", m[len(m)-1], "steady_state", steady)

	analytic := make([]float64, len(times))
	for i, t := range times {
		analytic[i] = params.Analytic(t)
	}
	fig := root.figure("promoter")
	labels := plots.Labels{Title: "constitutive promoter", X: "time (min)", Y: "mRNA copy #"}
	series := []plots.Series{
		{Name: method.String() + " integration", X: times, Y: m},
		{Name: "analytic", X: times, Y: analytic},
	}
	if err := plots.Lines(fig, labels, series, &steady, root.size()); err != nil {
		return err
	}
	root.wrote("plot", fig)
	return writeXY(root, "promoter", times, m, dataio.Header{
		Meta: [][2]string{{"method", method.String()}, {"r", fmt.Sprintf("%g", params.R)}, {"gamma", fmt.Sprintf("%g", params.Gamma)}},
		Row:  "time (min)",
		Cols: []string{"mRNA copy #"},
	})
}

func runChannel(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "channel", map[string]interface{}{
		"min":    -5.0,
		"max":    5.0,
		"points": 100,
	})
	if err != nil {
		return err
	}
	n := v.GetInt("channel.points")
	if n < 2 {
		return fmt.Errorf("need at least two points, got %d", n)
	}
	deltaE, pOpen := channel.Curve(v.GetFloat64("channel.min"), v.GetFloat64("channel.max"), n)
	fig := root.figure("channel")
	labels := plots.Labels{Title: "two-state ion channel", X: "ΔE (kT units)", Y: "p_open"}
	if err := plots.Lines(fig, labels, []plots.Series{{Name: "p_open", X: deltaE, Y: pOpen}}, nil, root.size()); err != nil {
		return err
	}
	root.wrote("plot", fig)
	return writeXY(root, "channel", deltaE, pOpen, dataio.Header{Row: "delta E (kT)", Cols: []string{"p_open"}})
}

func runMRNA(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "mrna", map[string]interface{}{
		"files": []string{"data/MDN1.csv", "data/PDR5.csv"},
	})
	if err != nil {
		return err
	}
	files := v.GetStringSlice("mrna.files")
	if len(files) == 0 {
		return fmt.Errorf("no distribution file given")
	}
	for _, file := range files {
		d, err := dataio.LoadDistribution(file)
		if err != nil {
			return err
		}
		if len(d.Prob) == 0 {
			return fmt.Errorf("%s: empty distribution", file)
		}
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		mean := expression.Mean(d.Prob)
		theory := expression.Poisson(mean, len(d.Prob))
		ssr, maxDev, err := expression.Compare(d.Prob, theory)
		if err != nil {
			return err
		}
		level.Info(root.logger).Log("subsys", "mrna", "gene", name, "mean", mean, "fano", expression.FanoFactor(d.Prob), "ssr", ssr, "max_dev", maxDev)

		yerr := d.Err
		if yerr == nil {
			yerr = make([]float64, len(d.Prob))
		}
		fig := root.figure(strings.ToLower(name))
		labels := plots.Labels{Title: name, X: "mRNA copy number", Y: "probability"}
		if err := plots.ErrorBars(fig, labels, name, d.Counts(), d.Prob, yerr, theory, root.size()); err != nil {
			return err
		}
		root.wrote("plot", fig)
	}
	return nil
}
