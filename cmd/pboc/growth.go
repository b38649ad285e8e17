package main

import (
	"github.com/RPGroup-PBoC/cshl-pboc/dataio"
	"github.com/RPGroup-PBoC/cshl-pboc/growth"
	"github.com/RPGroup-PBoC/cshl-pboc/plots"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func newGrowthCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("growth", "Measure a colony growth rate from fluorescence frames", func(scenario string) error {
		return runGrowth(root, scenario)
	})
}

func runGrowth(root *rootOptions, scenario string) error {
	def := growth.DefaultParams()
	v, err := loadScenario(scenario, "growth", map[string]interface{}{
		"glob":       def.Glob,
		"threshold":  def.Threshold,
		"interval":   def.Interval,
		"rate_min":   def.RateMin,
		"rate_max":   def.RateMax,
		"rate_count": def.RateCount,
	})
	if err != nil {
		return err
	}
	params := growth.Params{
		Glob:      v.GetString("growth.glob"),
		Threshold: v.GetFloat64("growth.threshold"),
		Interval:  v.GetFloat64("growth.interval"),
		RateMin:   v.GetFloat64("growth.rate_min"),
		RateMax:   v.GetFloat64("growth.rate_max"),
		RateCount: v.GetInt("growth.rate_count"),
	}
	frames, err := growth.Frames(params.Glob)
	if err != nil {
		return err
	}
	level.Debug(root.logger).Log("subsys", "growth", "frames", len(frames))
	areas, err := growth.AreaSeries(frames, params.Threshold)
	if err != nil {
		return err
	}
	times := growth.Times(len(areas), params.Interval)
	logArea := growth.LogArea(areas)
	candidates := growth.Candidates(params.RateMin, params.RateMax, params.RateCount)
	fit, err := growth.FitRate(times, logArea, candidates)
	if err != nil {
		return err
	}
	level.Info(root.logger).Log("subsys", "growth", "rate", fit.Rate, "doubling_time", growth.DoublingTime(fit.Rate), "frames", len(frames))

	fitted := make([]float64, len(times))
	for i, t := range times {
		fitted[i] = fit.Rate * t
	}
	fig := root.figure("growth-fit")
	series := []plots.Series{
		{Name: "experiment", X: times, Y: logArea, Points: true},
		{Name: "fit", X: times, Y: fitted},
	}
	if err := plots.Lines(fig, plots.Labels{Title: "colony growth", X: "time (min)", Y: "log(A_t / A_0)"}, series, nil, root.size()); err != nil {
		return err
	}
	root.wrote("plot", fig)
	fig = root.figure("growth-misfit")
	misfit := []plots.Series{{Name: "misfit", X: candidates, Y: fit.Misfit}}
	if err := plots.Lines(fig, plots.Labels{Title: "goodness of fit", X: "growth rate (1/min)", Y: "sum of squared residuals"}, misfit, nil, root.size()); err != nil {
		return err
	}
	root.wrote("plot", fig)
	return writeXY(root, "growth", times, areas, dataio.Header{
		Meta: [][2]string{{"glob", params.Glob}},
		Row:  "time (min)",
		Cols: []string{"cell area (sq. pixels)"},
	})
}
