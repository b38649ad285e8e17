package main

import (
	"fmt"
	"os"

	"github.com/RPGroup-PBoC/cshl-pboc/dataio"
	"github.com/RPGroup-PBoC/cshl-pboc/imaging"
	"github.com/RPGroup-PBoC/cshl-pboc/plots"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func newSegmentCommand(root *rootOptions) *cobra.Command {
	return scenarioCommand("segment", "Segment cells in a phase contrast image and measure their fluorescence", func(scenario string) error {
		return runSegment(root, scenario)
	})
}

func runSegment(root *rootOptions, scenario string) error {
	v, err := loadScenario(scenario, "segment", map[string]interface{}{
		"phase":    "",
		"fluo":     "",
		"thresh":   -0.2,
		"area_min": 1.0,
		"area_max": 3.0,
		"ip_dist":  0.16,
	})
	if err != nil {
		return err
	}
	phasePath := v.GetString("segment.phase")
	if phasePath == "" {
		return fmt.Errorf("segment: no phase image given")
	}
	fluoPath := v.GetString("segment.fluo")
	if fluoPath == "" {
		fluoPath = phasePath
	}
	ipDist := v.GetFloat64("segment.ip_dist")
	if ipDist <= 0 {
		return fmt.Errorf("segment: ip_dist must be positive, got %f", ipDist)
	}
	bounds := [2]float64{v.GetFloat64("segment.area_min"), v.GetFloat64("segment.area_max")}

	phase, err := imaging.Load(phasePath)
	if err != nil {
		return err
	}
	fluo, err := imaging.Load(fluoPath)
	if err != nil {
		return err
	}
	labels, err := imaging.PhaseSegment(phase, v.GetFloat64("segment.thresh"), bounds, ipDist)
	if err != nil {
		return err
	}
	if labels.N == 0 {
		return fmt.Errorf("segment: no cells found in %s", phasePath)
	}
	regions, err := imaging.Regions(labels, fluo)
	if err != nil {
		return err
	}
	intensities, err := imaging.ExtractIntensities(labels, fluo)
	if err != nil {
		return err
	}
	areas := make([]float64, len(regions))
	for i, r := range regions {
		areas[i] = float64(r.Area) * ipDist * ipDist
	}
	level.Info(root.logger).Log("subsys", "segment", "cells", labels.N, "mean_intensity", stat.Mean(intensities, nil))

	table := mat.NewDense(len(regions), 2, nil)
	table.SetCol(0, areas)
	table.SetCol(1, intensities)
	file := root.path("segment.csv")
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	hdr := dataio.Header{
		Meta: [][2]string{{"phase", phasePath}, {"fluo", fluoPath}},
		Row:  "cell",
		Cols: []string{"area (sq. microns)", "mean intensity"},
	}
	if err := dataio.WriteMatrix(f, table, hdr); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	root.wrote("export", file)

	fig := root.figure("segment")
	series := []plots.Series{{Name: "cells", X: areas, Y: intensities, Points: true}}
	if err := plots.Lines(fig, plots.Labels{Title: "segmented cells", X: "area (sq. microns)", Y: "mean intensity"}, series, nil, root.size()); err != nil {
		return err
	}
	root.wrote("plot", fig)
	return nil
}
