package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

// execute runs the pboc command with args and returns what it logged.
func execute(t *testing.T, args ...string) (string, error) {
	t.Setenv("PBOC_CONFIG", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScenario(t *testing.T, dir, content string) string {
	path := filepath.Join(dir, "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertFiles(t *testing.T, dir string, names ...string) {
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if assert.NoError(t, err, name) {
			assert.NotZero(t, info.Size(), name)
		}
	}
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"diffusion", "birthdeath", "promoter", "channel", "growth", "mrna", "segment"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
			scenario := sub.Flags().Lookup("scenario")
			require.NotNil(t, scenario)
			assert.Equal(t, "", scenario.DefValue)
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := newRootCommand()
	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	output := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
}

func TestChannel(t *testing.T) {
	dir := t.TempDir()
	logs, err := execute(t, "channel", "-o", dir)
	require.NoError(t, err)
	assertFiles(t, dir, "channel.png", "channel.csv")
	assert.Contains(t, logs, "channel.png")
	csv, err := os.ReadFile(filepath.Join(dir, "channel.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "delta E (kT),p_open\n-5,")
}

func TestPromoter(t *testing.T) {
	dir := t.TempDir()
	scenario := writeScenario(t, dir, "[promoter]\nmethod = \"rk4\"\ntime = 5\n")
	logs, err := execute(t, "promoter", "--scenario", scenario, "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, logs, "method=rk4")
	assert.Contains(t, logs, "steady_state=3")
	assertFiles(t, dir, "promoter.png", "promoter.csv")
}

func TestPromoterBadMethod(t *testing.T) {
	dir := t.TempDir()
	scenario := writeScenario(t, dir, "[promoter]\nmethod = \"leapfrog\"\n")
	_, err := execute(t, "promoter", "--scenario", scenario, "-o", dir)
	assert.Error(t, err)
}

func TestBirthDeath(t *testing.T) {
	dir := t.TempDir()
	scenario := writeScenario(t, dir, "[birthdeath]\ntime = 10\nupper_bound = 15\nstride = 50\n")
	logs, err := execute(t, "birthdeath", "--scenario", scenario, "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, logs, "status=finished")
	assert.Contains(t, logs, "steady_state=3")
	assertFiles(t, dir, "timeline-birthdeath.csv", "birthdeath.html", "birthdeath-snapshots.png")
}

func TestDiffusionFRAPMovie(t *testing.T) {
	dir := t.TempDir()
	scenario := writeScenario(t, dir, `[diffusion]
bins = 15
steps = 30
stride = 10
initial = "frap"
movie = true
fps = 2
`)
	_, err := execute(t, "diffusion", "--scenario", scenario, "-o", dir, "-v")
	require.NoError(t, err)
	assertFiles(t, dir, "timeline-diffusion.csv", "diffusion.html", "diffusion-snapshots.png", "diffusion.avi")
}

func TestDiffusionErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unstable":       "[diffusion]\ndt = 1e-4\nstrict = true\n",
		"initial":        "[diffusion]\ninitial = \"ring\"\n",
		"source":         "[diffusion]\nsource = 100\n",
		"bleach":         "[diffusion]\nbins = 15\ninitial = \"frap\"\nbleach_to = 15\n",
		"boundary":       "[diffusion]\nlower = \"periodic\"\n",
		"too few boxes":  "[diffusion]\nbins = 1\n",
		"negative steps": "[diffusion]\nsteps = -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := execute(t, "diffusion", "--scenario", writeScenario(t, dir, content), "-o", dir)
			assert.Error(t, err)
		})
	}
}

func TestMissingScenario(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "channel", "--scenario", filepath.Join(dir, "nope.toml"), "-o", dir)
	assert.Error(t, err)
}

func TestMRNA(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "MDN1.csv")
	require.NoError(t, os.WriteFile(data, []byte("Copy number,Probability,Error in probability\n0,0.25,0.01\n1,0.5,0.02\n2,0.25,0.01\n"), 0644))
	scenario := writeScenario(t, dir, fmt.Sprintf("[mrna]\nfiles = [%q]\n", data))
	logs, err := execute(t, "mrna", "--scenario", scenario, "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, logs, "gene=MDN1")
	assert.Contains(t, logs, "mean=1")
	assertFiles(t, dir, "mdn1.png")
}

func TestGrowth(t *testing.T) {
	dir := t.TempDir()
	for i, cells := range []int{10, 20, 40} {
		img := image.NewGray16(image.Rect(0, 0, 10, 10))
		for p := 0; p < 100; p++ {
			v := uint16(100)
			if p < cells {
				v = 2000
			}
			img.SetGray16(p%10, p/10, color.Gray16{Y: v})
		}
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("ecoli_TRITC_%d.tif", i)))
		require.NoError(t, err)
		require.NoError(t, tiff.Encode(f, img, nil))
		require.NoError(t, f.Close())
	}
	scenario := writeScenario(t, dir, fmt.Sprintf("[growth]\nglob = %q\nrate_min = 0.1\nrate_max = 0.2\nrate_count = 101\n", filepath.Join(dir, "ecoli_TRITC_*.tif")))
	logs, err := execute(t, "growth", "--scenario", scenario, "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, logs, "doubling_time=")
	assert.Contains(t, logs, "frames=3")
	assertFiles(t, dir, "growth-fit.png", "growth-misfit.png", "growth.csv")
}

// writeBlocks writes a w x h 16 bit PNG at bg with the given [x0, y0, x1, y1) blocks set to v.
func writeBlocks(t *testing.T, path string, w, h int, bg, v uint16, blocks ...[4]int) {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: bg})
		}
	}
	for _, b := range blocks {
		for y := b[1]; y < b[3]; y++ {
			for x := b[0]; x < b[2]; x++ {
				img.SetGray16(x, y, color.Gray16{Y: v})
			}
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestSegment(t *testing.T) {
	dir := t.TempDir()
	cells := [][4]int{{10, 10, 15, 15}, {30, 30, 38, 38}}
	edge := [4]int{0, 40, 5, 45}
	phase := filepath.Join(dir, "phase.png")
	fluo := filepath.Join(dir, "fluo.png")
	writeBlocks(t, phase, 60, 60, 1000, 100, cells[0], cells[1], edge)
	writeBlocks(t, fluo, 60, 60, 5, 500, cells[0], cells[1], edge)
	scenario := writeScenario(t, dir, fmt.Sprintf("[segment]\nphase = %q\nfluo = %q\nthresh = -0.5\narea_min = 5.0\narea_max = 20.0\nip_dist = 0.5\n", phase, fluo))
	logs, err := execute(t, "segment", "--scenario", scenario, "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, logs, "cells=2")
	assert.Contains(t, logs, "mean_intensity=500")
	assertFiles(t, dir, "segment.csv", "segment.png")
	data, err := os.ReadFile(filepath.Join(dir, "segment.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cell,area (sq. microns),mean intensity\n0,6.25,500\n1,16,500\n")
	assert.Equal(t, 2, strings.Count(string(data), ",500\n"))
}

func TestSegmentErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "segment", "-o", dir)
	assert.ErrorContains(t, err, "no phase image")

	blank := filepath.Join(dir, "blank.png")
	writeBlocks(t, blank, 20, 20, 1000, 1000)
	scenario := writeScenario(t, dir, fmt.Sprintf("[segment]\nphase = %q\n", blank))
	_, err = execute(t, "segment", "--scenario", scenario, "-o", dir)
	assert.ErrorContains(t, err, "no cells found")
}
