package pboc

import (
	"fmt"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// Simulation runs a master equation integration and reports on it.
type Simulation struct {
	Name       string
	Timeline   *Timeline // As pointer because it is filled by the run.
	Rule       Rule
	Boundaries Boundaries
	Strict     bool // refuse to run an unstable step instead of warning
	Export     ExportConfig
	id         uuid.UUID
	logger     kitlog.Logger
	exported   string
}

// NewSimulation returns a new Simulation logging to stdout.
// The initial condition of tl must already be set.
func NewSimulation(name string, tl *Timeline, rule Rule, bc Boundaries, conf ExportConfig) *Simulation {
	s := &Simulation{Name: name, Timeline: tl, Rule: rule, Boundaries: bc, Export: conf, id: uuid.New()}
	s.SetLogger(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)))
	return s
}

// SetLogger replaces the logger of this simulation.
func (s *Simulation) SetLogger(logger kitlog.Logger) {
	s.logger = kitlog.With(logger, "simulation", s.Name, "run", s.id)
}

// ID returns the unique identifier of this run.
func (s *Simulation) ID() uuid.UUID {
	return s.id
}

// Exported returns the path of the CSV written by Run, if any.
func (s *Simulation) Exported() string {
	return s.exported
}

// Run integrates the timeline and exports it if requested.
func (s *Simulation) Run() error {
	tl := s.Timeline
	level.Info(s.logger).Log("subsys", "master", "status", "started", "bins", tl.Bins(), "steps", tl.Steps(), "dt", tl.Dt, "rule", fmt.Sprintf("%v", s.Rule), "boundaries", s.Boundaries)
	if err := CheckStability(tl, s.Rule, s.Boundaries); err != nil {
		if s.Strict {
			level.Error(s.logger).Log("subsys", "master", "err", err)
			return err
		}
		level.Warn(s.logger).Log("subsys", "master", "err", err)
	}
	start := time.Now()
	mass0 := tl.Sum(0)
	Advance(tl, s.Rule, s.Boundaries)
	mass := tl.Sum(tl.Steps() - 1)
	drift := relDrift(mass0, mass)
	level.Info(s.logger).Log("subsys", "master", "status", "finished", "elapsed", time.Since(start), "mass0", mass0, "mass", mass, "drift", drift)
	if drift > massε && s.Boundaries.Lower != Absorbing && s.Boundaries.Upper != Absorbing {
		level.Warn(s.logger).Log("subsys", "master", "message", "mass not conserved", "drift", drift)
	}
	if s.Export.IsUseless() {
		return nil
	}
	meta := [][2]string{
		{"run", s.id.String()},
		{"rule", fmt.Sprintf("%v", s.Rule)},
		{"boundaries", s.Boundaries.String()},
		{"dt", fmt.Sprintf("%g", tl.Dt)},
	}
	filename, err := StreamTimeline(s.Export, tl, meta)
	if err != nil {
		level.Error(s.logger).Log("subsys", "export", "err", err)
		return err
	}
	s.exported = filename
	level.Info(s.logger).Log("subsys", "export", "file", filename)
	return nil
}
