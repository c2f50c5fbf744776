// SPDX-License-Identifier: MIT

package aig

import (
	"io"

	"github.com/ivycore/aig/internal/satif"
)

// Solver is the SAT-solving capability FraigOptions.SolverFactory
// produces, re-exported from internal/satif so callers outside this
// module never need to import the internal package directly.
type Solver = satif.Solver

// Config collects the exhaustive configuration surface of §6. It can
// be built directly or through the functional Option helpers below,
// following the configs-functional-option idiom used throughout the
// pack (e.g. dalzilio/rudd's New(varnum int, options ...func(*configs))).
type Config struct {
	FanoutIndex bool // maintain the fanout index from the start

	UpdateLevel bool // keep levels/required-levels live during rewriting
	UseZeroCost bool // accept score-0 replacements
	Verbose     bool // carried into RewriteOptions/FraigOptions; no pass writes to Log

	MaxCutSize    int // 4 for standard rewriting
	CutStoreLimit int // 256

	SimWords      int     // simulation signature width, default 32
	SimSaturation float64 // refinement saturation ratio, default 0.005

	SatConflictPerNode  int // per-solve-call conflict budget, default 100
	SatConflictPerMiter int // cumulative conflict cap for one equivalence check (both solve directions), default 500 000
	SatTotalBudget      int // cumulative conflict cap across the whole pass; 0 = unbounded
	SatTotalInspects    int // cumulative clause-inspection cap across the whole pass; 0 = unbounded

	Log io.Writer // verbose-mode sink, not written by any pass; defaults to io.Discard
}

func defaultConfig() Config {
	return Config{
		FanoutIndex:         false,
		UpdateLevel:         true,
		UseZeroCost:         false,
		Verbose:             false,
		MaxCutSize:          4,
		CutStoreLimit:       256,
		SimWords:            32,
		SimSaturation:       0.005,
		SatConflictPerNode:  100,
		SatConflictPerMiter: 500_000,
		SatTotalBudget:      0, // 0 = unbounded
		SatTotalInspects:    0,
		Log:                 io.Discard,
	}
}

// Option mutates a Config during ManagerStart.
type Option func(*Config)

func WithFanoutIndex(on bool) Option       { return func(c *Config) { c.FanoutIndex = on } }
func WithUpdateLevel(on bool) Option       { return func(c *Config) { c.UpdateLevel = on } }
func WithZeroCost(on bool) Option          { return func(c *Config) { c.UseZeroCost = on } }
func WithVerbose(on bool) Option           { return func(c *Config) { c.Verbose = on } }
func WithLog(w io.Writer) Option           { return func(c *Config) { c.Log = w } }
func WithMaxCutSize(k int) Option          { return func(c *Config) { c.MaxCutSize = k } }
func WithCutStoreLimit(n int) Option       { return func(c *Config) { c.CutStoreLimit = n } }
func WithSimWords(n int) Option            { return func(c *Config) { c.SimWords = n } }
func WithSimSaturation(r float64) Option   { return func(c *Config) { c.SimSaturation = r } }

func WithSatConflictPerNode(n int) Option  { return func(c *Config) { c.SatConflictPerNode = n } }
func WithSatConflictPerMiter(n int) Option { return func(c *Config) { c.SatConflictPerMiter = n } }
func WithSatTotalBudget(n int) Option      { return func(c *Config) { c.SatTotalBudget = n } }
func WithSatTotalInspects(n int) Option    { return func(c *Config) { c.SatTotalInspects = n } }

// RewriteOptions configures a single rewrite pass; it narrows Config
// down to the fields §4.10/§6 actually consult.
type RewriteOptions struct {
	UpdateLevel bool
	UseZeroCost bool
	Verbose     bool
	MaxCutSize  int
	CutLimit    int
}

// rewriteOptionsFromConfig derives RewriteOptions from the Manager's
// ambient Config, letting callers override individual fields.
func (m *Manager) rewriteOptionsFromConfig() RewriteOptions {
	return RewriteOptions{
		UpdateLevel: m.cfg.UpdateLevel,
		UseZeroCost: m.cfg.UseZeroCost,
		Verbose:     m.cfg.Verbose,
		MaxCutSize:  m.cfg.MaxCutSize,
		CutLimit:    m.cfg.CutStoreLimit,
	}
}

// FraigOptions configures a FRAIG pass, including an injectable SAT
// solver factory so tests can substitute a stub without linking gini.
type FraigOptions struct {
	SimWords      int
	SimSaturation float64

	SatConflictPerNode  int
	SatConflictPerMiter int
	SatTotalBudget      int
	SatTotalInspects    int

	Verbose bool

	// SolverFactory builds a fresh SAT solver for the pass. Nil means
	// use the default gini-backed solver (internal/satif).
	SolverFactory func() Solver
}

func (m *Manager) fraigOptionsFromConfig() FraigOptions {
	return FraigOptions{
		SimWords:            m.cfg.SimWords,
		SimSaturation:       m.cfg.SimSaturation,
		SatConflictPerNode:  m.cfg.SatConflictPerNode,
		SatConflictPerMiter: m.cfg.SatConflictPerMiter,
		SatTotalBudget:      m.cfg.SatTotalBudget,
		SatTotalInspects:    m.cfg.SatTotalInspects,
		Verbose:             m.cfg.Verbose,
	}
}
