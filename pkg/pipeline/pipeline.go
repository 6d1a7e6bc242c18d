// Copyright (c) 2025, Manifold Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
	"github.com/manifold-dev/manifold/pkg/manifest"
)

// Converter transforms the manifests of its claimed kinds into plain
// resources published on the shared state. Converters run in ascending
// Priority order; a converter that needs records produced by another must
// declare a higher priority than its producer.
type Converter interface {
	// Name identifies the converter in results, logs, and metrics.
	Name() string
	// Kinds lists the manifest kinds this converter claims.
	Kinds() []string
	// Priority orders execution; lower runs earlier.
	Priority() int
	// Convert processes all input manifests of one claimed kind.
	// Recoverable problems degrade to state warnings; a returned error
	// aborts the run.
	Convert(ctx context.Context, state *State, kind string, objects []manifest.Object) (*Result, error)
}

// Result summarizes one converter invocation.
type Result struct {
	Converter string        `json:"converter" yaml:"converter"`
	Kind      string        `json:"kind" yaml:"kind"`
	Converted int           `json:"converted" yaml:"converted"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Output summarizes a full pipeline run.
type Output struct {
	RunID       string            `json:"runID" yaml:"runID"`
	Objects     []manifest.Object `json:"-" yaml:"-"`
	Results     []*Result         `json:"results" yaml:"results"`
	Warnings    []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Passthrough int               `json:"passthrough" yaml:"passthrough"`
	Duration    time.Duration     `json:"duration" yaml:"duration"`
}

// SeedFunc pre-populates the run state before any converter executes.
type SeedFunc func(ctx context.Context, state *State) error

// Engine executes registered converters over a set of input manifests.
type Engine struct {
	registry *Registry
	seeds    []SeedFunc
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConverter registers a converter on the engine.
func WithConverter(c Converter) Option {
	return func(e *Engine) {
		e.registry.Register(c)
	}
}

// WithSeed adds a state seeding step, run before converters in the order
// the options were given.
func WithSeed(fn SeedFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.seeds = append(e.seeds, fn)
		}
	}
}

// New creates an Engine with the given options.
//
// Example:
//
//	eng := pipeline.New(
//	    pipeline.WithConverter(intake.New()),
//	    pipeline.WithConverter(trustbundle.New()),
//	)
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's converter registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Run executes the pipeline over the given manifests. Manifests of kinds no
// converter claims pass through untouched; each claimed kind is handled by
// the first converter (in execution order) that lists it. The returned
// Output carries the full portable object set: passthrough objects in input
// order, then Secrets and ConfigMaps from the final state, each group
// sorted by name and normalized into complete manifests.
func (e *Engine) Run(ctx context.Context, objects []manifest.Object) (*Output, error) {
	start := time.Now()
	runID := uuid.NewString()

	converters := e.registry.Converters()
	slog.Info("conversion run starting",
		"run_id", runID,
		"objects", len(objects),
		"converters", len(converters),
	)

	state := NewState()
	for _, seed := range e.seeds {
		if err := seed(ctx, state); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "state seeding failed", err)
		}
	}

	// Assign each kind to the first converter claiming it.
	claims := make(map[string]string)
	for _, c := range converters {
		for _, kind := range c.Kinds() {
			if _, taken := claims[kind]; !taken {
				claims[kind] = c.Name()
			}
		}
	}

	byKind := make(map[string][]manifest.Object)
	var passthrough []manifest.Object
	for _, o := range objects {
		kind := o.Kind()
		if _, claimed := claims[kind]; claimed {
			byKind[kind] = append(byKind[kind], o)
		} else {
			passthrough = append(passthrough, o)
		}
	}

	var results []*Result
	for _, conv := range converters {
		for _, kind := range conv.Kinds() {
			if claims[kind] != conv.Name() {
				continue
			}
			batch := byKind[kind]
			if len(batch) == 0 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, "conversion run canceled", err)
			}

			convStart := time.Now()
			res, err := conv.Convert(ctx, state, kind, batch)
			elapsed := time.Since(convStart)
			if err != nil {
				convertedObjects.WithLabelValues(conv.Name(), "error").Add(float64(len(batch)))
				slog.Error("converter failed",
					"converter", conv.Name(),
					"kind", kind,
					"error", err,
				)
				return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
					"converter failed", err,
					map[string]any{"converter": conv.Name(), "kind": kind})
			}
			if res == nil {
				res = &Result{}
			}
			res.Converter = conv.Name()
			res.Kind = kind
			res.Duration = elapsed
			results = append(results, res)

			convertedObjects.WithLabelValues(conv.Name(), "success").Add(float64(res.Converted))
			slog.Debug("converter finished",
				"converter", conv.Name(),
				"kind", kind,
				"converted", res.Converted,
				"skipped", res.Skipped,
				"duration_sec", elapsed.Seconds(),
			)
		}
	}

	out := &Output{
		RunID:       runID,
		Objects:     assembleObjects(passthrough, state),
		Results:     results,
		Warnings:    state.Warnings(),
		Passthrough: len(passthrough),
		Duration:    time.Since(start),
	}

	runDuration.Observe(out.Duration.Seconds())
	runWarnings.Add(float64(len(out.Warnings)))
	slog.Info("conversion run complete",
		"run_id", runID,
		"outputs", len(out.Objects),
		"passthrough", out.Passthrough,
		"warnings", len(out.Warnings),
		"duration_sec", out.Duration.Seconds(),
	)

	return out, nil
}

// assembleObjects builds the portable output set from passthrough manifests
// and the final run state.
func assembleObjects(passthrough []manifest.Object, state *State) []manifest.Object {
	out := make([]manifest.Object, 0, len(passthrough))
	out = append(out, passthrough...)

	for _, name := range state.SecretNames() {
		rec, _ := state.Secret(name)
		out = append(out, manifest.Normalize(rec, "Secret", name))
	}
	for _, name := range state.ConfigMapNames() {
		rec, _ := state.ConfigMap(name)
		out = append(out, manifest.Normalize(rec, "ConfigMap", name))
	}
	return out
}
