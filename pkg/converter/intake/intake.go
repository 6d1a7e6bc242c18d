// Package intake admits plain Secret and ConfigMap manifests into the
// shared run state so later conversion stages can reference them by name.
package intake

import (
	"context"

	"github.com/manifold-dev/manifold/pkg/errors"
	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/pipeline"
)

const (
	// Name identifies the converter in run results.
	Name = "core"

	KindSecret    = "Secret"
	KindConfigMap = "ConfigMap"

	// Priority places intake ahead of every conversion stage so that
	// file-provided records are visible to all of them.
	Priority = 100
)

// Converter stores input Secrets and ConfigMaps in the run state, keyed
// by metadata.name. Later records with the same name replace earlier ones.
type Converter struct{}

var _ pipeline.Converter = (*Converter)(nil)

// New creates the intake converter.
func New() *Converter { return &Converter{} }

func (c *Converter) Name() string { return Name }

func (c *Converter) Kinds() []string { return []string{KindSecret, KindConfigMap} }

func (c *Converter) Priority() int { return Priority }

// Convert stores each named manifest in the run state. Nameless manifests
// cannot be keyed and are skipped with a warning.
func (c *Converter) Convert(ctx context.Context, state *pipeline.State, kind string, objs []manifest.Object) (*pipeline.Result, error) {
	var put func(string, manifest.Object)
	switch kind {
	case KindSecret:
		put = state.PutSecret
	case KindConfigMap:
		put = state.PutConfigMap
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInternal,
			"unsupported intake kind", map[string]any{"kind": kind})
	}

	res := &pipeline.Result{}
	for _, obj := range objs {
		name := obj.Name()
		if name == "" {
			state.Warnf("%s manifest without metadata.name skipped", kind)
			res.Skipped++
			continue
		}
		put(name, obj)
		res.Converted++
	}
	return res, nil
}
