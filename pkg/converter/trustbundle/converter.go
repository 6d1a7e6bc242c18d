/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/

package trustbundle

import (
	"context"
	"log/slog"
	"strings"

	"github.com/manifold-dev/manifold/pkg/defaultca"
	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/pipeline"
)

const (
	// Name identifies the converter in results, logs, and metrics.
	Name = "trust-manager"
	// KindBundle is the manifest kind this converter claims.
	KindBundle = "Bundle"
	// Priority places bundle resolution after Secret/ConfigMap intake and
	// before converters that consume the published ConfigMaps.
	Priority = 200

	// DefaultTargetKey is the ConfigMap key used when a Bundle does not
	// configure spec.target.configMap.key.
	DefaultTargetKey = "ca-certificates.crt"

	// fallbackBundleName stands in for Bundles without metadata.name.
	fallbackBundleName = "?"
)

// Converter resolves Bundle manifests into merged PEM ConfigMap records on
// the pipeline state.
type Converter struct {
	defaultCA func() (string, bool)
}

var _ pipeline.Converter = (*Converter)(nil)

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithDefaultCAs overrides the default-CA lookup chain.
func WithDefaultCAs(fn func() (string, bool)) Option {
	return func(c *Converter) {
		if fn != nil {
			c.defaultCA = fn
		}
	}
}

// WithPackageLocation roots the default-CA chain at the given packaged
// trusted-root bundle location instead of the conventional one.
func WithPackageLocation(path string) Option {
	return func(c *Converter) {
		c.defaultCA = func() (string, bool) {
			return defaultca.Lookup(defaultca.Chain(path)...)
		}
	}
}

// New creates the trust-bundle converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		defaultCA: defaultca.System,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements pipeline.Converter.
func (c *Converter) Name() string { return Name }

// Kinds implements pipeline.Converter.
func (c *Converter) Kinds() []string { return []string{KindBundle} }

// Priority implements pipeline.Converter.
func (c *Converter) Priority() int { return Priority }

// Convert resolves each Bundle independently. Every failure degrades to a
// state warning; the run is never aborted from here.
func (c *Converter) Convert(ctx context.Context, state *pipeline.State, kind string, objects []manifest.Object) (*pipeline.Result, error) {
	res := &pipeline.Result{}
	r := &resolver{state: state, defaultCA: c.defaultCA}
	for _, obj := range objects {
		if c.assemble(obj, r, state, state) {
			res.Converted++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

// assemble resolves one Bundle manifest: sources resolve in declaration
// order, diagnostics go to warnings, and the merged record is published
// through outputs keyed by bundle name. Reports whether an artifact was
// produced.
func (c *Converter) assemble(obj manifest.Object, resolve *resolver, outputs pipeline.ConfigMapSink, warnings pipeline.WarningSink) bool {
	name := bundleName(obj)

	var parts []string
	for _, src := range parseSources(obj) {
		res := resolve.resolve(name, src)
		if res.Warning != "" {
			warnings.Warnf("%s", res.Warning)
			continue
		}
		if res.PEM != "" {
			parts = append(parts, res.PEM)
		}
	}

	if len(parts) == 0 {
		warnings.Warnf("Bundle '%s': no sources resolved — skipped", name)
		return false
	}

	outputs.PutConfigMap(name, manifest.Object{
		"metadata": map[string]any{"name": name},
		"data":     map[string]any{bundleTargetKey(obj): Merge(parts)},
	})
	slog.Info("generated trust bundle", "bundle", name, "sources", len(parts))
	return true
}

// Merge joins PEM fragments into one bundle: trailing newlines are stripped
// per fragment, fragments join with a single newline, and the result ends
// with exactly one trailing newline.
func Merge(parts []string) string {
	trimmed := make([]string, len(parts))
	for i, p := range parts {
		trimmed[i] = strings.TrimRight(p, "\n")
	}
	return strings.Join(trimmed, "\n") + "\n"
}

// bundleName returns metadata.name, or the fallback placeholder when the
// field is absent.
func bundleName(obj manifest.Object) string {
	if name, ok := obj.StringField("metadata", "name"); ok {
		return name
	}
	return fallbackBundleName
}

// bundleTargetKey returns spec.target.configMap.key when present (honored
// even when empty), else the default key.
func bundleTargetKey(obj manifest.Object) string {
	if key, ok := obj.StringField("spec", "target", "configMap", "key"); ok {
		return key
	}
	return DefaultTargetKey
}
