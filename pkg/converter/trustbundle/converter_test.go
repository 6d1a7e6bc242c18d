package trustbundle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/pipeline"
)

func bundleObj(name string, sources ...any) manifest.Object {
	obj := manifest.Object{
		"apiVersion": "trust.cert-manager.io/v1alpha1",
		"kind":       KindBundle,
		"metadata":   map[string]any{"name": name},
		"spec":       map[string]any{},
	}
	if len(sources) > 0 {
		obj["spec"].(map[string]any)["sources"] = sources
	}
	return obj
}

func bundleData(t *testing.T, state *pipeline.State, name string) map[string]any {
	t.Helper()
	rec, ok := state.ConfigMap(name)
	require.True(t, ok, "config map %q not published", name)
	data, ok := rec["data"].(map[string]any)
	require.True(t, ok, "config map %q has no data mapping", name)
	return data
}

func TestConverterContract(t *testing.T) {
	c := New()
	assert.Equal(t, "trust-manager", c.Name())
	assert.Equal(t, []string{KindBundle}, c.Kinds())
	assert.Equal(t, 200, c.Priority())
}

func TestConvertMergesSourcesInOrder(t *testing.T) {
	state := pipeline.NewState()
	state.PutSecret("certs", manifest.Object{
		"stringData": map[string]any{"tls.crt": "A\n\n"},
	})

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca1",
			map[string]any{"secret": map[string]any{"name": "certs", "key": "tls.crt"}},
			map[string]any{"inLine": "B"},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, state.Warnings())

	data := bundleData(t, state, "ca1")
	assert.Equal(t, "A\nB\n", data[DefaultTargetKey])
}

func TestConvertDefaultCAsWithConfigMap(t *testing.T) {
	state := pipeline.NewState()
	state.PutConfigMap("extra", manifest.Object{
		"data": map[string]any{"root.crt": "B"},
	})

	c := New(WithDefaultCAs(func() (string, bool) { return "SYS\n", true }))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca2",
			map[string]any{"useDefaultCAs": true},
			map[string]any{"configMap": map[string]any{"name": "extra", "key": "root.crt"}},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.Empty(t, state.Warnings())

	data := bundleData(t, state, "ca2")
	assert.Equal(t, "SYS\nB\n", data[DefaultTargetKey])
}

func TestConvertMissingSourceWarnsAndContinues(t *testing.T) {
	state := pipeline.NewState()

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca3",
			map[string]any{"secret": map[string]any{"name": "missing", "key": "tls.crt"}},
			map[string]any{"inLine": "B\n"},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.Equal(t, []string{"Bundle 'ca3': secret 'missing' key 'tls.crt' not found"}, state.Warnings())

	data := bundleData(t, state, "ca3")
	assert.Equal(t, "B\n", data[DefaultTargetKey])
}

func TestConvertAllSourcesEmptySkipsBundle(t *testing.T) {
	state := pipeline.NewState()

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca4", map[string]any{"useDefaultCAs": true}),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Converted)
	assert.Equal(t, 1, res.Skipped)

	_, ok := state.ConfigMap("ca4")
	assert.False(t, ok)
	assert.Equal(t, []string{
		"Bundle 'ca4': useDefaultCAs requested but no system CA bundle found",
		"Bundle 'ca4': no sources resolved — skipped",
	}, state.Warnings())
}

func TestConvertNoSourcesSkipsBundle(t *testing.T) {
	state := pipeline.NewState()

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Converted)
	assert.Equal(t, 1, res.Skipped)

	_, ok := state.ConfigMap("ca5")
	assert.False(t, ok)
	assert.Equal(t, []string{"Bundle 'ca5': no sources resolved — skipped"}, state.Warnings())
}

func TestConvertEmptyFragmentsContributeNothing(t *testing.T) {
	state := pipeline.NewState()
	state.PutSecret("certs", manifest.Object{
		"stringData": map[string]any{"empty.crt": ""},
	})

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca1",
			map[string]any{"secret": map[string]any{"name": "certs", "key": "empty.crt"}},
			map[string]any{"inLine": "PEM\n"},
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.Empty(t, state.Warnings())

	data := bundleData(t, state, "ca1")
	assert.Equal(t, "PEM\n", data[DefaultTargetKey])
}

func TestConvertTargetKey(t *testing.T) {
	tests := map[string]struct {
		target   any
		expected string
	}{
		"custom key": {
			target:   map[string]any{"configMap": map[string]any{"key": "bundle.pem"}},
			expected: "bundle.pem",
		},
		"empty key honored": {
			target:   map[string]any{"configMap": map[string]any{"key": ""}},
			expected: "",
		},
		"absent key defaults": {
			target:   map[string]any{"configMap": map[string]any{}},
			expected: DefaultTargetKey,
		},
		"absent target defaults": {
			target:   nil,
			expected: DefaultTargetKey,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			state := pipeline.NewState()
			obj := bundleObj("ca1", map[string]any{"inLine": "PEM"})
			if tt.target != nil {
				obj["spec"].(map[string]any)["target"] = tt.target
			}

			c := New(WithDefaultCAs(noDefaultCAs))
			_, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{obj})
			require.NoError(t, err)

			data := bundleData(t, state, "ca1")
			assert.Equal(t, "PEM\n", data[tt.expected])
		})
	}
}

func TestConvertNamelessBundle(t *testing.T) {
	state := pipeline.NewState()
	obj := manifest.Object{
		"kind": KindBundle,
		"spec": map[string]any{
			"sources": []any{map[string]any{"inLine": "PEM"}},
		},
	}

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{obj})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)

	data := bundleData(t, state, "?")
	assert.Equal(t, "PEM\n", data[DefaultTargetKey])
}

func TestConvertEmptyNameHonored(t *testing.T) {
	state := pipeline.NewState()

	c := New(WithDefaultCAs(noDefaultCAs))
	_, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("", map[string]any{"inLine": "PEM"}),
	})
	require.NoError(t, err)

	_, ok := state.ConfigMap("?")
	assert.False(t, ok)
	data := bundleData(t, state, "")
	assert.Equal(t, "PEM\n", data[DefaultTargetKey])
}

func TestConvertOverwritesByName(t *testing.T) {
	state := pipeline.NewState()
	state.PutConfigMap("ca1", manifest.Object{
		"data": map[string]any{"stale.crt": "OLD\n"},
	})

	c := New(WithDefaultCAs(noDefaultCAs))
	_, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ca1", map[string]any{"inLine": "FIRST"}),
		bundleObj("ca1", map[string]any{"inLine": "SECOND"}),
	})
	require.NoError(t, err)

	data := bundleData(t, state, "ca1")
	assert.Equal(t, "SECOND\n", data[DefaultTargetKey])
	assert.NotContains(t, data, "stale.crt")
}

func TestConvertIsIdempotent(t *testing.T) {
	build := func() *pipeline.State {
		state := pipeline.NewState()
		state.PutSecret("certs", manifest.Object{
			"stringData": map[string]any{"tls.crt": "A\n"},
		})
		return state
	}
	objs := []manifest.Object{
		bundleObj("ca1",
			map[string]any{"secret": map[string]any{"name": "certs", "key": "tls.crt"}},
			map[string]any{"inLine": "B"},
		),
	}

	c := New(WithDefaultCAs(noDefaultCAs))
	first := build()
	_, err := c.Convert(context.Background(), first, KindBundle, objs)
	require.NoError(t, err)
	second := build()
	_, err = c.Convert(context.Background(), second, KindBundle, objs)
	require.NoError(t, err)

	assert.Equal(t, bundleData(t, first, "ca1"), bundleData(t, second, "ca1"))
	assert.Equal(t, first.Warnings(), second.Warnings())
}

func TestConvertMixedOutcomes(t *testing.T) {
	state := pipeline.NewState()

	c := New(WithDefaultCAs(noDefaultCAs))
	res, err := c.Convert(context.Background(), state, KindBundle, []manifest.Object{
		bundleObj("ok", map[string]any{"inLine": "PEM"}),
		bundleObj("empty"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.Equal(t, 1, res.Skipped)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{name: "strips extra trailing newlines", parts: []string{"A\n\n", "B"}, expected: "A\nB\n"},
		{name: "single part", parts: []string{"A"}, expected: "A\n"},
		{name: "single part with newline", parts: []string{"A\n"}, expected: "A\n"},
		{name: "three parts", parts: []string{"A\n", "B\n\n\n", "C"}, expected: "A\nB\nC\n"},
		{name: "interior blank lines preserved", parts: []string{"A\n\nB\n"}, expected: "A\n\nB\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merge(tt.parts))
		})
	}
}
