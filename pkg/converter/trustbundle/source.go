package trustbundle

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/pipeline"
)

// ObjectKeyRef points at one key of a named Secret or ConfigMap record.
type ObjectKeyRef struct {
	Name string
	Key  string
}

// Source is one entry of a Bundle's spec.sources list. At most one field is
// set for a recognized source; the zero value contributes nothing and
// resolves silently.
type Source struct {
	UseDefaultCAs *bool
	Secret        *ObjectKeyRef
	ConfigMap     *ObjectKeyRef
	InLine        *string
}

// Resolution is the outcome of resolving one source: a PEM fragment, a
// warning diagnostic, or neither. Never both.
type Resolution struct {
	PEM     string
	Warning string
}

// parseSources extracts the tagged source list from a Bundle manifest.
// An absent or malformed spec.sources yields an empty list.
func parseSources(obj manifest.Object) []Source {
	entries, ok := obj.SliceField("spec", "sources")
	if !ok {
		return nil
	}
	sources := make([]Source, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, parseSource(e))
	}
	return sources
}

// parseSource types a single source descriptor. Recognition probes in
// order: useDefaultCAs, secret, configMap, inLine. A descriptor matching
// none of them parses to the zero Source.
func parseSource(entry any) Source {
	m, ok := entry.(map[string]any)
	if !ok {
		return Source{}
	}
	if b, ok := m["useDefaultCAs"].(bool); ok && b {
		return Source{UseDefaultCAs: &b}
	}
	if ref, ok := objectKeyRef(m["secret"]); ok {
		return Source{Secret: ref}
	}
	if ref, ok := objectKeyRef(m["configMap"]); ok {
		return Source{ConfigMap: ref}
	}
	if text, ok := m["inLine"].(string); ok {
		return Source{InLine: &text}
	}
	return Source{}
}

// objectKeyRef types a secret/configMap reference mapping. Empty mappings
// do not count as references; missing name/key fields default to "".
func objectKeyRef(v any) (*ObjectKeyRef, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	ref := &ObjectKeyRef{}
	if s, ok := m["name"].(string); ok {
		ref.Name = s
	}
	if s, ok := m["key"].(string); ok {
		ref.Key = s
	}
	return ref, true
}

// resolver resolves bundle sources against the state of a pipeline run.
type resolver struct {
	state     pipeline.StateReader
	defaultCA func() (string, bool)
}

// resolve produces the Resolution for one source. Unrecognized sources and
// empty inline text resolve to the empty Resolution.
func (r *resolver) resolve(bundleName string, src Source) Resolution {
	switch {
	case src.UseDefaultCAs != nil:
		if pem, ok := r.defaultCA(); ok {
			return Resolution{PEM: pem}
		}
		return Resolution{Warning: fmt.Sprintf(
			"Bundle '%s': useDefaultCAs requested but no system CA bundle found", bundleName)}

	case src.Secret != nil:
		if pem, ok := r.secretValue(src.Secret); ok {
			return Resolution{PEM: pem}
		}
		return Resolution{Warning: fmt.Sprintf(
			"Bundle '%s': secret '%s' key '%s' not found", bundleName, src.Secret.Name, src.Secret.Key)}

	case src.ConfigMap != nil:
		if pem, ok := r.configMapValue(src.ConfigMap); ok {
			return Resolution{PEM: pem}
		}
		return Resolution{Warning: fmt.Sprintf(
			"Bundle '%s': configMap '%s' key '%s' not found", bundleName, src.ConfigMap.Name, src.ConfigMap.Key)}

	case src.InLine != nil:
		return Resolution{PEM: *src.InLine}
	}
	return Resolution{}
}

// secretValue looks up a Secret record value. Plain text under stringData
// is preferred; otherwise the base64 value under data is decoded with a
// silent raw-value fallback on invalid encoding.
func (r *resolver) secretValue(ref *ObjectKeyRef) (string, bool) {
	rec, ok := r.state.Secret(ref.Name)
	if !ok {
		return "", false
	}
	if sd, ok := rec["stringData"].(map[string]any); ok {
		if s, ok := sd[ref.Key].(string); ok {
			return s, true
		}
	}
	if data, ok := rec["data"].(map[string]any); ok {
		if raw, ok := data[ref.Key].(string); ok {
			return decodeOrRaw(raw), true
		}
	}
	return "", false
}

// configMapValue looks up a ConfigMap record value. The nested data form is
// authoritative whenever the data field is present, even when empty or
// null; the flat form is consulted only when data is absent.
func (r *resolver) configMapValue(ref *ObjectKeyRef) (string, bool) {
	rec, ok := r.state.ConfigMap(ref.Name)
	if !ok {
		return "", false
	}
	if _, present := rec["data"]; present {
		data, _ := rec["data"].(map[string]any)
		s, ok := data[ref.Key].(string)
		return s, ok
	}
	s, ok := rec[ref.Key].(string)
	return s, ok
}

// decodeOrRaw base64-decodes a Secret data value, falling back to the raw
// value when the encoding or the decoded text is invalid.
func decodeOrRaw(raw string) string {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || !utf8.Valid(decoded) {
		return raw
	}
	return string(decoded)
}
