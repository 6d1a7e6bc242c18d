package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

// Write renders objects as a multi-document YAML stream.
func Write(w io.Writer, objects []Object) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, o := range objects {
		if err := enc.Encode(map[string]any(o)); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode manifest", err)
		}
	}
	return enc.Close()
}

// WriteDir renders one YAML file per object into dir, creating it if needed.
// File names follow <kind>-<name>.yaml with an index fallback for nameless
// objects and a numeric suffix on collisions. Returns the written paths.
func WriteDir(dir string, objects []Object) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create output directory", err)
	}

	paths := make([]string, 0, len(objects))
	seen := make(map[string]int)
	for i, o := range objects {
		name := fileName(i, o)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s-%d.yaml", strings.TrimSuffix(name, ".yaml"), n+1)
		} else {
			seen[name] = 1
		}

		path := filepath.Join(dir, name)
		if err := writeFile(path, o); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, o Object) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create output file", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(o)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode manifest", err)
	}
	return enc.Close()
}

func fileName(idx int, o Object) string {
	kind := strings.ToLower(o.Kind())
	if kind == "" {
		kind = "manifest"
	}
	name := sanitizeName(o.Name())
	if name == "" {
		return fmt.Sprintf("%s-%d.yaml", kind, idx)
	}
	return fmt.Sprintf("%s-%s.yaml", kind, name)
}

// sanitizeName keeps file names portable: anything outside [a-z0-9._-]
// becomes a dash, and leading/trailing dashes are trimmed.
func sanitizeName(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// Normalize completes a state record into a renderable manifest: apiVersion
// defaults to v1, kind to the given kind, and metadata.name is forced to the
// collection key. The input record is not mutated.
func Normalize(record Object, kind, name string) Object {
	out := make(Object, len(record)+3)
	for k, v := range record {
		out[k] = v
	}

	if _, ok := out["apiVersion"]; !ok {
		out["apiVersion"] = "v1"
	}
	if _, ok := out["kind"]; !ok {
		out["kind"] = kind
	}

	meta := make(map[string]any)
	if m, ok := out["metadata"].(map[string]any); ok {
		for k, v := range m {
			meta[k] = v
		}
	}
	meta["name"] = name
	out["metadata"] = meta

	return out
}
