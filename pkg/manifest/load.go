package manifest

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

// loadConcurrency caps the number of files decoded in parallel.
const loadConcurrency = 8

// Load reads manifest documents from the given file and directory paths.
// Directories are walked recursively for .yaml/.yml/.json files (dot-prefixed
// entries are skipped); explicitly named files are read regardless of
// extension. Files decode in parallel but the returned objects keep
// deterministic path-then-document order. Empty documents are dropped.
func Load(paths ...string) ([]Object, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}

	results := make([][]Object, len(files))
	g := new(errgroup.Group)
	g.SetLimit(loadConcurrency)
	for i, path := range files {
		g.Go(func() error {
			objs, loadErr := loadFile(path)
			if loadErr != nil {
				return loadErr
			}
			results[i] = objs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var objects []Object
	for _, objs := range results {
		objects = append(objects, objs...)
	}
	return objects, nil
}

// expandPaths resolves the given paths into a flat, de-duplicated file list.
// Input order is preserved; within a directory files are walked lexically.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "input path not accessible", err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		var dirFiles []string
		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") && p != path {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".yaml", ".yml", ".json":
				dirFiles = append(dirFiles, p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to walk input directory", walkErr)
		}
		sort.Strings(dirFiles)
		for _, f := range dirFiles {
			add(f)
		}
	}

	return files, nil
}

// loadFile decodes every document of a multi-document YAML (or JSON) file.
func loadFile(path string) ([]Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "failed to open manifest file", err)
	}
	defer f.Close()

	var objects []Object
	dec := yaml.NewDecoder(f)
	for idx := 0; ; idx++ {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, apperrors.WrapWithContext(
				apperrors.ErrCodeInvalidManifest,
				"failed to decode manifest document",
				err,
				map[string]any{"path": path, "document": idx},
			)
		}
		if doc == nil {
			continue
		}
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, apperrors.NewWithContext(
				apperrors.ErrCodeInvalidManifest,
				"manifest document is not a mapping",
				map[string]any{"path": path, "document": idx},
			)
		}
		objects = append(objects, Object(obj))
	}
	return objects, nil
}
