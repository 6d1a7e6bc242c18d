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

package defaultca

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

// DefaultPackageLocation is the conventional filesystem location of the
// packaged trusted-root bundle.
const DefaultPackageLocation = "/usr/share/manifold/ca-certificates.json"

// bundlePaths are the well-known system CA bundle locations, probed in order.
var bundlePaths = []string{
	"/etc/ssl/cert.pem",
	"/etc/ssl/certs/ca-certificates.crt",
	"/etc/ssl/certs/ca-bundle.crt",
}

// Package is a packaged trusted-root bundle: a JSON document carrying the
// PEM payload plus identifying metadata.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Bundle  string `json:"bundle"`
}

// LoadPackage reads and validates a packaged trusted-root bundle from path.
func LoadPackage(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "failed to open CA package", err)
	}
	defer f.Close()

	var pkg Package
	if err := json.NewDecoder(f).Decode(&pkg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, "failed to decode CA package", err)
	}
	if strings.TrimSpace(pkg.Bundle) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidManifest, "CA package has an empty bundle")
	}
	return &pkg, nil
}

// Source is one lookup strategy in the default-CA chain. It returns the
// bundle text and true on a hit; unreadable or empty candidates miss
// silently.
type Source func() (string, bool)

// FromPackage returns a Source reading a packaged trusted-root bundle from
// path. An empty path always misses.
func FromPackage(path string) Source {
	return func() (string, bool) {
		if path == "" {
			return "", false
		}
		pkg, err := LoadPackage(path)
		if err != nil {
			slog.Debug("skipping CA package", "path", path, "error", err)
			return "", false
		}
		return pkg.Bundle, true
	}
}

// FromFile returns a Source reading a plain PEM bundle from path.
func FromFile(path string) Source {
	return func() (string, bool) {
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			return "", false
		}
		return string(data), true
	}
}

// Lookup runs sources in order and returns the first hit.
func Lookup(sources ...Source) (string, bool) {
	for _, src := range sources {
		if pem, ok := src(); ok {
			return pem, true
		}
	}
	return "", false
}

// Chain builds the standard lookup order: the packaged bundle at
// packageLocation first, then the well-known system paths.
func Chain(packageLocation string) []Source {
	sources := make([]Source, 0, len(bundlePaths)+1)
	sources = append(sources, FromPackage(packageLocation))
	for _, p := range bundlePaths {
		sources = append(sources, FromFile(p))
	}
	return sources
}

// System resolves the host default CA bundle using the standard chain
// rooted at DefaultPackageLocation.
func System() (string, bool) {
	return Lookup(Chain(DefaultPackageLocation)...)
}
