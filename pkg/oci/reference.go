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

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry output
// (e.g., "oci://ghcr.io/org/repo:tag").
const URIScheme = "oci://"

// Reference is a parsed output target: either an OCI registry reference or
// a local directory path.
type Reference struct {
	// IsOCI indicates whether this is an OCI registry reference (true) or
	// a local path (false).
	IsOCI bool
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "manifold/manifests").
	Repository string
	// Tag is the image tag. Empty means no tag was specified; the caller
	// applies a default.
	Tag string
	// LocalPath is the local directory path for non-OCI output.
	LocalPath string
}

// ParseOutputTarget parses an output target string. Targets starting with
// oci:// are parsed as registry references; anything else is a local
// directory path.
//
// When an OCI URI carries no tag, Tag is left empty and the caller is
// responsible for applying a default (e.g., the CLI version).
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{
			IsOCI:     false,
			LocalPath: target,
		}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidReference, "invalid OCI reference", err)
	}

	registry := reference.Domain(ref)
	repository := reference.Path(ref)

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(registry, repository); err != nil {
		return nil, err
	}

	return &Reference{
		IsOCI:      true,
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// ValidateRegistryReference checks that the registry host and repository
// path form a valid image reference. A protocol prefix on the registry is
// tolerated and stripped before validation.
func ValidateRegistryReference(registry, repository string) error {
	host := stripProtocol(registry)
	if host == "" {
		return apperrors.New(apperrors.ErrCodeInvalidReference, "registry host is required")
	}
	if _, err := reference.ParseNormalizedNamed(fmt.Sprintf("%s/%s", host, repository)); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidReference,
			"invalid registry reference", err,
			map[string]any{"registry": registry, "repository": repository})
	}
	return nil
}

// String returns the full reference string: "oci://registry/repository:tag"
// for OCI references (tag omitted when empty), the local path otherwise.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s%s/%s", URIScheme, r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the Docker-style image reference without the
// oci:// scheme. Returns "" for non-OCI references.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the given tag. Non-OCI
// references are returned unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	return &Reference{
		IsOCI:      true,
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}
