/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/manifold-dev/manifold/pkg/errors"
)

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "https prefix", input: "https://ghcr.io", expected: "ghcr.io"},
		{name: "http prefix", input: "http://localhost:5000", expected: "localhost:5000"},
		{name: "no prefix", input: "registry.example.com", expected: "registry.example.com"},
		{name: "with port no prefix", input: "localhost:5000", expected: "localhost:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripProtocol(tt.input); got != tt.expected {
				t.Errorf("stripProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPushEmptyTag(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		SourceDir:  t.TempDir(),
		Registry:   "localhost:5000",
		Repository: "test/repo",
	})
	if err == nil {
		t.Fatal("Push() expected error for empty tag")
	}
	if err.Error() != "tag is required to push OCI image" {
		t.Errorf("Push() error = %q", err.Error())
	}
}

func TestPushInvalidReference(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		SourceDir:  t.TempDir(),
		Registry:   "invalid registry with spaces",
		Repository: "test/repo",
		Tag:        "v1.0.0",
	})
	if err == nil {
		t.Fatal("Push() expected error for invalid registry")
	}
	if !strings.Contains(err.Error(), "invalid image reference") {
		t.Errorf("Push() error = %v, want invalid image reference", err)
	}
}

func TestPushMissingSourceDir(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		SourceDir:  "/nonexistent/manifold-out",
		Registry:   "localhost:5000",
		Repository: "test/repo",
		Tag:        "v1",
	})
	if err == nil {
		t.Fatal("Push() expected error for missing source directory")
	}
}

func TestPublishRequiresOCIReference(t *testing.T) {
	tests := []struct {
		name string
		ref  *Reference
	}{
		{name: "nil reference", ref: nil},
		{name: "local reference", ref: &Reference{LocalPath: "./out"}},
		{
			name: "missing tag",
			ref:  &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "acme/manifests"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Publish(context.Background(), t.TempDir(), tt.ref, "v1.0.0", false, false)
			if err == nil {
				t.Fatal("Publish() expected error")
			}
			if code := apperrors.GetCode(err); code != apperrors.ErrCodeInvalidReference {
				t.Errorf("Publish() code = %v, want %v", code, apperrors.ErrCodeInvalidReference)
			}
		})
	}
}

func TestCreateAuthClient(t *testing.T) {
	// insecure TLS only applies to HTTPS connections
	client := createAuthClient(false, true)
	transport := client.Client.Transport
	if transport == nil {
		t.Fatal("createAuthClient() returned client without transport")
	}

	secure := createAuthClient(false, false)
	if secure.Credential == nil {
		t.Error("createAuthClient() should always wire a credential source")
	}
	if secure.Cache == nil {
		t.Error("createAuthClient() should always wire an auth cache")
	}
}
