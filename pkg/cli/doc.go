/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the manifold command line interface.
//
// # Overview
//
// The CLI is built on urfave/cli/v3 and exposes the conversion pipeline
// as a single binary. It reads custom-resource manifests, resolves them
// into plain portable resources, and writes the result to stdout, a
// directory, or an OCI registry.
//
// # Commands
//
//   - convert: run the conversion pipeline over one or more inputs
//   - version: print version information
//
// # Global Flags
//
//   - --debug: enable debug logging
//
// # Usage Examples
//
// Convert a directory of manifests to stdout:
//
//	manifold convert --input ./manifests
//
// Write converted manifests to a directory:
//
//	manifold convert --input ./manifests --output ./out
//
// Resolve Bundle sources against a live cluster:
//
//	manifold convert --input bundle.yaml --from-cluster --namespace trust
//
// Push converted manifests to an OCI registry:
//
//	manifold convert --input ./manifests --output oci://ghcr.io/acme/manifests:v1
//
// # Environment Variables
//
// Every flag can be set through the environment using the MANIFOLD_
// prefix, for example MANIFOLD_OUTPUT or MANIFOLD_NAMESPACE. LOG_LEVEL
// adjusts log verbosity when --debug is not set.
//
// # Exit Codes
//
// The binary exits 0 on success and 1 on any error. Conversion warnings
// (unresolvable Bundle sources, nameless manifests) are logged but do
// not change the exit code.
//
// # Build Information
//
// Version, commit, and build date are injected at build time via
// -ldflags and reported by both "manifold version" and the start-up log
// line.
package cli
