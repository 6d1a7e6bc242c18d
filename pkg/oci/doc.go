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

// Package oci publishes rendered manifests to OCI-compliant registries.
//
// Output targets of the form oci://registry/repository:tag are parsed
// with ParseOutputTarget; anything else is treated as a local directory:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/acme/manifests:v1")
//	if err != nil {
//	    return err
//	}
//	if ref.IsOCI {
//	    result, err := oci.Publish(ctx, renderedDir, ref, version, false, false)
//	    ...
//	}
//
// Publish packages the rendered manifest directory as a single-layer
// OCI 1.1 artifact of type application/vnd.manifold.manifests and copies
// it to the registry with ORAS. Authentication comes from the local
// Docker credential store. PlainHTTP switches the connection to HTTP for
// local registries; InsecureTLS skips certificate verification.
//
// Tars are reproducible, so pushing the same rendered output twice yields
// the same layer digest.
package oci
