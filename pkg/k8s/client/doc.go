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

// Package client builds the Kubernetes client used for cluster seeding.
//
// A process-wide client is initialized once and cached so repeated runs
// share one connection:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//
// Configuration is discovered from the KUBECONFIG environment variable,
// then ~/.kube/config, then the in-cluster service account, so the same
// binary works on a workstation and inside a Pod. When an explicit
// kubeconfig path is given on the command line, use BuildKubeClient,
// which bypasses the cache.
//
// Tests substitute fake clientsets through the Interface alias:
//
//	clientset := fake.NewClientset()
package client
