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

// Package k8s groups the Kubernetes integration for manifold.
//
// The client sub-package holds the shared clientset used to seed a
// conversion run from a live cluster:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//	seed := cluster.Seed(clientset, namespace)
//
// The client authenticates automatically, preferring the KUBECONFIG
// environment variable, then ~/.kube/config, then the in-cluster service
// account.
package k8s
