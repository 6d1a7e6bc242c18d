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

// Package cluster seeds a pipeline run with the Secrets and ConfigMaps of a
// live Kubernetes namespace.
package cluster

import (
	"context"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/manifold-dev/manifold/pkg/errors"
	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/pipeline"
)

// DefaultNamespace is used when no namespace is given.
const DefaultNamespace = "default"

// Seed returns a seeding step that lists the Secrets and ConfigMaps of one
// namespace and stores them in the run state. Seeding runs before any
// converter, so records provided in input files replace cluster records of
// the same name.
func Seed(client kubernetes.Interface, namespace string) pipeline.SeedFunc {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return func(ctx context.Context, state *pipeline.State) error {
		secrets, err := client.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeUnavailable,
				"failed to list secrets", err, map[string]any{"namespace": namespace})
		}
		for i := range secrets.Items {
			state.PutSecret(secrets.Items[i].Name, secretRecord(&secrets.Items[i]))
		}

		configMaps, err := client.CoreV1().ConfigMaps(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeUnavailable,
				"failed to list config maps", err, map[string]any{"namespace": namespace})
		}
		for i := range configMaps.Items {
			state.PutConfigMap(configMaps.Items[i].Name, configMapRecord(&configMaps.Items[i]))
		}

		slog.Debug("seeded state from cluster",
			"namespace", namespace,
			"secrets", len(secrets.Items),
			"config_maps", len(configMaps.Items),
		)
		return nil
	}
}

// secretRecord converts an API Secret into the record shape converters
// expect. Data values arrive from the API already decoded, so they are
// stored under stringData rather than re-encoded.
func secretRecord(s *corev1.Secret) manifest.Object {
	data := make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		data[k] = string(v)
	}
	return manifest.Object{
		"apiVersion": "v1",
		"kind":       "Secret",
		"metadata":   map[string]any{"name": s.Name},
		"stringData": data,
	}
}

func configMapRecord(cm *corev1.ConfigMap) manifest.Object {
	data := make(map[string]any, len(cm.Data))
	for k, v := range cm.Data {
		data[k] = v
	}
	return manifest.Object{
		"apiVersion": "v1",
		"kind":       "ConfigMap",
		"metadata":   map[string]any{"name": cm.Name},
		"data":       data,
	}
}
