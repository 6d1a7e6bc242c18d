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

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversion run metrics
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "manifold_run_duration_seconds",
			Help:    "Time taken by a complete conversion run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	convertedObjects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manifold_converted_objects_total",
			Help: "Total number of manifests processed per converter",
		},
		[]string{"converter", "status"}, // success or error
	)

	runWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "manifold_run_warnings_total",
			Help: "Total number of warnings emitted across conversion runs",
		},
	)
)
