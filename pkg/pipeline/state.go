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
	"fmt"
	"sort"
	"sync"

	"github.com/manifold-dev/manifold/pkg/manifest"
)

// StateReader provides read access to the resources known to a run.
type StateReader interface {
	Secret(name string) (manifest.Object, bool)
	ConfigMap(name string) (manifest.Object, bool)
}

// ConfigMapSink receives ConfigMap-shaped records produced by converters.
// An insert overwrites any prior record of the same name.
type ConfigMapSink interface {
	PutConfigMap(name string, record manifest.Object)
}

// WarningSink collects non-fatal diagnostics in emission order.
type WarningSink interface {
	Warnf(format string, args ...any)
}

// State is the shared resource collection for a single pipeline run.
// Converters read Secrets and ConfigMaps from it and publish results back
// into it. Writes are serialized so converters stay safe if a scheduler
// later fans work out across goroutines.
type State struct {
	mu         sync.RWMutex
	secrets    map[string]manifest.Object
	configMaps map[string]manifest.Object
	warnings   []string
}

var (
	_ StateReader   = (*State)(nil)
	_ ConfigMapSink = (*State)(nil)
	_ WarningSink   = (*State)(nil)
)

// NewState creates an empty State.
func NewState() *State {
	return &State{
		secrets:    make(map[string]manifest.Object),
		configMaps: make(map[string]manifest.Object),
	}
}

// Secret returns the Secret record with the given name.
func (s *State) Secret(name string) (manifest.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.secrets[name]
	return rec, ok
}

// ConfigMap returns the ConfigMap record with the given name.
func (s *State) ConfigMap(name string) (manifest.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.configMaps[name]
	return rec, ok
}

// PutSecret inserts or replaces a Secret record.
func (s *State) PutSecret(name string, record manifest.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[name] = record
}

// PutConfigMap inserts or replaces a ConfigMap record.
func (s *State) PutConfigMap(name string, record manifest.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configMaps[name] = record
}

// Warnf records a non-fatal diagnostic.
func (s *State) Warnf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the accumulated diagnostics in emission order.
func (s *State) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// SecretNames returns the known Secret names, sorted.
func (s *State) SecretNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.secrets)
}

// ConfigMapNames returns the known ConfigMap names, sorted.
func (s *State) ConfigMapNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.configMaps)
}

func sortedKeys(m map[string]manifest.Object) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
