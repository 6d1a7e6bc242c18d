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

package manifest

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Object is a single decoded manifest document. It stays map-shaped end to
// end: typed decoding would eagerly base64-decode Secret data and reject
// invalid encodings, while converters need access to the raw values.
type Object map[string]any

// Kind returns the manifest kind, or "" when absent or not a string.
func (o Object) Kind() string {
	kind, _, _ := unstructured.NestedString(o, "kind")
	return kind
}

// APIVersion returns the manifest apiVersion, or "" when absent.
func (o Object) APIVersion() string {
	v, _, _ := unstructured.NestedString(o, "apiVersion")
	return v
}

// Name returns metadata.name, or "" when absent.
func (o Object) Name() string {
	name, _, _ := unstructured.NestedString(o, "metadata", "name")
	return name
}

// StringField returns the string value at the given field path.
// ok is false when the path is absent or the value is not a string.
func (o Object) StringField(fields ...string) (string, bool) {
	v, found, err := unstructured.NestedString(o, fields...)
	if err != nil || !found {
		return "", false
	}
	return v, true
}

// SliceField returns the slice value at the given field path without
// copying. NestedSlice is avoided here: its deep copy rejects the plain
// int values YAML decoding produces, and callers only read the result.
// ok is false when the path is absent or the value is not a slice.
func (o Object) SliceField(fields ...string) ([]any, bool) {
	v, found, err := unstructured.NestedFieldNoCopy(o, fields...)
	if err != nil || !found {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}
