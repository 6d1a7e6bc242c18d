// Package manifest handles reading and writing Kubernetes-style manifests
// as generic map-shaped objects.
//
// Manifests are loaded from files or directories (multi-document YAML and
// JSON), carried through the conversion pipeline as Object values, and
// rendered back out either as one file per object or as a single
// multi-document stream.
//
// Usage:
//
//	objects, err := manifest.Load("./manifests")
//	if err != nil {
//	    return err
//	}
//	paths, err := manifest.WriteDir("./out", objects)
package manifest
