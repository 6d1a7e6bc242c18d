// Package trustbundle resolves declarative trust bundle manifests into
// merged PEM ConfigMap records.
//
// # Overview
//
// A Bundle manifest declares an ordered list of certificate sources: the
// host's default CA bundle, a key of a known Secret, a key of a known
// ConfigMap, or inline PEM text. The converter resolves each source against
// the pipeline state, merges the resolved fragments with normalized
// newlines, and publishes the result as a ConfigMap-shaped record keyed by
// bundle name:
//
//	metadata:
//	  name: <bundle name>
//	data:
//	  <target key>: <merged PEM>
//
// The target key comes from spec.target.configMap.key and defaults to
// ca-certificates.crt.
//
// # Failure model
//
// Nothing here aborts a run. Missing records, missing keys, and a missing
// system CA bundle each produce one warning on the pipeline state; a Bundle
// whose sources all fail produces a single "no sources resolved" warning
// and no artifact. A base64 Secret value that does not decode falls back to
// its raw value silently.
//
// # Ordering
//
// The converter runs at priority 200: after the intake converter has
// populated Secrets and ConfigMaps, and before converters that consume the
// ConfigMaps it publishes.
package trustbundle
