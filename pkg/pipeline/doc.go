// Package pipeline runs manifest converters over a set of input manifests.
//
// # Overview
//
// A conversion run takes decoded manifests, hands manifests of claimed
// kinds to registered converters in priority order, and produces the
// portable result set: everything no converter claimed passes through
// untouched, while converters publish plain Secret and ConfigMap records
// onto the shared State.
//
// Converters communicate exclusively through the State: reads via the
// StateReader view, outputs via ConfigMapSink, diagnostics via WarningSink.
// Recoverable problems become warnings and never abort the run; warnings
// are aggregated on the Output and reported at the end.
//
// # Ordering
//
// Priority orders execution: a converter that consumes records another
// converter produces declares a higher priority than its producer. The
// intake converter (priority 100) runs before the trust-bundle converter
// (priority 200) so that file-provided Secrets and ConfigMaps are visible
// when bundles resolve their sources.
//
// # Usage
//
//	eng := pipeline.New(
//	    pipeline.WithConverter(intake.New()),
//	    pipeline.WithConverter(trustbundle.New()),
//	)
//	out, err := eng.Run(ctx, objects)
package pipeline
