// Package metric provides Prometheus instrumentation for block topologies.
//
// The core metrics cover the work loop: invocations per block, yields
// (invocations that moved nothing), and element throughput on both sides.
// A Registry owns the prometheus registry and lets blocks attach their own
// collectors; Server exposes everything over HTTP for scraping.
//
// Runners call Metrics.RecordWork after each invocation with the element
// deltas observed on the block's ports. Blocks themselves stay free of
// instrumentation so the hot path carries no metric cost when no registry
// is attached.
package metric
