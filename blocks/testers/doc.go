// Package testers provides source and sink blocks for exercising
// topologies in tests: a feeder that emits scripted buffers, messages,
// and labels, a collector that accumulates everything it receives, a
// constant source, and a NaN injector for numeric robustness checks.
package testers
