// Package errors provides structured error handling for the StreamBlocks
// platform with classification-based error management.
//
// # Error Classification
//
// Errors are classified into four kinds mirroring how block construction,
// configuration, and runtime invariants fail:
//
//   - KindInvalidArgument: unsupported or mismatched data types at block
//     construction, malformed configuration (non-positive chunk size,
//     non-bijective route table)
//   - KindRange: an index or channel parameter outside its valid domain
//     (selected input >= number of inputs, clamp min > max)
//   - KindNotImplemented: a method deliberately unsupported for a given
//     mode or configuration path
//   - KindInternal: a violated internal invariant that should be
//     unreachable given the construction-time validation
//
// # Propagation Policy
//
// All configuration and construction errors are synchronous and raised at
// the point of the offending call, never deferred into Work(). A failed
// setter call leaves the block's prior valid state unchanged: validation
// happens before mutation in all setters.
//
// # Usage
//
//	if chunkSize <= 0 {
//	    return errors.InvalidArgumentf("Deinterleaver", "SetChunkSize",
//	        "chunk size must be positive, got %d", chunkSize)
//	}
//
//	if errors.IsRange(err) {
//	    // channel index out of bounds
//	}
package errors
