// Package stream provides the stream-processing block library: elementwise
// transforms (clamp, round family, IsX predicates, replace), type
// converters, zero-copy forwarding blocks (mute, select, multiplexer,
// reinterpret, label stripper), chunked interleaving, the min/max
// reduction, bounded-window blocks (first-n, skip-first-n, repeat), and a
// rate pacer.
//
// # Dispatch By DType
//
// Typed blocks are generic over the supported element kinds. A factory
// selects the concrete instantiation by matching the requested dtype's
// base kind against the block's supported set and fails construction with
// an invalid-argument error carrying the offending type name. A dtype
// with dimension above one runs the base scalar kernel over
// elements*dimension slots.
//
// # Forwarding Blocks
//
// Blocks that hand buffers downstream without copying declare a unique
// buffer domain per instance on their output ports. They gate on
// MinInElements only, take the input's buffer, consume every available
// input element, and post the (possibly truncated or reinterpreted) view.
// Queued messages drain ahead of the buffer post in FIFO order. A
// forwarded buffer is never mutated in place: another holder may still
// observe the old contents.
package stream
