// Package block provides the port abstraction and base type every stream
// block is built on, plus the factory registry the topology layer uses to
// construct blocks by name.
//
// # Work Invocation Contract
//
// A block's Work method is a callback invoked by a host scheduler whenever
// the block's input/output constraints may be satisfiable. On entry a block
// computes the minimum satisfiable unit of work from its WorkInfo:
//
//	info := b.WorkInfo()
//	if info.MinElements == 0 {
//	    return // spurious wakeup: no partial consume/produce
//	}
//
// Blocks that forward whole buffers zero-copy use MinInElements instead,
// because output capacity is irrelevant to a buffer hand-off.
//
// A single block's Work is never reentered concurrently with itself.
// Different blocks may run on separate goroutines; the only shared state
// between them is the buffers moved through ports.
//
// # Consume / Produce Protocol
//
// Consume(k) requires k <= Elements() on the input port; Produce(k)
// requires k <= Elements() (remaining capacity) on the output port.
// Violations are programming errors: the port panics with a classified
// internal error rather than corrupting the element bookkeeping.
//
// Ports declared without a dtype are unconstrained and measure their
// contents in bytes: Elements, Consume, and SetReserve all operate on byte
// counts for such ports, matching the buffer's element size of one.
//
// # Reserves
//
// An input port may declare a reserve: a minimum element count required
// before the block's Work can usefully proceed. A port below its reserve
// reports zero effective elements to WorkInfo, so the scheduler does not
// invoke Work with partial data. Output reserves work the same way for
// blocks that must never produce a truncated run.
package block
