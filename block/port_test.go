package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

func newTestInput(t *testing.T, dt dtype.DType) *InputPort {
	t.Helper()
	b := NewBase("test")
	return b.SetupInput(0, dt)
}

func newTestOutput(t *testing.T, dt dtype.DType) *OutputPort {
	t.Helper()
	b := NewBase("test")
	return b.SetupOutput(0, dt)
}

func TestInputPortFIFOConsume(t *testing.T) {
	dt := dtype.MustParse("int32")
	in := newTestInput(t, dt)

	in.Deliver(buffer.FromSlice(dt, []int32{1, 2, 3, 4}))
	assert.Equal(t, 4, in.Elements())

	in.Consume(1)
	assert.Equal(t, 3, in.Elements())
	assert.Equal(t, []int32{2, 3, 4}, buffer.View[int32](in.Buffer()))
	assert.Equal(t, uint64(1), in.TotalConsumed())
}

func TestInputPortOverConsumePanics(t *testing.T) {
	dt := dtype.MustParse("int8")
	in := newTestInput(t, dt)
	in.Deliver(buffer.FromSlice(dt, []int8{1, 2}))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.IsInternal(err))
		assert.True(t, errors.Is(err, errors.ErrOverConsume))
		assert.Equal(t, 2, in.Elements(), "failed consume leaves state unchanged")
	}()
	in.Consume(3)
}

func TestInputPortCoalescesPartialBuffers(t *testing.T) {
	dt := dtype.MustParse("int16")
	in := newTestInput(t, dt)

	in.Deliver(buffer.FromSlice(dt, []int16{1, 2}))
	in.Deliver(buffer.FromSlice(dt, []int16{3, 4, 5}))

	assert.Equal(t, 5, in.Elements())
	assert.Equal(t, []int16{1, 2, 3, 4, 5}, buffer.View[int16](in.Buffer()))
}

func TestInputPortZeroCopySingleDelivery(t *testing.T) {
	dt := dtype.MustParse("float64")
	in := newTestInput(t, dt)

	src := buffer.FromSlice(dt, []float64{1, 2, 3})
	in.Deliver(src)

	assert.True(t, buffer.SharesAllocation(src, in.Buffer()),
		"single delivery adopts the chunk without copying")
}

func TestInputPortTakeBufferThenConsume(t *testing.T) {
	dt := dtype.MustParse("int8")
	in := newTestInput(t, dt)
	in.Deliver(buffer.FromSlice(dt, []int8{1, 2, 3}))

	taken := in.TakeBuffer()
	assert.Equal(t, 3, taken.Elements())
	assert.Equal(t, 0, in.Buffer().Elements())

	// Bookkeeping still requires the consume after a take.
	assert.Equal(t, 3, in.Elements())
	in.Consume(3)
	assert.Equal(t, 0, in.Elements())
}

func TestInputPortUnconstrainedMeasuresBytes(t *testing.T) {
	in := newTestInput(t, dtype.DType{})
	in.Deliver(buffer.FromSlice(dtype.MustParse("int32"), []int32{1, 2}))

	assert.Equal(t, 8, in.Elements(), "unconstrained port counts bytes")
	assert.Equal(t, dtype.Int32, in.Buffer().DType().Kind(),
		"delivered buffer keeps its own dtype")

	in.Consume(8)
	assert.Equal(t, 0, in.Elements())
}

func TestInputPortReserveMasksWorkInfo(t *testing.T) {
	dt := dtype.MustParse("int8")
	b := NewBase("test")
	in := b.SetupInput(0, dt)
	b.SetupOutput(0, dt)

	in.Deliver(buffer.FromSlice(dt, []int8{1, 2, 3}))
	in.SetReserve(5)
	assert.Equal(t, 0, b.WorkInfo().MinElements, "below reserve reports zero")

	in.Deliver(buffer.FromSlice(dt, []int8{4, 5}))
	assert.Equal(t, 5, b.WorkInfo().MinElements)

	in.SetReserve(0)
	assert.Equal(t, 5, b.WorkInfo().MinElements)
}

func TestInputPortMessageFIFO(t *testing.T) {
	in := newTestInput(t, dtype.DType{})

	assert.False(t, in.HasMessage())
	in.DeliverMessage("first")
	in.DeliverMessage("second")

	require.True(t, in.HasMessage())
	assert.Equal(t, "first", in.PopMessage())
	assert.Equal(t, "second", in.PopMessage())
	assert.Nil(t, in.PopMessage())
}

func TestInputPortLabelsOrderedByIndex(t *testing.T) {
	in := newTestInput(t, dtype.DType{})
	in.DeliverLabel(Label{ID: "b", Index: 7})
	in.DeliverLabel(Label{ID: "a", Index: 2})
	in.DeliverLabel(Label{ID: "c", Index: 5})

	labels := in.TakeLabels()
	require.Len(t, labels, 3)
	assert.Equal(t, "a", labels[0].ID)
	assert.Equal(t, "c", labels[1].ID)
	assert.Equal(t, "b", labels[2].ID)
	assert.Empty(t, in.Labels())
}

func TestOutputPortProduce(t *testing.T) {
	dt := dtype.MustParse("int32")
	out := newTestOutput(t, dt)
	out.SetCapacity(8)

	view := buffer.View[int32](out.Buffer())
	copy(view, []int32{10, 20, 30})
	out.Produce(3)

	posted := out.TakePosted()
	require.Len(t, posted, 1)
	assert.Equal(t, []int32{10, 20, 30}, buffer.View[int32](posted[0]))
	assert.Equal(t, 5, out.Elements())
	assert.Equal(t, uint64(3), out.TotalProduced())
}

func TestOutputPortRefreshesWhenFull(t *testing.T) {
	dt := dtype.MustParse("int8")
	out := newTestOutput(t, dt)
	out.SetCapacity(4)

	copy(buffer.View[int8](out.Buffer()), []int8{1, 2, 3, 4})
	out.Produce(4)
	assert.Equal(t, 4, out.Elements(), "fresh buffer after the previous one filled")

	copy(buffer.View[int8](out.Buffer()), []int8{5})
	out.Produce(1)

	posted := out.TakePosted()
	require.Len(t, posted, 2)
	assert.Equal(t, []int8{1, 2, 3, 4}, buffer.View[int8](posted[0]))
	assert.Equal(t, []int8{5}, buffer.View[int8](posted[1]))
}

func TestOutputPortOverProducePanics(t *testing.T) {
	dt := dtype.MustParse("int8")
	out := newTestOutput(t, dt)
	out.SetCapacity(2)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, errors.ErrOverProduce))
	}()
	out.Produce(3)
}

func TestOutputPortPostBufferZeroCopy(t *testing.T) {
	dt := dtype.MustParse("float32")
	out := newTestOutput(t, dt)

	src := buffer.FromSlice(dt, []float32{1, 2, 3})
	out.PostBuffer(src)

	posted := out.TakePosted()
	require.Len(t, posted, 1)
	assert.True(t, buffer.SharesAllocation(src, posted[0]))
	assert.Equal(t, uint64(3), out.TotalProduced())
}

func TestOutputPortReserveMasksWorkInfo(t *testing.T) {
	dt := dtype.MustParse("int8")
	b := NewBase("test")
	in := b.SetupInput(0, dt)
	out := b.SetupOutput(0, dt)
	out.SetCapacity(4)

	in.Deliver(buffer.FromSlice(dt, []int8{1, 2, 3, 4, 5, 6}))

	out.SetReserve(5)
	assert.Equal(t, 0, b.WorkInfo().MinOutElements, "capacity below output reserve")

	out.SetReserve(4)
	assert.Equal(t, 4, b.WorkInfo().MinOutElements)
	assert.Equal(t, 4, b.WorkInfo().MinElements)
	assert.Equal(t, 6, b.WorkInfo().MinInElements)
}

func TestWorkInfoSourceAndSink(t *testing.T) {
	dt := dtype.MustParse("int8")

	src := NewBase("source")
	srcOut := src.SetupOutput(0, dt)
	srcOut.SetCapacity(16)
	assert.Equal(t, 16, src.WorkInfo().MinElements, "source bounded by capacity only")

	sink := NewBase("sink")
	sinkIn := sink.SetupInput(0, dt)
	sinkIn.Deliver(buffer.FromSlice(dt, []int8{1, 2, 3}))
	assert.Equal(t, 3, sink.WorkInfo().MinElements, "sink bounded by input only")
}

func TestLabelToAdjusted(t *testing.T) {
	l := Label{ID: "x", Index: 12, Width: 4}

	// Bytes of int32 stream into elements
	adjusted := l.ToAdjusted(1, 4)
	assert.Equal(t, 3, adjusted.Index)
	assert.Equal(t, 1, adjusted.Width)
}
