package topology

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/blocks/stream"
	"github.com/c360/streamblocks/blocks/testers"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/metric"
)

func TestRunUntilIdlePipeline(t *testing.T) {
	dt := dtype.MustParse("float64")
	feeder := testers.NewFeeder(dt)
	clamp, err := stream.NewClamp(dt)
	require.NoError(t, err)
	require.NoError(t, clamp.SetMinAndMax(-1, 1))
	sink := testers.NewCollector(dt)

	tp := New()
	require.NoError(t, tp.Connect(feeder, 0, clamp, 0))
	require.NoError(t, tp.Connect(clamp, 0, sink, 0))

	feeder.FeedChunk(buffer.FromSlice(dt, []float64{-3, 0.5, 3}))
	feeder.FeedChunk(buffer.FromSlice(dt, []float64{2}))
	tp.RunUntilIdle()

	assert.Equal(t, []float64{-1, 0.5, 1, 1}, testers.Values[float64](sink))
}

func TestFirstNSkipFirstNSplit(t *testing.T) {
	dt := dtype.MustParse("int32")
	feeder := testers.NewFeeder(dt)
	first, err := stream.NewFirstN(dt, 3)
	require.NoError(t, err)
	skip, err := stream.NewSkipFirstN(dt, 3)
	require.NoError(t, err)
	headSink := testers.NewCollector(dt)
	tailSink := testers.NewCollector(dt)

	tp := New()
	require.NoError(t, tp.Connect(feeder, 0, first, 0))
	require.NoError(t, tp.Connect(feeder, 0, skip, 0))
	require.NoError(t, tp.Connect(first, 0, headSink, 0))
	require.NoError(t, tp.Connect(skip, 0, tailSink, 0))

	feeder.FeedChunk(buffer.FromSlice(dt, []int32{0, 1, 2, 3, 4}))
	feeder.FeedChunk(buffer.FromSlice(dt, []int32{5, 6}))
	tp.RunUntilIdle()

	assert.Equal(t, []int32{0, 1, 2}, testers.Values[int32](headSink))
	assert.Equal(t, []int32{3, 4, 5, 6}, testers.Values[int32](tailSink))
}

func TestConnectValidation(t *testing.T) {
	feeder := testers.NewFeeder(dtype.MustParse("int32"))
	sink := testers.NewCollector(dtype.MustParse("int16"))

	tp := New()
	err := tp.Connect(feeder, 1, sink, 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	err = tp.Connect(feeder, 0, sink, 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestMetricsRecorded(t *testing.T) {
	dt := dtype.MustParse("int16")
	reg := metric.NewRegistry()

	feeder := testers.NewFeeder(dt)
	sink := testers.NewCollector(dt)
	tp := New(WithMetrics(reg.CoreMetrics()))
	require.NoError(t, tp.Connect(feeder, 0, sink, 0))

	feeder.FeedChunk(buffer.FromSlice(dt, []int16{1, 2, 3}))
	tp.RunUntilIdle()

	assert.Equal(t, 3, sink.Elements())
}

func TestRunStopsOnCancel(t *testing.T) {
	dt := dtype.MustParse("float32")
	src, err := testers.NewConstant(dt, complex(1, 0))
	require.NoError(t, err)
	src.Outputs()[0].SetCapacity(256)
	pacer, err := stream.NewPacer(dt, 1e5, 1024)
	require.NoError(t, err)
	sink := testers.NewCollector(dt)

	tp := New()
	require.NoError(t, tp.Connect(src, 0, pacer, 0))
	require.NoError(t, tp.Connect(pacer, 0, sink, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, tp.Run(ctx))

	assert.Greater(t, sink.Elements(), 0)
}
