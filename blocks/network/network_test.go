package network

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/natsclient"
)

func testClient(t *testing.T) *natsclient.Client {
	t.Helper()
	c, err := natsclient.NewClient("nats://localhost:4222")
	require.NoError(t, err)
	return c
}

func TestConstructorValidation(t *testing.T) {
	dt := dtype.MustParse("float32")
	c := testClient(t)

	_, err := NewPublisher(dt, nil, "subject")
	assert.Error(t, err)
	_, err = NewPublisher(dt, c, "")
	assert.Error(t, err)
	_, err = NewSubscriber(dt, nil, "subject")
	assert.Error(t, err)
	_, err = NewSubscriber(dt, c, "")
	assert.Error(t, err)
}

func TestPublisherRetriesWhenDisconnected(t *testing.T) {
	dt := dtype.MustParse("int16")
	pub, err := NewPublisher(dt, testClient(t), "stream.data")
	require.NoError(t, err)

	pub.Input(0).Deliver(buffer.FromSlice(dt, []int16{1, 2, 3}))
	pub.Work()

	// Publish fails without a connection; elements stay queued.
	assert.Equal(t, 3, pub.Input(0).Elements())
}

func TestSubscriberEmitsBacklog(t *testing.T) {
	dt := dtype.MustParse("float64")
	sub, err := NewSubscriber(dt, testClient(t), "stream.data")
	require.NoError(t, err)

	src := buffer.FromSlice(dt, []float64{1.5, -2.5})
	sub.backlog = append(sub.backlog, &nats.Msg{
		Subject: "stream.data",
		Header:  nats.Header{"Streamblocks-Dtype": []string{"float64"}},
		Data:    src.Bytes(),
	})
	sub.Work()

	posted := sub.Outputs()[0].TakePosted()
	require.Len(t, posted, 1)
	assert.Equal(t, []float64{1.5, -2.5}, buffer.View[float64](posted[0]))
	posted[0].Release()
}

func TestSubscriberConvertsPayload(t *testing.T) {
	sub, err := NewSubscriber(dtype.MustParse("float32"), testClient(t), "stream.data")
	require.NoError(t, err)

	src := buffer.FromSlice(dtype.MustParse("int16"), []int16{4, -5})
	sub.backlog = append(sub.backlog, &nats.Msg{
		Subject: "stream.data",
		Header:  nats.Header{"Streamblocks-Dtype": []string{"int16"}},
		Data:    src.Bytes(),
	})
	sub.Work()

	posted := sub.Outputs()[0].TakePosted()
	require.Len(t, posted, 1)
	assert.Equal(t, []float32{4, -5}, buffer.View[float32](posted[0]))
	posted[0].Release()
}

func TestSubscriberDropsUnknownDType(t *testing.T) {
	sub, err := NewSubscriber(dtype.MustParse("float32"), testClient(t), "stream.data")
	require.NoError(t, err)

	sub.backlog = append(sub.backlog, &nats.Msg{
		Subject: "stream.data",
		Header:  nats.Header{"Streamblocks-Dtype": []string{"float128"}},
		Data:    []byte{1, 2, 3, 4},
	})
	sub.Work()
	assert.Empty(t, sub.Outputs()[0].TakePosted())
}
