package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/errors"
)

func TestRecordWork(t *testing.T) {
	r := NewRegistry()
	m := r.CoreMetrics()

	m.RecordWork("clamp", 10, 10)
	m.RecordWork("clamp", 0, 0)
	m.RecordWork("clamp", 5, 5)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.WorkInvocations.WithLabelValues("clamp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkYields.WithLabelValues("clamp")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.ElementsConsumed.WithLabelValues("clamp")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.ElementsProduced.WithLabelValues("clamp")))
}

func TestRegisterCollector(t *testing.T) {
	r := NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "custom_block_total",
		Help: "test counter",
	})

	require.NoError(t, r.RegisterCollector("pacer", "custom", c))

	err := r.RegisterCollector("pacer", "custom", c)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	assert.True(t, r.Unregister("pacer", "custom"))
	assert.False(t, r.Unregister("pacer", "custom"))
}

func TestServerAddress(t *testing.T) {
	s := NewServer(0, "", NewRegistry())
	assert.Equal(t, "http://localhost:9090/metrics", s.Address())
}
