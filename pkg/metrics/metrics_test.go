package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPoolMetrics(reg)
	require.NoError(t, err)

	m.SetOccupancy(3, 2)
	m.ObserveAcquire(time.Now())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Available))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Leased))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Acquired))

	_, err = NewPoolMetrics(reg)
	assert.Error(t, err, "duplicate registration must fail")
}

func TestTableMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewTableMetrics(reg)
	require.NoError(t, err)

	m.Observe("classes", "import", 4, time.Now(), nil)
	m.Observe("classes", "import", 0, time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("classes", "import", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("classes", "import", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Rows.WithLabelValues("classes", "import")))
}

func TestNilRegistry(t *testing.T) {
	m, err := NewPoolMetrics(nil)
	require.NoError(t, err)
	m.SetOccupancy(1, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Available))
}
