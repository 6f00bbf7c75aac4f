package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.PagesFetched.WithLabelValues("plant", "success").Inc()
	m.PagesFetched.WithLabelValues("plant", "success").Inc()
	m.QueueDepth.Set(4)

	require.Equal(t, 2.0, testutil.ToFloat64(m.PagesFetched.WithLabelValues("plant", "success")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.QueueDepth))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	// A second set on a fresh registry must not collide.
	require.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
