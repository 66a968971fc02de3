package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	BooksGenerated.WithLabelValues("fallback").Inc()
	require.GreaterOrEqual(t, testutil.ToFloat64(BooksGenerated.WithLabelValues("fallback")), 1.0)

	// a second registration on the same registry must fail loudly
	require.Panics(t, func() { RegisterCollectors(reg) })
}
