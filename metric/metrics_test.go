package metric

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gieseladev/wampio/errors"
	"github.com/gieseladev/wampio/message"
)

func TestMetricsCountTranslations(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m, err := New(promReg)
	require.NoError(t, err)

	reg := errors.NewRegistry(errors.WithMetrics(m))
	require.NoError(t, reg.RegisterErrorResponse("com.example.known", func(*message.Error) error {
		return stderrors.New("known failure")
	}))

	reg.ErrorToException(&message.Error{URI: "com.example.known"})
	reg.ErrorToException(&message.Error{URI: "com.example.unknown"})
	reg.ErrorToException(&message.Error{URI: "com.example.unknown"})

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.inboundTranslations.WithLabelValues(errors.OutcomeRegistered)))
	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.inboundTranslations.WithLabelValues(errors.OutcomeFallback)))
}

func TestMetricsCountOutboundBranches(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m, err := New(promReg)
	require.NoError(t, err)

	reg := errors.NewRegistry(errors.WithMetrics(m))

	ie := errors.NewInvocationError("com.example.oops")
	reg.ExceptionToInvocationError(ie)

	attached := stderrors.New("attached target")
	reg.SetInvocationError(attached, ie)
	reg.ExceptionToInvocationError(attached)

	reg.ExceptionToInvocationError(stderrors.New("unregistered"))

	for branch, want := range map[string]float64{
		errors.OutcomeIdentity: 1,
		errors.OutcomeAttached: 1,
		errors.OutcomeFallback: 1,
	} {
		assert.Equal(t, want,
			testutil.ToFloat64(m.outboundConversions.WithLabelValues(branch)),
			"branch %s", branch)
	}
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	promReg := prometheus.NewRegistry()

	_, err := New(promReg)
	require.NoError(t, err)

	_, err = New(promReg)
	assert.Error(t, err)
}
