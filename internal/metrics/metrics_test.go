package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

func TestObserveCounters(t *testing.T) {
	before := testutil.ToFloat64(evaluationsTotal.WithLabelValues(string(domain.ReasonDivideByZero)))
	ObserveEvaluation(domain.Invalid(domain.ReasonDivideByZero))
	after := testutil.ToFloat64(evaluationsTotal.WithLabelValues(string(domain.ReasonDivideByZero)))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(generateTotal.WithLabelValues(ResultExhausted))
	ObserveGenerate(ResultExhausted, ports.Stats{Attempts: 10, Duration: time.Millisecond})
	assert.Equal(t, before+1, testutil.ToFloat64(generateTotal.WithLabelValues(ResultExhausted)))

	before = testutil.ToFloat64(checksTotal.WithLabelValues("true"))
	ObserveCheck(true)
	assert.Equal(t, before+1, testutil.ToFloat64(checksTotal.WithLabelValues("true")))

	before = testutil.ToFloat64(solvableTotal.WithLabelValues("false"))
	ObserveSolvable(false, ports.Stats{})
	assert.Equal(t, before+1, testutil.ToFloat64(solvableTotal.WithLabelValues("false")))
}
