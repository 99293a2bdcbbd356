package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultMetrics_Singleton(t *testing.T) {
	assert.Same(t, GetDefaultMetrics(), GetDefaultMetrics())
}

func TestRecordCheck(t *testing.T) {
	m := GetDefaultMetrics()
	found := testutil.ToFloat64(m.VisibilityChecks.WithLabelValues("found"))
	empty := testutil.ToFloat64(m.VisibilityChecks.WithLabelValues("empty"))

	m.RecordCheck(true)
	m.RecordCheck(false)
	m.RecordCheck(false)

	assert.Equal(t, found+1, testutil.ToFloat64(m.VisibilityChecks.WithLabelValues("found")))
	assert.Equal(t, empty+2, testutil.ToFloat64(m.VisibilityChecks.WithLabelValues("empty")))
}

func TestRecordCacheLookup(t *testing.T) {
	m := GetDefaultMetrics()
	hits := testutil.ToFloat64(m.AncestorCacheHits.WithLabelValues("hit"))

	m.RecordCacheLookup(true)

	assert.Equal(t, hits+1, testutil.ToFloat64(m.AncestorCacheHits.WithLabelValues("hit")))
}
