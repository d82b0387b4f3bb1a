package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.RecordDeposit(ResultSuccess)
	c.RecordDeposit(ResultSuccess)
	c.RecordDeposit(ResultInvalid)
	c.RecordNotification("mail", ResultSuccess)
	c.RecordNotification("database", ResultFailure)
	c.RecordMailJob(ResultDead)
	c.RecordOperationDuration("record_deposit", 20*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.deposits.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.deposits.WithLabelValues(ResultInvalid)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.notifications.WithLabelValues("database", ResultFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.mailJobs.WithLabelValues(ResultDead)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.durations))
}
