package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector("sailor", prometheus.NewRegistry(), zap.NewNop())
}

func TestCollector_Counters(t *testing.T) {
	c := newTestCollector(t)

	c.EventReceived("app_home_opened")
	c.EventReceived("app_home_opened")
	c.EventReceived("block_actions")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.eventsTotal.WithLabelValues("app_home_opened")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.eventsTotal.WithLabelValues("block_actions")))

	c.ViewPublished()
	c.PublishFailed()
	c.StateHit()
	c.StateMiss()
	c.StateError()
	c.SelectionSaved()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.viewsPublished))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.publishFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stateHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stateMisses))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stateErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.selectionsSaved))
}

func TestCollector_ObserveHandler(t *testing.T) {
	c := newTestCollector(t)

	// 直方图观察不会 panic 且可重复调用
	c.ObserveHandler("app_home_opened", 15*time.Millisecond)
	c.ObserveHandler("app_home_opened", 40*time.Millisecond)

	count := testutil.CollectAndCount(c.handlerDuration)
	assert.Equal(t, 1, count)
}
