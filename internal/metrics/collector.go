// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 事件指标
	eventsTotal     *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec

	// 视图发布指标
	viewsPublished  prometheus.Counter
	publishFailures prometheus.Counter

	// 状态存储指标
	stateHits       prometheus.Counter
	stateMisses     prometheus.Counter
	stateErrors     prometheus.Counter
	selectionsSaved prometheus.Counter

	logger *zap.Logger
}

// NewCollector 创建指标收集器并注册到给定 Registerer
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.eventsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of Slack events dispatched",
		},
		[]string{"event_type"},
	)

	c.handlerDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Event handler duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	c.viewsPublished = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "home_views_published_total",
			Help:      "Total number of home views published",
		},
	)

	c.publishFailures = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "home_view_publish_failures_total",
			Help:      "Total number of failed views.publish calls",
		},
	)

	c.stateHits = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_hits_total",
			Help:      "Total number of user state lookups with a saved selection",
		},
	)

	c.stateMisses = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_misses_total",
			Help:      "Total number of user state lookups without a saved selection",
		},
	)

	c.stateErrors = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_errors_total",
			Help:      "Total number of failed user state lookups",
		},
	)

	c.selectionsSaved = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_saved_total",
			Help:      "Total number of provider selections persisted",
		},
	)

	return c
}

// =============================================================================
// 🎯 记录方法
// =============================================================================

// EventReceived 记录一次事件分发
func (c *Collector) EventReceived(eventType string) {
	c.eventsTotal.WithLabelValues(eventType).Inc()
}

// ObserveHandler 记录处理器耗时
func (c *Collector) ObserveHandler(handler string, d time.Duration) {
	c.handlerDuration.WithLabelValues(handler).Observe(d.Seconds())
}

// ViewPublished 记录一次成功的视图发布
func (c *Collector) ViewPublished() {
	c.viewsPublished.Inc()
}

// PublishFailed 记录一次失败的视图发布
func (c *Collector) PublishFailed() {
	c.publishFailures.Inc()
}

// StateHit 记录一次命中已保存选择的状态查询
func (c *Collector) StateHit() {
	c.stateHits.Inc()
}

// StateMiss 记录一次无保存选择的状态查询
func (c *Collector) StateMiss() {
	c.stateMisses.Inc()
}

// StateError 记录一次失败的状态查询
func (c *Collector) StateError() {
	c.stateErrors.Inc()
}

// SelectionSaved 记录一次选择持久化
func (c *Collector) SelectionSaved() {
	c.selectionsSaved.Inc()
}
