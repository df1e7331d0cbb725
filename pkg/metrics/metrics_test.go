package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	// 第二次调用不能重复注册（否则panic）
	assert.NotPanics(t, InitMetrics)

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, BooksCreatedTotal)
	assert.NotNil(t, RatingsUpsertedTotal)
	assert.NotNil(t, SearchDuration)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, ReviewConflictsTotal)
	IncCounter(ReviewConflictsTotal)
	IncCounter(ReviewConflictsTotal)

	assert.Equal(t, before+2, getCounterValue(t, ReviewConflictsTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	created := map[string]string{"result": ResultCreated}
	updated := map[string]string{"result": ResultUpdated}
	beforeCreated := getCounterVecValue(t, RatingsUpsertedTotal, created)
	beforeUpdated := getCounterVecValue(t, RatingsUpsertedTotal, updated)

	IncCounterVec(RatingsUpsertedTotal, created)
	IncCounterVec(RatingsUpsertedTotal, updated)
	IncCounterVec(RatingsUpsertedTotal, updated)

	assert.Equal(t, beforeCreated+1, getCounterVecValue(t, RatingsUpsertedTotal, created))
	assert.Equal(t, beforeUpdated+2, getCounterVecValue(t, RatingsUpsertedTotal, updated))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	assert.Equal(t, before+1, getGaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	before := getHistogramCount(t, SearchDuration)
	ObserveHistogram(SearchDuration, 0.003)
	ObserveHistogram(SearchDuration, 0.2)

	assert.Equal(t, before+2, getHistogramCount(t, SearchDuration))
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
