package prometheussim

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// PrometheusMetricTest stores information about a metric to use for testing.
type PrometheusMetricTest struct {
	t         *testing.T
	metric    prometheus.Collector
	name      string
	initValue float64
}

// CheckDelta checks that the metric value changed exactly delta from when
// MetricTest was called.
func (o *PrometheusMetricTest) CheckDelta(delta float64, labelValues ...string) {
	o.t.Helper()

	got := o.value(labelValues...) - o.initValue
	if got != delta {
		o.t.Errorf("%s metric delta: wanted %v, got %v", o.name, delta, got)
	}
}

func (o *PrometheusMetricTest) value(labelValues ...string) float64 {
	o.t.Helper()

	switch m := o.metric.(type) {
	case prometheus.Counter:
		return testutil.ToFloat64(m)
	case prometheus.Gauge:
		return testutil.ToFloat64(m)
	case *prometheus.GaugeVec:
		gauge, err := m.GetMetricWithLabelValues(labelValues...)
		if err != nil {
			o.t.Fatalf("get %s metric err %v", o.name, err)
		}
		return testutil.ToFloat64(gauge)
	case *prometheus.CounterVec:
		counter, err := m.GetMetricWithLabelValues(labelValues...)
		if err != nil {
			o.t.Fatalf("get %s metric err %v", o.name, err)
		}
		return testutil.ToFloat64(counter)
	default:
		o.t.Fatalf("not supported type %T", m)
		return 0
	}
}

// MetricTest stores the current value of the metric along with the metric
// name to be used later for testing.
func MetricTest(t *testing.T, name string, metric prometheus.Collector, labelValues ...string) *PrometheusMetricTest {
	p := &PrometheusMetricTest{
		t:      t,
		metric: metric,
		name:   name,
	}
	p.initValue = p.value(labelValues...)
	return p
}
