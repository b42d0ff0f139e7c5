package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)
	metrics.ObserveDuration("otp-purge", 250*time.Millisecond)
	metrics.IncSuccess("otp-purge")
	metrics.IncFailure("otp-purge")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := counterValue(mfs, "job_success", "otp-purge"); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	if got, err := counterValue(mfs, "job_failure", "otp-purge"); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := histogramSum(mfs, "job_duration_seconds", "otp-purge"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	var metrics *CronJobMetrics
	metrics.ObserveDuration("otp-purge", time.Second)
	metrics.IncSuccess("otp-purge")
	metrics.IncFailure("otp-purge")

	noop := NewCronJobMetrics(nil)
	noop.ObserveDuration("otp-purge", time.Second)
	noop.IncSuccess("otp-purge")
	noop.IncFailure("otp-purge")
}

func counterValue(mfs []*dto.MetricFamily, name, job string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasJobLabel(metric.GetLabel(), job) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing job label %q", name, job)
}

func histogramSum(mfs []*dto.MetricFamily, name, job string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if hasJobLabel(metric.GetLabel(), job) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing job label %q", name, job)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func hasJobLabel(labels []*dto.LabelPair, job string) bool {
	for _, label := range labels {
		if label.GetName() == "job" && label.GetValue() == job {
			return true
		}
	}
	return false
}
