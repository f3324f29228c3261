// Package metrics records the outcome of a run in Prometheus form, so that scheduled runs
// can be picked up by a node_exporter textfile collector.
package metrics

import (
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weather_api_tests"

// Recorder is a framework.Reporter that only counts things. It uses its own registry rather
// than the global one, so several runs in one process do not share state.
type Recorder struct {
	registry *prometheus.Registry

	steps        *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	passed       prometheus.Gauge
	failed       prometheus.Gauge
	skipped      prometheus.Gauge
	aborted      prometheus.Gauge
	interrupted  prometheus.Gauge
	lastRun      prometheus.Gauge
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Steps finished, by step name and outcome",
		}, []string{"step", "status"}),
		stepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Time taken by each step",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"step"}),
		passed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_passed",
			Help:      "Steps that passed in the last run",
		}),
		failed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_failed",
			Help:      "Steps that failed in the last run",
		}),
		skipped: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_skipped",
			Help:      "Steps that were skipped in the last run",
		}),
		aborted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_aborted",
			Help:      "1 if the last run stopped after a critical failure",
		}),
		interrupted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_interrupted",
			Help:      "1 if the last run was interrupted",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "When the last run finished",
		}),
	}
}

// Registry exposes the recorder's metrics, e.g. for tests or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format. The file is
// replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func (r *Recorder) RunStarted(framework.RunInfo)                            {}
func (r *Recorder) StepStarted(framework.StepID)                            {}
func (r *Recorder) Message(framework.StepID, framework.MessageKind, string) {}

func (r *Recorder) StepSkipped(id framework.StepID, _ string) {
	r.steps.WithLabelValues(id.Name, string(framework.StepSkipped)).Inc()
}

func (r *Recorder) StepFinished(result framework.StepResult, _ logging.CapturedOutput) {
	r.steps.WithLabelValues(result.ID.Name, string(result.Status)).Inc()
	r.stepDuration.WithLabelValues(result.ID.Name).Observe(result.Duration.Seconds())
}

func (r *Recorder) RunFinished(results framework.Results) {
	r.passed.Set(float64(results.Passed))
	r.failed.Set(float64(results.Failed))
	r.skipped.Set(float64(results.Skipped))
	r.aborted.Set(boolValue(results.Aborted))
	r.interrupted.Set(boolValue(results.Interrupted))
	r.lastRun.Set(float64(results.FinishedAt.Unix()))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
