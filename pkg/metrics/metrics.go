package metrics

import (
	"net/http"
	"sync"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kibble"

// Recorder turns journal events into Prometheus metrics.
type Recorder struct {
	registry *prometheus.Registry

	boundaries      prometheus.Counter
	tags            *prometheus.CounterVec
	dispenses       prometheus.Counter
	dispenseSeconds prometheus.Histogram
	intervalChanges *prometheus.CounterVec
	errors          prometheus.Counter
	intervalMinutes prometheus.Gauge
	fed             prometheus.Gauge
	up              prometheus.Gauge

	// trackMu orders gauge updates from concurrent state callbacks.
	trackMu sync.Mutex
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		boundaries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_boundaries_total",
			Help:      "Interval boundaries observed by the clock monitor.",
		}),
		tags: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tags_total",
			Help:      "Tags read by decision.",
		}, []string{"decision"}),
		dispenses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispenses_total",
			Help:      "Completed dispense profiles.",
		}),
		dispenseSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispense_duration_seconds",
			Help:      "Dispense profile duration in seconds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40},
		}),
		intervalChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interval_changes_total",
			Help:      "Interval button presses by button and result.",
		}, []string{"button", "result"}),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors recorded in the journal.",
		}),
		intervalMinutes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interval_minutes",
			Help:      "Current feeding interval in minutes.",
		}),
		fed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "already_fed",
			Help:      "1 if the current window has been used, 0 otherwise.",
		}),
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "controller_up",
			Help:      "1 while the feeder controller is running.",
		}),
	}
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Log implements journal.Logger.
func (r *Recorder) Log(event journal.Event) {
	switch event.Category {
	case journal.CategoryWindow:
		r.boundaries.Inc()
	case journal.CategoryTag:
		if event.Tag != nil {
			r.tags.WithLabelValues(event.Tag.Decision.String()).Inc()
		}
	case journal.CategoryDispense:
		r.dispenses.Inc()
		if event.Dispense != nil {
			r.dispenseSeconds.Observe(event.Dispense.Duration.Seconds())
		}
	case journal.CategoryInterval:
		if event.Interval != nil {
			result := "applied"
			if event.Interval.Rejected {
				result = "rejected"
			}
			r.intervalChanges.WithLabelValues(event.Interval.Button.String(), result).Inc()
		}
	case journal.CategoryLifecycle:
		if event.Lifecycle != nil {
			switch event.Lifecycle.State {
			case "started":
				r.up.Set(1)
			case "stopped":
				r.up.Set(0)
			}
		}
	case journal.CategoryError:
		r.errors.Inc()
	}
}

// ObserveState updates the window gauges from snap.
func (r *Recorder) ObserveState(snap window.Snapshot) {
	r.intervalMinutes.Set(float64(snap.IntervalMinutes))
	if snap.AlreadyFed {
		r.fed.Set(1)
	} else {
		r.fed.Set(0)
	}
}

// Track keeps the window gauges in step with state. It installs the state's
// change callback, replacing any previous one.
//
// Callbacks run after the state is unlocked and may arrive out of order, so
// each one re-reads the state under trackMu instead of trusting its
// argument. The last callback to run always publishes the latest state.
func (r *Recorder) Track(state *window.State) {
	publish := func() {
		r.trackMu.Lock()
		defer r.trackMu.Unlock()
		r.ObserveState(state.Snapshot())
	}
	publish()
	state.OnChange(func(_, _ window.Snapshot) { publish() })
}

var _ journal.Logger = (*Recorder)(nil)
