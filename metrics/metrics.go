// Package metrics is the optional metrics sink capability referenced in
// the design notes for this system: an explicit, injectable dependency
// rather than a package-level global. A nil *Sink is valid everywhere a
// *Sink is accepted and simply records nothing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Sink collects counters and histograms for the identity pipeline. The
// zero value is not usable; construct one with NewSink.
type Sink struct {
	enrollTotal    *prometheus.CounterVec
	verifyTotal    *prometheus.CounterVec
	bchErrorsFixed prometheus.Histogram
}

// NewSink registers the sink's metrics on reg and returns it. Pass
// prometheus.NewRegistry() (or prometheus.DefaultRegisterer wrapped in a
// registry) to keep metrics isolated per test or per process.
func NewSink(reg prometheus.Registerer) (*Sink, error) {
	s := &Sink{
		enrollTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biometric_enroll_total",
			Help: "Total enrollment attempts by outcome.",
		}, []string{"outcome"}),
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biometric_verify_total",
			Help: "Total verification attempts by outcome.",
		}, []string{"outcome"}),
		bchErrorsFixed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biometric_bch_errors_corrected",
			Help:    "Number of bit errors corrected per successful verification.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
	}
	for _, c := range []prometheus.Collector{s.enrollTotal, s.verifyTotal, s.bchErrorsFixed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ObserveEnroll records an enrollment attempt with the given outcome
// label (e.g. "success", "invalid_input").
func (s *Sink) ObserveEnroll(outcome string) {
	if s == nil {
		return
	}
	s.enrollTotal.WithLabelValues(outcome).Inc()
}

// ObserveVerify records a verification attempt with the given outcome
// label.
func (s *Sink) ObserveVerify(outcome string) {
	if s == nil {
		return
	}
	s.verifyTotal.WithLabelValues(outcome).Inc()
}

// ObserveBchCorrection records the number of bit errors corrected during
// a successful Rep call.
func (s *Sink) ObserveBchCorrection(errorsCorrected int) {
	if s == nil {
		return
	}
	s.bchErrorsFixed.Observe(float64(errorsCorrected))
}
