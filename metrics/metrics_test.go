package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNilSinkIsNoOp(t *testing.T) {
	var s *Sink
	s.ObserveEnroll("success")
	s.ObserveVerify("success")
	s.ObserveBchCorrection(3)
}

func TestSinkRecordsObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewSink(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	s.ObserveEnroll("success")
	s.ObserveVerify("invalid_input")
	s.ObserveBchCorrection(4)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("expected registered metric families")
	}
}
