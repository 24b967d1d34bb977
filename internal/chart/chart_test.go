package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func trace(label string, n int) telemetry.Trace {
	samples := make([]telemetry.Sample, n)
	for i := range samples {
		samples[i] = telemetry.Sample{Distance: float64(i) * 25, Speed: 120 + float64(i%40)*4}
	}
	return telemetry.Trace{DriverNumber: label, Label: label, Samples: samples}
}

func TestRenderProducesPNG(t *testing.T) {
	out, err := NewRenderer().Render([]telemetry.Trace{trace("VER", 50), trace("NOR", 50), trace("LEC", 50)})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !bytes.HasPrefix(out, pngMagic) {
		t.Fatalf("expected PNG header, got % x", out[:min(len(out), 8)])
	}
}

func TestRenderSkipsEmptyTraces(t *testing.T) {
	out, err := NewRenderer().Render([]telemetry.Trace{{Label: "HAM"}, trace("RUS", 10)})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected image bytes")
	}
}

func TestRenderWithoutTraces(t *testing.T) {
	if _, err := NewRenderer().Render(nil); !errors.Is(err, ErrNoTraces) {
		t.Fatalf("expected ErrNoTraces, got %v", err)
	}
	if _, err := NewRenderer().Render([]telemetry.Trace{{Label: "HAM"}}); !errors.Is(err, ErrNoTraces) {
		t.Fatalf("expected ErrNoTraces for empty samples, got %v", err)
	}
}

func TestRenderZeroSizeFallsBackToDefaults(t *testing.T) {
	r := &Renderer{}
	out, err := r.Render([]telemetry.Trace{trace("PIA", 5)})
	if err != nil || !bytes.HasPrefix(out, pngMagic) {
		t.Fatalf("expected PNG with default size, err=%v", err)
	}
}
