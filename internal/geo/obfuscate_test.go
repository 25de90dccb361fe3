package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"
)

func testObfuscator() *Obfuscator {
	return NewObfuscator(slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultObfuscationRadiusM)
}

func TestObfuscate_NeverExceedsRadius(t *testing.T) {
	o := testObfuscator()
	exact := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	for i := 0; i < 5000; i++ {
		got, err := o.Obfuscate(exact, 50)
		if err != nil {
			t.Fatalf("Obfuscate: %v", err)
		}
		// Small tolerance for the flat-earth offset vs haversine readback.
		if d := DistanceMeters(exact, got); d > 50+0.05 {
			t.Fatalf("draw %d at %vm, beyond the 50m radius", i, d)
		}
	}
}

func TestObfuscate_UniformOverDisk(t *testing.T) {
	o := testObfuscator()
	exact := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	// Under uniform disk sampling the squared distance is uniform on
	// [0, R^2], so equal-width buckets of d^2 should fill evenly.
	const (
		n       = 20000
		buckets = 10
		radius  = 50.0
	)
	var counts [buckets]int
	for i := 0; i < n; i++ {
		got, err := o.Obfuscate(exact, radius)
		if err != nil {
			t.Fatalf("Obfuscate: %v", err)
		}
		d := DistanceMeters(exact, got)
		idx := int(d * d / (radius * radius) * buckets)
		if idx >= buckets {
			idx = buckets - 1
		}
		counts[idx]++
	}

	expected := float64(n) / buckets
	for i, c := range counts {
		if math.Abs(float64(c)-expected) > expected*0.15 {
			t.Fatalf("bucket %d has %d draws, expected about %.0f; distribution not uniform", i, c, expected)
		}
	}
}

func TestObfuscate_DistinctDraws(t *testing.T) {
	o := testObfuscator()
	exact := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	a, err := o.Obfuscate(exact, 50)
	if err != nil {
		t.Fatalf("Obfuscate: %v", err)
	}
	b, err := o.Obfuscate(exact, 50)
	if err != nil {
		t.Fatalf("Obfuscate: %v", err)
	}
	if a == b {
		t.Fatalf("two draws returned the identical coordinate")
	}
}

func TestObfuscate_ZeroRadiusUsesDefault(t *testing.T) {
	o := testObfuscator()
	exact := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	for i := 0; i < 200; i++ {
		got, err := o.Obfuscate(exact, 0)
		if err != nil {
			t.Fatalf("Obfuscate: %v", err)
		}
		if d := DistanceMeters(exact, got); d > DefaultObfuscationRadiusM+0.05 {
			t.Fatalf("draw at %vm exceeds default radius", d)
		}
	}
}

// warnCounter counts Warn-level records.
type warnCounter struct {
	count int
}

func (w *warnCounter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn
}

func (w *warnCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		w.count++
	}
	return nil
}

func (w *warnCounter) WithAttrs(_ []slog.Attr) slog.Handler { return w }
func (w *warnCounter) WithGroup(_ string) slog.Handler      { return w }

func TestObfuscate_DegradesToFallbackAndLogs(t *testing.T) {
	counter := &warnCounter{}
	o := NewObfuscator(slog.New(counter), 50)
	o.primary = func([]byte) (int, error) { return 0, errors.New("entropy pool closed") }

	exact := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}
	got, err := o.Obfuscate(exact, 50)
	if err != nil {
		t.Fatalf("fallback draw should succeed: %v", err)
	}
	if d := DistanceMeters(exact, got); d > 50+0.05 {
		t.Fatalf("fallback draw at %vm exceeds radius", d)
	}
	if counter.count == 0 {
		t.Fatalf("degraded draw must be logged")
	}
}

func TestObfuscate_FailsClosedWithoutEntropy(t *testing.T) {
	o := testObfuscator()
	o.primary = func([]byte) (int, error) { return 0, errors.New("entropy pool closed") }
	o.fallback = nil

	_, err := o.Obfuscate(domain.Coordinate{Lat: 53.3811, Lng: -1.4701}, 50)
	if !errors.Is(err, e.ErrEntropyUnavailable) {
		t.Fatalf("expected ErrEntropyUnavailable, got: %v", err)
	}
}
