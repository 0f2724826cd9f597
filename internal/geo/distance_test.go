package geo

import (
	"math"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expectedM              float64
		toleranceM             float64
	}{
		{"same point", 43.9, 1.9, 43.9, 1.9, 0, 0.001},
		{"paris to lyon", 48.8566, 2.3522, 45.7640, 4.8357, 392000, 5000},
		{"one degree latitude", 43.0, 1.9, 44.0, 1.9, 111195, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expectedM) > tt.toleranceM {
				t.Errorf("HaversineMeters = %.0f m, want %.0f m (±%.0f)", got, tt.expectedM, tt.toleranceM)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	d1 := HaversineMeters(43.9014, 1.8986, 43.9100, 1.9100)
	d2 := HaversineMeters(43.9100, 1.9100, 43.9014, 1.8986)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestBucketKey(t *testing.T) {
	// Points differing only beyond the 4th decimal share a bucket.
	if BucketKey(43.90141, 1.89863) != BucketKey(43.901412, 1.898633) {
		t.Error("sub-precision jitter should share a bucket")
	}
	// Points differing at the 4th decimal do not.
	if BucketKey(43.9014, 1.8986) == BucketKey(43.9015, 1.8986) {
		t.Error("distinct cells should not share a bucket")
	}
	if got, want := BucketKey(43.9014, 1.8986), "43.9014,1.8986"; got != want {
		t.Errorf("BucketKey = %q, want %q", got, want)
	}
}
