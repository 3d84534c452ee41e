package domain_test

import (
	"math"
	"testing"
	"time"

	"fittrack/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"same unit lb", 180.0, "lb", "lb", 180.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
		{"zero value", 0, "kg", "lb", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestWeightEntryPounds(t *testing.T) {
	kg := domain.WeightEntry{Value: 100, Unit: domain.UnitKg, CreatedAt: time.Now()}
	if got := kg.Pounds(); !almostEqual(got, 220.462, 0.001) {
		t.Errorf("Pounds() = %v; want ~220.462", got)
	}
	lb := domain.WeightEntry{Value: 180, Unit: domain.UnitLb}
	if got := lb.Pounds(); got != 180 {
		t.Errorf("Pounds() = %v; want 180", got)
	}
}

func TestValidUnit(t *testing.T) {
	if !domain.ValidUnit("kg") || !domain.ValidUnit("lb") {
		t.Error("kg and lb must be valid")
	}
	if domain.ValidUnit("stones") {
		t.Error("stones must not be valid")
	}
}
