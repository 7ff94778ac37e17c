package geo

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestHaversine_Identity(t *testing.T) {
	if d := Haversine(10.7769, 106.7009, 10.7769, 106.7009); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	ab := Haversine(10.7769, 106.7009, 21.0285, 105.8542)
	ba := Haversine(21.0285, 105.8542, 10.7769, 106.7009)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// 0.1 độ kinh tuyến tại vĩ độ 10 ~ 10.96 km
	d := Haversine(10.0, 106.0, 10.0, 106.1)
	if d < 10.5 || d > 11.5 {
		t.Errorf("0.1 deg lon at lat 10 = %v km, want ~10.96", d)
	}
}

func TestDistanceKm_NilInputs(t *testing.T) {
	lat, lon := ptr(10.0), ptr(106.0)
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 *float64
	}{
		{"All_Nil", nil, nil, nil, nil},
		{"Missing_User_Lat", nil, lon, lat, lon},
		{"Missing_Restaurant_Lon", lat, lon, lat, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if d := DistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2); d != nil {
				t.Errorf("expected nil distance, got %v", *d)
			}
		})
	}
}

func TestDistanceKm_Present(t *testing.T) {
	d := DistanceKm(ptr(10.0), ptr(106.0), ptr(10.0), ptr(106.1))
	if d == nil {
		t.Fatal("expected distance, got nil")
	}
	if *d < 10.5 || *d > 11.5 {
		t.Errorf("distance = %v, want ~10.96", *d)
	}
}
