package geo

import (
	"math"
	"testing"

	"petree/internal/types"
)

func TestHaversineKm(t *testing.T) {
	cases := []struct {
		name   string
		a, b   types.Point
		wantKm float64
		tolKm  float64
	}{
		{
			name:   "same point",
			a:      types.Point{Lat: 13.7563, Lng: 100.5018},
			b:      types.Point{Lat: 13.7563, Lng: 100.5018},
			wantKm: 0,
			tolKm:  0.001,
		},
		{
			name:   "Bangkok to Chiang Mai",
			a:      types.Point{Lat: 13.7563, Lng: 100.5018},
			b:      types.Point{Lat: 18.7883, Lng: 98.9853},
			wantKm: 584,
			tolKm:  10,
		},
		{
			name:   "Bangkok to Pattaya",
			a:      types.Point{Lat: 13.7563, Lng: 100.5018},
			b:      types.Point{Lat: 12.9236, Lng: 100.8825},
			wantKm: 101,
			tolKm:  5,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.a, tc.b)
			if math.Abs(got-tc.wantKm) > tc.tolKm {
				t.Errorf("HaversineKm() = %.1f, want %.1f +/- %.1f", got, tc.wantKm, tc.tolKm)
			}
		})
	}
}

func TestSortByDistance(t *testing.T) {
	type item struct {
		id   string
		dist float64
	}
	items := []item{{"c", 3.0}, {"a", 1.0}, {"d", 9.5}, {"b", 2.2}}
	SortByDistance(items, func(i item) float64 { return i.dist })

	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if items[i].id != w {
			t.Fatalf("position %d = %s, want %s", i, items[i].id, w)
		}
	}
}
