package util

import (
	"testing"
	"time"
)

func TestFridayAnchor(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// Monday through Friday map onto the same week's Friday.
		{time.Date(2024, 10, 7, 15, 30, 0, 0, time.UTC), time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC), time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 10, 11, 23, 59, 0, 0, time.UTC), time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)},
		// Saturday and Sunday roll into the next week.
		{time.Date(2024, 10, 12, 1, 0, 0, 0, time.UTC), time.Date(2024, 10, 18, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 10, 13, 1, 0, 0, 0, time.UTC), time.Date(2024, 10, 18, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := FridayAnchor(c.in)
		if !got.Equal(c.want) {
			t.Fatalf("FridayAnchor(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFloorDay(t *testing.T) {
	in := time.Date(2024, 10, 10, 18, 45, 12, 99, time.UTC)
	got := FloorDay(in)
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("FloorDay(%v) = %v, want %v", in, got, want)
	}
}
