package shop

import (
	"testing"
	"time"
)

func Test_RandomTimingBounds(t *testing.T) {
	timing := NewRandomTiming(42, 10*time.Millisecond, 3*time.Millisecond)

	for i := 0; i < 1000; i++ {
		if d := timing.ArrivalDelay(i); d < minimumDelay || d >= 10*time.Millisecond {
			t.Fatal("Arrival delay out of range:", d)
		}
		if d := timing.ServiceTime(i); d < minimumDelay || d >= 3*time.Millisecond {
			t.Fatal("Service time out of range:", d)
		}
	}
}

func Test_RandomTimingIsSeeded(t *testing.T) {
	a := NewRandomTiming(7, time.Second, time.Second)
	b := NewRandomTiming(7, time.Second, time.Second)

	for i := 0; i < 10; i++ {
		if a.ArrivalDelay(i) != b.ArrivalDelay(i) {
			t.Fatal("Same seed produced different sequences")
		}
	}
}

func Test_RandomTimingTinyMaximum(t *testing.T) {
	timing := NewRandomTiming(1, 0, time.Microsecond)
	if d := timing.ArrivalDelay(0); d != minimumDelay {
		t.Fatal("Expected the minimum delay, got", d)
	}
	if d := timing.ServiceTime(0); d != minimumDelay {
		t.Fatal("Expected the minimum delay, got", d)
	}
}

func Test_FixedTimingDefaultsToZero(t *testing.T) {
	timing := &FixedTiming{Arrivals: map[int]time.Duration{1: time.Second}}
	if timing.ArrivalDelay(1) != time.Second || timing.ArrivalDelay(2) != 0 || timing.ServiceTime(1) != 0 {
		t.Fatal("Unexpected fixed timing values")
	}
}
