package wmediumd

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	type testcase struct {
		name   string
		length int
		rate   int
		expect time.Duration
	}

	var testcases = []testcase{{
		name:   "ack frame at lowest rate",
		length: 14,
		rate:   60,
		expect: duration(14, 60),
	}, {
		name:   "zero length frame still has preamble overhead",
		length: 0,
		rate:   60,
		expect: 24 * time.Microsecond,
	}}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got := duration(tc.length, tc.rate)
			if got != tc.expect {
				t.Fatalf("expected %s, got %s", tc.expect, got)
			}
			if got < 20*time.Microsecond {
				t.Fatal("duration must include at least the preamble overhead")
			}
		})
	}
}

func TestDurationMonotonicInLength(t *testing.T) {
	prev := duration(0, 60)
	for length := 1; length <= 1500; length += 37 {
		cur := duration(length, 60)
		if cur < prev {
			t.Fatalf("duration decreased at length=%d: %s < %s", length, cur, prev)
		}
		prev = cur
	}
}

func TestAckTime(t *testing.T) {
	got := ackTime(60)
	want := duration(ackFrameLen, 60) + SIFS
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCeilDiv(t *testing.T) {
	type testcase struct {
		a, b, expect int
	}
	var testcases = []testcase{
		{10, 5, 2},
		{11, 5, 3},
		{1, 1, 1},
		{0, 5, 0},
	}
	for _, tc := range testcases {
		if got := ceilDiv(tc.a, tc.b); got != tc.expect {
			t.Fatalf("ceilDiv(%d,%d): expected %d, got %d", tc.a, tc.b, tc.expect, got)
		}
	}
}
