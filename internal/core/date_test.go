package core

import "testing"

func TestDateAddMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		in   Date
		n    int
		want Date
	}{
		{NewDate(2025, 1, 31), 1, NewDate(2025, 2, 28)},
		{NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)}, // leap year
		{NewDate(2025, 1, 15), 1, NewDate(2025, 2, 15)},
		{NewDate(2025, 12, 31), 1, NewDate(2026, 1, 31)},
		{NewDate(2025, 3, 31), 1, NewDate(2025, 4, 30)},
		{NewDate(2025, 5, 10), 3, NewDate(2025, 8, 10)},
	}
	for i, tc := range cases {
		if got := tc.in.AddMonths(tc.n); !got.Equal(tc.want) {
			t.Fatalf("case %d: %s + %d months = %s, want %s", i, tc.in, tc.n, got, tc.want)
		}
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: 6}
	if !m.Contains(NewDate(2025, 6, 1)) {
		t.Fatal("first of month should be contained")
	}
	if !m.Contains(NewDate(2025, 6, 30)) {
		t.Fatal("last of month should be contained")
	}
	if m.Contains(NewDate(2025, 7, 1)) {
		t.Fatal("next month should not be contained")
	}
}

func TestMonthNext(t *testing.T) {
	if got := (Month{Year: 2025, Month: 12}).Next(); got != (Month{Year: 2026, Month: 1}) {
		t.Fatalf("december rollover: got %s", got)
	}
	if got := (Month{Year: 2025, Month: 4}).Next(); got != (Month{Year: 2025, Month: 5}) {
		t.Fatalf("got %s", got)
	}
}
