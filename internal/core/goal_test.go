package core

import "testing"

func TestGoalContribute(t *testing.T) {
	g := NewGoal("emergency fund", CategoryOther, CentsOf(1000_00), NewDate(2026, 1, 1), testOwner)

	g.Contribute(CentsOf(400_00))
	if g.Current.Cents != 400_00 {
		t.Fatalf("current: got %d", g.Current.Cents)
	}
	if g.Reached {
		t.Fatal("goal not reached yet")
	}
	if got := g.Progress(); got != 40.0 {
		t.Fatalf("progress: got %.1f", got)
	}

	g.Contribute(CentsOf(700_00))
	if !g.Reached {
		t.Fatal("goal must be reached at 110%")
	}
	if got := g.Progress(); got != 100.0 {
		t.Fatalf("progress must cap at 100: got %.1f", got)
	}
	if got := g.Remaining().Cents; got != 0 {
		t.Fatalf("remaining must floor at zero: got %d", got)
	}
}

func TestGoalNegativeContributionIgnored(t *testing.T) {
	// Negative contributions are a silent no-op, not an error.
	g := NewGoal("x", CategoryOther, CentsOf(100_00), NewDate(2026, 1, 1), testOwner)
	g.Contribute(CentsOf(50_00))
	g.Contribute(CentsOf(-30_00))
	if g.Current.Cents != 50_00 {
		t.Fatalf("negative contribution must not change state: got %d", g.Current.Cents)
	}
}

func TestGoalReachedLatches(t *testing.T) {
	g := NewGoal("x", CategoryOther, CentsOf(100_00), NewDate(2026, 1, 1), testOwner)
	g.Contribute(CentsOf(100_00))
	if !g.Reached {
		t.Fatal("goal must be reached")
	}
	// Reached stays true even though no operation shrinks Current today;
	// the latch is the documented contract.
	g.Contribute(CentsOf(1))
	if !g.Reached {
		t.Fatal("reached must stay latched")
	}
}

func TestGoalLate(t *testing.T) {
	g := NewGoal("x", CategoryOther, CentsOf(100_00), NewDate(2025, 6, 1), testOwner)
	if g.Late(NewDate(2025, 5, 31)) {
		t.Fatal("not late before the deadline")
	}
	if !g.Late(NewDate(2025, 6, 2)) {
		t.Fatal("late after the deadline")
	}
	g.Contribute(CentsOf(100_00))
	if g.Late(NewDate(2025, 6, 2)) {
		t.Fatal("a reached goal is never late")
	}
}

func TestGoalDailySavingsNeeded(t *testing.T) {
	g := NewGoal("x", CategoryOther, CentsOf(100_00), NewDate(2025, 6, 11), testOwner)
	today := NewDate(2025, 6, 1)
	if got := g.DaysLeft(today); got != 10 {
		t.Fatalf("days left: got %d", got)
	}
	if got := g.DailySavingsNeeded(today).Cents; got != 10_00 {
		t.Fatalf("daily savings: got %d", got)
	}
	if got := g.DailySavingsNeeded(NewDate(2025, 7, 1)).Cents; got != 0 {
		t.Fatalf("past deadline must need zero: got %d", got)
	}
}
