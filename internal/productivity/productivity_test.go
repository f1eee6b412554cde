package productivity

import (
	"errors"
	"slices"
	"testing"

	"github.com/focusboard/internal/calendar"
)

func TestCompleteAndUncompleteTask(t *testing.T) {
	day := calendar.Day("2024-03-01")

	rec := New().CompleteTask(day).CompleteTask(day)
	if rec.CountOn(day) != 2 {
		t.Fatalf("expected daily count 2, got %d", rec.CountOn(day))
	}
	if rec.TasksCompleted != 2 {
		t.Fatalf("expected tasks completed 2, got %d", rec.TasksCompleted)
	}
	if !slices.Equal(rec.CompletedDays, []string{"2024-03-01"}) {
		t.Fatalf("expected completed days [2024-03-01], got %v", rec.CompletedDays)
	}

	rec = rec.UncompleteTask(day)
	if rec.CountOn(day) != 1 || rec.TasksCompleted != 1 {
		t.Fatalf("expected 1/1 after uncomplete, got %d/%d", rec.CountOn(day), rec.TasksCompleted)
	}
}

func TestUncompletePrunesZeroCounts(t *testing.T) {
	day := calendar.Day("2024-03-02")

	rec := New().CompleteTask(day).UncompleteTask(day)
	if _, ok := rec.DailyCounts[day.String()]; ok {
		t.Fatalf("expected %s to be pruned, got %v", day, rec.DailyCounts)
	}
	if !slices.Contains(rec.CompletedDays, day.String()) {
		t.Fatal("completed days should keep the historical entry")
	}
}

func TestUncompleteClampsAtZero(t *testing.T) {
	rec := New().UncompleteTask("2024-03-01").UncompleteTask("2024-03-01")
	if rec.TasksCompleted != 0 {
		t.Fatalf("expected tasks completed to clamp at 0, got %d", rec.TasksCompleted)
	}
	if len(rec.DailyCounts) != 0 {
		t.Fatalf("expected no daily counts, got %v", rec.DailyCounts)
	}
}

func TestUncompleteOtherDayOnlyDecrementsTotal(t *testing.T) {
	rec := New().CompleteTask("2024-03-01").UncompleteTask("2024-03-05")
	if rec.CountOn("2024-03-01") != 1 {
		t.Fatalf("unrelated day should keep its count, got %d", rec.CountOn("2024-03-01"))
	}
	if rec.TasksCompleted != 0 {
		t.Fatalf("expected total 0, got %d", rec.TasksCompleted)
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	base := New().CompleteTask("2024-03-01")
	_ = base.CompleteTask("2024-03-01")
	_, _ = base.UnlockBadge("early-bird")

	if base.CountOn("2024-03-01") != 1 {
		t.Fatalf("input record was mutated: %v", base.DailyCounts)
	}
	if len(base.UnlockedBadges) != 0 {
		t.Fatalf("input badges were mutated: %v", base.UnlockedBadges)
	}
}

func TestCounters(t *testing.T) {
	rec := New().CompleteGoal().CompleteGoal().CompleteFocusSession()
	if rec.GoalsCompleted != 2 {
		t.Fatalf("expected goals completed 2, got %d", rec.GoalsCompleted)
	}
	if rec.FocusSessions != 1 {
		t.Fatalf("expected focus sessions 1, got %d", rec.FocusSessions)
	}
}

func TestSetTotalGoals(t *testing.T) {
	rec, err := New().SetTotalGoals(5)
	if err != nil {
		t.Fatalf("SetTotalGoals returned error: %v", err)
	}
	rec, err = rec.SetTotalGoals(2)
	if err != nil {
		t.Fatalf("SetTotalGoals returned error: %v", err)
	}
	if rec.TotalGoals != 2 {
		t.Fatalf("expected absolute set to 2, got %d", rec.TotalGoals)
	}

	if _, err := rec.SetTotalGoals(-1); !errors.Is(err, ErrNegativeTotal) {
		t.Fatalf("expected ErrNegativeTotal, got %v", err)
	}
}

func TestUnlockBadgeIsIdempotent(t *testing.T) {
	rec, unlocked := New().UnlockBadge("streak-7")
	if !unlocked {
		t.Fatal("first unlock should report unlocked")
	}

	rec, unlocked = rec.UnlockBadge("streak-7")
	if unlocked {
		t.Fatal("second unlock should report already unlocked")
	}

	count := 0
	for _, badge := range rec.UnlockedBadges {
		if badge == "streak-7" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected badge exactly once, got %d in %v", count, rec.UnlockedBadges)
	}
	if !rec.HasBadge("streak-7") {
		t.Fatal("HasBadge should report true")
	}
}

func TestCountersStayNonNegative(t *testing.T) {
	days := []calendar.Day{"2024-03-01", "2024-03-02"}
	rec := New()
	ops := []func(Record) Record{
		func(r Record) Record { return r.UncompleteTask(days[0]) },
		func(r Record) Record { return r.CompleteTask(days[1]) },
		func(r Record) Record { return r.UncompleteTask(days[1]) },
		func(r Record) Record { return r.UncompleteTask(days[1]) },
		func(r Record) Record { return r.CompleteFocusSession() },
		func(r Record) Record { return r.CompleteTask(days[0]) },
	}

	for i, op := range ops {
		rec = op(rec)
		if rec.TasksCompleted < 0 || rec.GoalsCompleted < 0 || rec.FocusSessions < 0 || rec.TotalGoals < 0 {
			t.Fatalf("negative counter after op %d: %+v", i, rec)
		}
		for day, count := range rec.DailyCounts {
			if count <= 0 {
				t.Fatalf("non-positive count for %s after op %d", day, i)
			}
		}
	}
}
