package streak

import (
	"testing"

	"github.com/focusboard/internal/calendar"
)

func intPtr(v int) *int { return &v }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		state       State
		today       calendar.Day
		want        State
		wantChanged bool
	}{
		{
			name:  "same day is untouched",
			state: State{Streak: 3, CompletedToday: true, LastCompleted: "2024-01-07"},
			today: "2024-01-07",
			want:  State{Streak: 3, CompletedToday: true, LastCompleted: "2024-01-07"},
		},
		{
			name:  "not completed has nothing to roll over",
			state: State{Streak: 2, CompletedToday: false, LastCompleted: "2024-01-01"},
			today: "2024-01-07",
			want:  State{Streak: 2, CompletedToday: false, LastCompleted: "2024-01-01"},
		},
		{
			name:        "completed yesterday keeps streak",
			state:       State{Streak: 4, CompletedToday: true, LastCompleted: "2024-01-06"},
			today:       "2024-01-07",
			want:        State{Streak: 4, CompletedToday: false, LastCompleted: "2024-01-06"},
			wantChanged: true,
		},
		{
			name:        "gap breaks streak",
			state:       State{Streak: 3, CompletedToday: true, LastCompleted: "2024-01-05"},
			today:       "2024-01-07",
			want:        State{Streak: 0, CompletedToday: false, LastCompleted: "2024-01-05"},
			wantChanged: true,
		},
		{
			name:        "flag without date is cleared",
			state:       State{Streak: 1, CompletedToday: true},
			today:       "2024-01-07",
			want:        State{Streak: 0, CompletedToday: false},
			wantChanged: true,
		},
		{
			name:  "never completed",
			state: State{},
			today: "2024-01-07",
			want:  State{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Evaluate(tt.state, tt.today)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if changed != tt.wantChanged {
				t.Fatalf("expected changed=%v, got %v", tt.wantChanged, changed)
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	first, _ := Evaluate(State{Streak: 5, CompletedToday: true, LastCompleted: "2024-01-05"}, "2024-01-09")
	second, changed := Evaluate(first, "2024-01-09")
	if changed {
		t.Fatal("second evaluation should be a no-op")
	}
	if second != first {
		t.Fatalf("expected %+v, got %+v", first, second)
	}
}

func TestSetCompletion(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		today     calendar.Day
		completed bool
		override  *int
		want      State
	}{
		{
			name:      "first ever completion",
			state:     State{},
			today:     "2024-01-06",
			completed: true,
			want:      State{Streak: 1, CompletedToday: true, LastCompleted: "2024-01-06"},
		},
		{
			name:      "continues from yesterday",
			state:     State{Streak: 3, LastCompleted: "2024-01-05"},
			today:     "2024-01-06",
			completed: true,
			want:      State{Streak: 4, CompletedToday: true, LastCompleted: "2024-01-06"},
		},
		{
			name:      "restarts after a gap",
			state:     State{Streak: 3, LastCompleted: "2024-01-05"},
			today:     "2024-01-08",
			completed: true,
			want:      State{Streak: 1, CompletedToday: true, LastCompleted: "2024-01-08"},
		},
		{
			name:      "re-completing the same day increments again",
			state:     State{Streak: 2, CompletedToday: true, LastCompleted: "2024-01-06"},
			today:     "2024-01-06",
			completed: true,
			want:      State{Streak: 3, CompletedToday: true, LastCompleted: "2024-01-06"},
		},
		{
			name:      "undo today's completion",
			state:     State{Streak: 4, CompletedToday: true, LastCompleted: "2024-01-06"},
			today:     "2024-01-06",
			completed: false,
			want:      State{Streak: 3, CompletedToday: false, LastCompleted: "2024-01-06"},
		},
		{
			name:      "undo floors at zero",
			state:     State{Streak: 0, CompletedToday: true, LastCompleted: "2024-01-06"},
			today:     "2024-01-06",
			completed: false,
			want:      State{Streak: 0, CompletedToday: false, LastCompleted: "2024-01-06"},
		},
		{
			name:      "uncomplete on another day keeps streak",
			state:     State{Streak: 4, LastCompleted: "2024-01-05"},
			today:     "2024-01-06",
			completed: false,
			want:      State{Streak: 4, CompletedToday: false, LastCompleted: "2024-01-05"},
		},
		{
			name:      "override wins",
			state:     State{Streak: 3, LastCompleted: "2024-01-05"},
			today:     "2024-01-06",
			completed: true,
			override:  intPtr(10),
			want:      State{Streak: 10, CompletedToday: true, LastCompleted: "2024-01-06"},
		},
		{
			name:      "negative override clamps",
			state:     State{Streak: 3},
			today:     "2024-01-06",
			completed: false,
			override:  intPtr(-2),
			want:      State{Streak: 0, CompletedToday: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetCompletion(tt.state, tt.today, tt.completed, tt.override)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestStreakNeverNegative(t *testing.T) {
	s := State{}
	days := []calendar.Day{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-04", "2024-01-10"}
	for i, day := range days {
		s = SetCompletion(s, day, i%2 == 0, nil)
		if s.Streak < 0 {
			t.Fatalf("streak went negative after step %d: %+v", i, s)
		}
		s, _ = Evaluate(s, day.AddDays(1))
		if s.Streak < 0 {
			t.Fatalf("streak went negative after rollover %d: %+v", i, s)
		}
	}
}

func TestOverride(t *testing.T) {
	got := Override(State{Streak: 2, CompletedToday: true, LastCompleted: "2024-01-06"}, 7)
	if got.Streak != 7 || !got.CompletedToday || got.LastCompleted != "2024-01-06" {
		t.Fatalf("unexpected state %+v", got)
	}
	if Override(State{Streak: 2}, -1).Streak != 0 {
		t.Fatal("expected negative override to clamp to zero")
	}
}
