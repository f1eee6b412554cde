package db

import (
	"path/filepath"
	"testing"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Options{Driver: "mysql"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := Open(Options{Driver: "postgres"}); err == nil {
		t.Fatal("expected error for postgres without url")
	}
}

func TestInitCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focusboard.db")
	if err := Init(Options{Driver: "sqlite", Path: path}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() {
		Close()
		DB = nil
	})

	for _, model := range Models() {
		if !DB.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
	if !DB.Migrator().HasTable("user_productivity") {
		t.Fatal("expected productivity table to use legacy name")
	}
}

func TestProductivitySerializerRoundTrip(t *testing.T) {
	gdb, err := Open(Options{Path: filepath.Join(t.TempDir(), "serializer.db")})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	row := Productivity{
		UserID:         3,
		CompletedDays:  []string{"2024-01-05"},
		DailyCounts:    map[string]int{"2024-01-05": 2},
		UnlockedBadges: []string{"first_task"},
	}
	if err := gdb.Create(&row).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var loaded Productivity
	if err := gdb.Where("user_id = ?", 3).First(&loaded).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.CompletedDays) != 1 || loaded.CompletedDays[0] != "2024-01-05" {
		t.Fatalf("unexpected completed days %v", loaded.CompletedDays)
	}
	if loaded.DailyCounts["2024-01-05"] != 2 {
		t.Fatalf("unexpected daily counts %v", loaded.DailyCounts)
	}
	if len(loaded.UnlockedBadges) != 1 {
		t.Fatalf("unexpected badges %v", loaded.UnlockedBadges)
	}

	if err := gdb.Create(&Productivity{UserID: 3}).Error; err == nil {
		t.Fatal("expected unique index to reject a second record for the same user")
	}
}

func TestGoalReached(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want bool
	}{
		{name: "below target", goal: Goal{TargetValue: 5, CurrentValue: 4}, want: false},
		{name: "at target", goal: Goal{TargetValue: 5, CurrentValue: 5}, want: true},
		{name: "over target", goal: Goal{TargetValue: 5, CurrentValue: 7}, want: true},
		{name: "zero target", goal: Goal{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Reached(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
