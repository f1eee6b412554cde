package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

var errDiskFull = errors.New("disk full")

// failQueries 让指定表上的读取在执行前失败
func failQueries(t *testing.T, gdb *gorm.DB, table string) {
	t.Helper()
	err := gdb.Callback().Query().Before("gorm:query").Register("test:fail_query", func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errDiskFull)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}
}

// failUpdates 让指定表上的更新在执行前失败
func failUpdates(t *testing.T, gdb *gorm.DB, table string) {
	t.Helper()
	err := gdb.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errDiskFull)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}
}

func TestHabitServiceListFailsWhenRolloverWriteFails(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewHabitService(gdb)
	svc.SetClock(fixedClock("2024-01-05"), nil)

	habit, err := svc.Create(1, HabitInput{HabitName: "阅读", Frequency: "daily"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Update(1, habit.ID, HabitUpdate{CompletedToday: boolPtr(true)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	failUpdates(t, gdb, "habits")
	svc.SetClock(fixedClock("2024-01-07"), nil)

	_, err = svc.List(1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected underlying error to be kept, got %v", err)
	}
}

func TestHabitServiceUpdateFailsWhenSaveFails(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewHabitService(gdb)
	svc.SetClock(fixedClock("2024-01-05"), nil)

	habit, err := svc.Create(1, HabitInput{HabitName: "阅读", Frequency: "daily"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	failUpdates(t, gdb, "habits")

	if _, err := svc.Update(1, habit.ID, HabitUpdate{CompletedToday: boolPtr(true)}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestHabitServiceListHonoursCancelledContext(t *testing.T) {
	svc := NewHabitService(setupServiceTestDB(t))
	if _, err := svc.Create(1, HabitInput{HabitName: "冥想", Frequency: "daily"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.WithContext(ctx).List(1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled to be kept, got %v", err)
	}

	// 原服务不受副本上下文影响
	habits, err := svc.List(1)
	if err != nil || len(habits) != 1 {
		t.Fatalf("expected list without context to succeed, got %v (%d)", err, len(habits))
	}
}

func TestProductivityServiceLoadFailureIsNotNotFound(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewProductivityService(gdb)
	if _, _, err := svc.Initialize(1); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	failQueries(t, gdb, "user_productivity")

	_, err := svc.Get(1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("read failure must not be reported as not found: %v", err)
	}

	if _, err := svc.CompleteTask(1, "2024-03-01"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from mutation, got %v", err)
	}
}
