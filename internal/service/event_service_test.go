package service

import (
	"errors"
	"testing"
)

func TestEventServiceOrdering(t *testing.T) {
	svc := NewEventService(setupServiceTestDB(t))

	inputs := []EventInput{
		{Title: "晚饭", Date: "2024-04-02", Time: strPtr("19:00")},
		{Title: "晨会", Date: "2024-04-02", Time: strPtr("09:30")},
		{Title: "体检", Date: "2024-04-01"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(1, input); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	all, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 || all[0].Title != "体检" {
		t.Fatalf("expected events ordered by date, got %+v", all)
	}

	day, err := svc.ListByDate(1, "2024-04-02")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(day) != 2 || day[0].Title != "晨会" || day[1].Title != "晚饭" {
		t.Fatalf("expected events ordered by time, got %+v", day)
	}

	if _, err := svc.ListByDate(1, "2024/04/02"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
}

func TestEventServiceValidationAndUpdate(t *testing.T) {
	svc := NewEventService(setupServiceTestDB(t))

	bad := []EventInput{
		{Title: "", Date: "2024-04-01"},
		{Title: "x", Date: ""},
		{Title: "x", Date: "2024-04-01", Time: strPtr("25:00")},
	}
	for _, input := range bad {
		if _, err := svc.Create(1, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}

	event, _ := svc.Create(1, EventInput{Title: "读书会", Date: "2024-04-03", Time: strPtr("20:00")})
	updated, err := svc.Update(1, event.ID, EventUpdate{Date: strPtr("2024-04-04"), Time: strPtr("")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Date != "2024-04-04" || updated.Time != nil {
		t.Fatalf("unexpected event after update %+v", updated)
	}

	if _, err := svc.Update(2, event.ID, EventUpdate{Title: strPtr("偷改")}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	deleted, err := svc.Delete(1, event.ID)
	if err != nil || deleted.Title != "读书会" {
		t.Fatalf("Delete returned %+v, %v", deleted, err)
	}
}
