package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/focusboard/internal/calendar"
	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

var eventTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// EventService 负责日历事件
type EventService struct {
	db *gorm.DB
}

// EventInput 定义事件字段，创建时 Title 与 Date 必填
type EventInput struct {
	Title       string
	Date        string
	Time        *string
	Description *string
}

// EventUpdate 描述部分更新
type EventUpdate struct {
	Title       *string
	Date        *string
	Time        *string
	Description *string
}

// NewEventService 构造 EventService
func NewEventService(gdb *gorm.DB) *EventService {
	return &EventService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *EventService) WithContext(ctx context.Context) *EventService {
	return &EventService{db: s.db.WithContext(ctx)}
}

// List 按日期升序返回全部事件
func (s *EventService) List(userID uint) ([]db.Event, error) {
	var events []db.Event
	if err := s.db.Where("user_id = ?", userID).Order("date ASC").Order("time ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, storeError("list events", err)
	}
	return events, nil
}

// ListByDate 返回某天的事件，按时间升序
func (s *EventService) ListByDate(userID uint, date string) ([]db.Event, error) {
	day, err := calendar.Parse(date)
	if err != nil {
		return nil, invalidInput("Date must be in YYYY-MM-DD format")
	}

	var events []db.Event
	if err := s.db.Where("user_id = ? AND date = ?", userID, day.String()).Order("time ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, storeError("list events by date", err)
	}
	return events, nil
}

// Create 新建事件
func (s *EventService) Create(userID uint, input EventInput) (*db.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Date) == "" {
		return nil, invalidInput("Title and date are required")
	}
	day, err := calendar.Parse(input.Date)
	if err != nil {
		return nil, invalidInput("Date must be in YYYY-MM-DD format")
	}
	clock, err := optionalClock(input.Time)
	if err != nil {
		return nil, err
	}

	event := db.Event{
		UserID:      userID,
		Title:       title,
		Date:        day.String(),
		Time:        clock,
		Description: trimmedOrNil(input.Description),
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, storeError("create event", err)
	}
	return &event, nil
}

// Update 部分更新事件
func (s *EventService) Update(userID, id uint, input EventUpdate) (*db.Event, error) {
	event, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, invalidInput("Title cannot be empty")
		}
		event.Title = title
	}
	if input.Date != nil {
		day, err := calendar.Parse(*input.Date)
		if err != nil {
			return nil, invalidInput("Date must be in YYYY-MM-DD format")
		}
		event.Date = day.String()
	}
	if input.Time != nil {
		clock, err := optionalClock(input.Time)
		if err != nil {
			return nil, err
		}
		event.Time = clock
	}
	if input.Description != nil {
		event.Description = trimmedOrNil(input.Description)
	}

	if err := s.db.Save(event).Error; err != nil {
		return nil, storeError("update event", err)
	}
	return event, nil
}

// Delete 删除事件并返回被删除的记录
func (s *EventService) Delete(userID, id uint) (*db.Event, error) {
	event, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(event).Error; err != nil {
		return nil, storeError("delete event", err)
	}
	return event, nil
}

func (s *EventService) get(userID, id uint) (*db.Event, error) {
	var event db.Event
	if err := s.db.Where("user_id = ?", userID).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, storeError("get event", err)
	}
	return &event, nil
}

func optionalClock(value *string) (*string, error) {
	trimmed := trimmedOrNil(value)
	if trimmed == nil {
		return nil, nil
	}
	if !eventTimePattern.MatchString(*trimmed) {
		return nil, invalidInput("Time must be in HH:MM format")
	}
	return trimmed, nil
}
