package handler

import (
	"time"

	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/push"
	"github.com/focusboard/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	publisher     push.Publisher
	users         *service.AuthService
	habits        *service.HabitService
	productivity  *service.ProductivityService
	tasks         *service.TaskService
	goals         *service.GoalService
	journal       *service.JournalService
	moods         *service.MoodService
	events        *service.EventService
	notifications *service.NotificationService
	assistant     *service.AssistantService
	now           func() time.Time
}

// Options 描述构造 API 时的可选依赖
type Options struct {
	// Publisher 为空时不推送
	Publisher push.Publisher
	// Location 用于计算习惯的"今天"，为空时使用 UTC
	Location *time.Location
	AI       service.AIConfig
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, tokens *auth.Manager, opts Options) *API {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = push.Nop{}
	}

	habits := service.NewHabitService(gdb)
	habits.SetClock(nil, opts.Location)

	return &API{
		db:            gdb,
		publisher:     publisher,
		users:         service.NewAuthService(gdb, tokens),
		habits:        habits,
		productivity:  service.NewProductivityService(gdb),
		tasks:         service.NewTaskService(gdb),
		goals:         service.NewGoalService(gdb),
		journal:       service.NewJournalService(gdb),
		moods:         service.NewMoodService(gdb),
		events:        service.NewEventService(gdb),
		notifications: service.NewNotificationService(gdb, publisher),
		assistant:     service.NewAssistantService(opts.AI),
		now:           time.Now,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Habits 暴露习惯服务，测试中用于替换时钟
func (a *API) Habits() *service.HabitService {
	return a.habits
}

// Notifications 暴露通知服务，供其他模块创建站内通知
func (a *API) Notifications() *service.NotificationService {
	return a.notifications
}

// Assistant 暴露 AI 服务，测试中用于替换 HTTP 客户端
func (a *API) Assistant() *service.AssistantService {
	return a.assistant
}
