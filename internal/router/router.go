package router

import (
	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/handler"
	"github.com/focusboard/internal/metrics"
	"github.com/focusboard/internal/push"
	"github.com/gin-gonic/gin"
)

// Options 描述路由层的开关
type Options struct {
	CORSOrigin     string
	MetricsEnabled bool
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, tokens *auth.Manager, hub *push.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(handler.RequestID(), handler.Recovery(), handler.RequestLogger(), metrics.Middleware(), handler.CORS(opts.CORSOrigin))
	r.NoRoute(handler.NotFound)

	r.GET("/health", api.Health)
	if opts.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if hub != nil {
		r.GET("/ws", hub.Handler(tokens, opts.CORSOrigin))
	}

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", api.Register)
		authGroup.POST("/login", api.Login)
	}

	// 以下路由需要携带 Bearer 令牌
	protected := apiGroup.Group("")
	protected.Use(tokens.Required())

	habits := protected.Group("/habits")
	{
		habits.POST("", api.CreateHabit)
		habits.GET("", api.ListHabits)
		habits.PUT("/:id", api.UpdateHabit)
		habits.DELETE("/:id", api.DeleteHabit)
	}

	productivity := protected.Group("/productivity")
	{
		productivity.GET("", api.GetProductivity)
		productivity.POST("/initialize", api.InitializeProductivity)
		productivity.POST("/task-complete", api.CompleteTask)
		productivity.POST("/task-uncomplete", api.UncompleteTask)
		productivity.POST("/goal-complete", api.CompleteGoal)
		productivity.POST("/focus-complete", api.CompleteFocusSession)
		productivity.PUT("/total-goals", api.UpdateTotalGoals)
		productivity.POST("/unlock-badge", api.UnlockBadge)
	}

	tasks := protected.Group("/tasks")
	{
		tasks.POST("", api.CreateTask)
		tasks.GET("", api.ListTasks)
		tasks.PUT("/:id", api.UpdateTask)
		tasks.DELETE("/:id", api.DeleteTask)
	}

	goals := protected.Group("/goals")
	{
		goals.POST("", api.CreateGoal)
		goals.GET("", api.ListGoals)
		goals.PUT("/:id", api.UpdateGoal)
		goals.DELETE("/:id", api.DeleteGoal)
	}

	journal := protected.Group("/journal")
	{
		journal.POST("", api.CreateJournalEntry)
		journal.GET("", api.ListJournalEntries)
		journal.PUT("/:id", api.UpdateJournalEntry)
		journal.DELETE("/:id", api.DeleteJournalEntry)
	}

	moods := protected.Group("/moods")
	{
		moods.POST("", api.LogMood)
		moods.GET("", api.ListMoods)
		moods.DELETE("/:id", api.DeleteMood)
	}

	events := protected.Group("/events")
	{
		events.GET("", api.ListEvents)
		events.GET("/date/:date", api.ListEventsByDate)
		events.POST("", api.CreateEvent)
		events.PUT("/:id", api.UpdateEvent)
		events.DELETE("/:id", api.DeleteEvent)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", api.ListNotifications)
		notifications.POST("", api.CreateNotification)
		notifications.PUT("/read-all", api.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", api.MarkNotificationRead)
		notifications.DELETE("/:id", api.DeleteNotification)
	}

	protected.POST("/ai/analyze", api.AnalyzeText)

	return r
}
