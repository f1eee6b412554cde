package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/calendar"
	"github.com/focusboard/internal/config"
	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/service"
	"github.com/joho/godotenv"
)

const (
	demoEmail    = "demo@focusboard.dev"
	demoPassword = "demo1234"
	// 生产力记录回填的天数
	seedHistoryDays = 10
)

// 测试数据生成器
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}
	if err := db.Init(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, URL: cfg.DatabaseURL}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close()

	fmt.Println("开始生成测试数据...")

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	result, err := createDemoUser(tokens)
	if err != nil {
		log.Fatal("创建演示用户失败:", err)
	}

	today := calendar.Today(time.Now(), cfg.Location())
	userID := result.User.ID
	createTestHabits(userID)
	createTestTasks(userID, today)
	createTestGoals(userID, today)
	createTestJournal(userID)
	createTestEvents(userID, today)
	if err := createTestProductivity(userID, today); err != nil {
		log.Fatal("生成生产力记录失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("用户: %s (密码: %s)\n", demoEmail, demoPassword)
}

// 创建演示用户，已存在时直接登录
func createDemoUser(tokens *auth.Manager) (*service.AuthResult, error) {
	users := service.NewAuthService(db.DB, tokens)
	result, err := users.Register(demoEmail, demoPassword, "Demo User")
	if errors.Is(err, service.ErrUserExists) {
		fmt.Println("用户已存在，跳过创建")
		return users.Login(demoEmail, demoPassword)
	}
	if err != nil {
		return nil, err
	}
	fmt.Println("✅ 演示用户创建完成")
	return result, nil
}

// 创建测试习惯，部分习惯标记为今天已完成
func createTestHabits(userID uint) {
	var count int64
	db.DB.Model(&db.Habit{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("习惯已存在，跳过创建")
		return
	}

	habits := service.NewHabitService(db.DB)
	seeds := []struct {
		name      string
		frequency string
		done      bool
	}{
		{name: "晨跑 20 分钟", frequency: "daily", done: true},
		{name: "阅读 30 页", frequency: "daily", done: true},
		{name: "冥想", frequency: "daily"},
		{name: "整理周报", frequency: "weekly"},
	}

	completed := true
	for _, seed := range seeds {
		habit, err := habits.Create(userID, service.HabitInput{HabitName: seed.name, Frequency: seed.frequency})
		if err != nil {
			log.Printf("创建习惯失败: %v", err)
			continue
		}
		if !seed.done {
			continue
		}
		if _, err := habits.Update(userID, habit.ID, service.HabitUpdate{CompletedToday: &completed}); err != nil {
			log.Printf("标记习惯完成失败: %v", err)
		}
	}

	fmt.Println("✅ 测试习惯创建完成")
}

// 创建测试任务
func createTestTasks(userID uint, today calendar.Day) {
	var count int64
	db.DB.Model(&db.Task{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("任务已存在，跳过创建")
		return
	}

	tasks := service.NewTaskService(db.DB)
	due := string(today.AddDays(2))
	seeds := []service.TaskInput{
		{Title: "准备周会材料", Priority: "high", DueDate: &due},
		{Title: "回复邮件", Priority: "medium"},
		{Title: "整理书桌", Priority: "low"},
	}
	for _, seed := range seeds {
		if _, err := tasks.Create(userID, seed); err != nil {
			log.Printf("创建任务失败: %v", err)
		}
	}

	fmt.Println("✅ 测试任务创建完成")
}

// 创建测试目标
func createTestGoals(userID uint, today calendar.Day) {
	var count int64
	db.DB.Model(&db.Goal{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("目标已存在，跳过创建")
		return
	}

	goals := service.NewGoalService(db.DB)
	deadline := string(today.AddDays(30))
	target, current := 12.0, 3.0
	books, read := 4.0, 4.0
	seeds := []service.GoalInput{
		{Title: "本月跑步 12 次", TargetValue: &target, CurrentValue: &current, Deadline: &deadline},
		{Title: "读完 4 本书", TargetValue: &books, CurrentValue: &read},
	}
	for _, seed := range seeds {
		if _, err := goals.Create(userID, seed); err != nil {
			log.Printf("创建目标失败: %v", err)
		}
	}

	fmt.Println("✅ 测试目标创建完成")
}

// 创建测试日记与心情记录
func createTestJournal(userID uint) {
	var count int64
	db.DB.Model(&db.JournalEntry{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("日记已存在，跳过创建")
		return
	}

	journal := service.NewJournalService(db.DB)
	moods := service.NewMoodService(db.DB)
	happy, calm := "happy", "calm"
	entries := []struct {
		content string
		mood    *string
	}{
		{content: "## 今日小结\n\n- 完成了**周会材料**\n- 晨跑 20 分钟", mood: &happy},
		{content: "读了半本书，晚上早点休息。", mood: &calm},
	}
	for _, entry := range entries {
		if _, err := journal.Create(userID, entry.content, entry.mood); err != nil {
			log.Printf("创建日记失败: %v", err)
			continue
		}
		if _, err := moods.Log(userID, *entry.mood); err != nil {
			log.Printf("记录心情失败: %v", err)
		}
	}

	fmt.Println("✅ 测试日记创建完成")
}

// 创建测试日程
func createTestEvents(userID uint, today calendar.Day) {
	var count int64
	db.DB.Model(&db.Event{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("日程已存在，跳过创建")
		return
	}

	events := service.NewEventService(db.DB)
	morning, afternoon := "09:30", "15:00"
	seeds := []service.EventInput{
		{Title: "站会", Date: string(today), Time: &morning},
		{Title: "一对一沟通", Date: string(today), Time: &afternoon},
		{Title: "季度回顾", Date: string(today.AddDays(7))},
	}
	for _, seed := range seeds {
		if _, err := events.Create(userID, seed); err != nil {
			log.Printf("创建日程失败: %v", err)
		}
	}

	fmt.Println("✅ 测试日程创建完成")
}

// 回填最近若干天的任务完成情况，让热力图有数据
func createTestProductivity(userID uint, today calendar.Day) error {
	svc := service.NewProductivityService(db.DB)
	if _, created, err := svc.Initialize(userID); err != nil {
		return err
	} else if !created {
		fmt.Println("生产力记录已存在，跳过创建")
		return nil
	}

	for offset := 0; offset < seedHistoryDays; offset++ {
		day := today.AddDays(-offset)
		// 每三天空一天，其余日期完成 1~3 个任务
		if offset%3 == 2 {
			continue
		}
		for i := 0; i <= offset%3; i++ {
			if _, err := svc.CompleteTask(userID, string(day)); err != nil {
				return err
			}
		}
	}

	if _, err := svc.SetTotalGoals(userID, 2); err != nil {
		return err
	}
	if _, err := svc.CompleteGoal(userID); err != nil {
		return err
	}
	if _, err := svc.CompleteFocusSession(userID); err != nil {
		return err
	}
	if _, _, err := svc.UnlockBadge(userID, "first_week"); err != nil {
		return err
	}

	fmt.Println("✅ 生产力记录创建完成")
	return nil
}
