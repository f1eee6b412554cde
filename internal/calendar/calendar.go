package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout 是日期在存储与接口中交换时使用的格式（ISO 日历日期）。
const Layout = "2006-01-02"

// ErrInvalidDay 在日期字符串无法解析为合法日历日期时返回
var ErrInvalidDay = errors.New("invalid calendar day")

// Day 表示一个不带时区的日历日期，以 YYYY-MM-DD 字符串保存。
// 零值表示"缺省"，同格式的 Day 可以直接比较大小。
type Day string

// Parse 校验并返回日历日期
func Parse(value string) (Day, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDay)
	}
	t, err := time.Parse(Layout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDay, value)
	}
	return FromTime(t), nil
}

// FromTime 取 t 在其自身时区下的日期部分
func FromTime(t time.Time) Day {
	return Day(t.Format(Layout))
}

// Today 返回 now 在 loc 时区下对应的日期，loc 为空时按 UTC 处理
func Today(now time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(now.In(loc))
}

// IsZero 判断日期是否缺省
func (d Day) IsZero() bool {
	return d == ""
}

// Time 返回该日期 UTC 零点
func (d Day) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays 按日历天数偏移，跨月跨年由 time 包处理
func (d Day) AddDays(n int) Day {
	if d.IsZero() {
		return d
	}
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Yesterday 返回前一天
func (d Day) Yesterday() Day {
	return d.AddDays(-1)
}

// Before 判断 d 是否早于 other
func (d Day) Before(other Day) bool {
	return d < other
}

func (d Day) String() string {
	return string(d)
}

// Ptr 将日期转换为可空的字符串指针，缺省日期返回 nil
func (d Day) Ptr() *string {
	if d.IsZero() {
		return nil
	}
	s := string(d)
	return &s
}

// FromPtr 是 Ptr 的逆操作
func FromPtr(value *string) Day {
	if value == nil {
		return ""
	}
	return Day(strings.TrimSpace(*value))
}
