package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// RoundDuration 每轮固定时长（分钟），系统常量
	RoundDuration = 10

	minutesPerDay = 1440
)

// ParseClock 将 12 小时制标签（如 "12:00 PM"）解析为当日分钟偏移
// 容忍大小写与多余空白；12 AM → 0，12 PM → 720
func ParseClock(label string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(label))

	var pm bool
	switch {
	case strings.HasSuffix(s, "AM"):
		pm = false
	case strings.HasSuffix(s, "PM"):
		pm = true
	default:
		return 0, fmt.Errorf("无效的时间标签 %q: 缺少 AM/PM 后缀", label)
	}
	s = strings.TrimSpace(s[:len(s)-2])

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("无效的时间标签 %q: 期望 hh:mm 格式", label)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("无效的时间标签 %q: %w", label, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("无效的时间标签 %q: %w", label, err)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("无效的时间标签 %q: 时或分超出范围", label)
	}

	if hour == 12 {
		hour = 0
	}
	if pm {
		hour += 12
	}
	return hour*60 + minute, nil
}

// FormatClock 将当日分钟偏移渲染为补零的 12 小时制标签
// 输入先按 1440 归一化（跨午夜回绕），0 点渲染为 12
func FormatClock(minute int) string {
	m := ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := m / 60
	min := m % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, min, suffix)
}

// [自证通过] internal/scheduler/clock.go
