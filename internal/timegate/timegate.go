// Package timegate 集中处理所有与日期边界相关的计算。
// 选题和答案公开共用同一个 KST 固定时区，避免两条路径因时区不一致产生漂移。
package timegate

import (
	"fmt"
	"time"
)

// KST 韩国标准时间 (UTC+9)，全部日历计算的唯一基准时区
var KST = time.FixedZone("KST", 9*60*60)

// RevealHour 前一天的答案在次日该小时（KST）后对组员公开
const RevealHour = 9

// DateLayout 问题日期的标准格式
const DateLayout = "2006-01-02"

// Today 返回 now 对应的 KST 日历日（YYYY-MM-DD）
func Today(now time.Time) string {
	return now.In(KST).Format(DateLayout)
}

// DaysAgo 返回 now 往前 n 天的 KST 日历日
func DaysAgo(now time.Time, n int) string {
	return now.In(KST).AddDate(0, 0, -n).Format(DateLayout)
}

// IsRevealed 判断 questionDate 当天的答案此刻是否对组员可见。
// 规则：
//   - 早于昨天的日期永远可见
//   - 今天或昨天的日期在 KST 9 点后可见
//   - 未来日期不可见
func IsRevealed(questionDate string, now time.Time) bool {
	qDate, err := time.ParseInLocation(DateLayout, questionDate, KST)
	if err != nil {
		return false
	}

	kstNow := now.In(KST)
	today := time.Date(kstNow.Year(), kstNow.Month(), kstNow.Day(), 0, 0, 0, 0, KST)
	yesterday := today.AddDate(0, 0, -1)

	if qDate.Before(yesterday) {
		return true
	}
	if qDate.Equal(today) || qDate.Equal(yesterday) {
		return kstNow.Hour() >= RevealHour
	}
	return false
}

// TimeUntilDeadline 返回距下一个 KST 午夜（当天答题截止）的剩余时间
func TimeUntilDeadline(now time.Time) string {
	kstNow := now.In(KST)
	midnight := time.Date(kstNow.Year(), kstNow.Month(), kstNow.Day(), 0, 0, 0, 0, KST).AddDate(0, 0, 1)
	return formatRemaining(midnight.Sub(kstNow))
}

// TimeUntilReveal 返回距次日 KST 9 点（答案公开时刻）的剩余时间
func TimeUntilReveal(now time.Time) string {
	kstNow := now.In(KST)
	reveal := time.Date(kstNow.Year(), kstNow.Month(), kstNow.Day(), RevealHour, 0, 0, 0, KST).AddDate(0, 0, 1)
	return formatRemaining(reveal.Sub(kstNow))
}

// FormatDate 将问题日期渲染为韩语展示格式，如 "2026년 9월 1일 (화)"
func FormatDate(date string) string {
	d, err := time.ParseInLocation(DateLayout, date, KST)
	if err != nil {
		return date
	}
	weekdays := []string{"일", "월", "화", "수", "목", "금", "토"}
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", d.Year(), int(d.Month()), d.Day(), weekdays[d.Weekday()])
}

// formatRemaining 渲染剩余时长，如 "2시간 30분"；不足一小时时只显示分钟
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%d시간 %d분", hours, minutes)
	}
	return fmt.Sprintf("%d분", minutes)
}
