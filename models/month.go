package models

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

const (
	// DateLayout 记录日期格式
	DateLayout = "2006-01-02"
	// MonthLayout 月份格式
	MonthLayout = "2006-01"
)

// MonthRange 一个自然月的起止时间（闭区间）
type MonthRange struct {
	Month string    `json:"month"`
	Label string    `json:"label"`
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func newMonthRange(t time.Time) MonthRange {
	n := now.With(t)
	start := n.BeginningOfMonth()
	return MonthRange{
		Month: start.Format(MonthLayout),
		Label: start.Format("Jan 2006"),
		Start: start,
		End:   n.EndOfMonth(),
	}
}

// CurrentMonth 返回当前月份（YYYY-MM）
func CurrentMonth() string {
	return time.Now().Format(MonthLayout)
}

// ParseMonth 解析 YYYY-MM，返回该月起止时间
func ParseMonth(month string) (MonthRange, error) {
	t, err := time.ParseInLocation(MonthLayout, month, time.Local)
	if err != nil {
		return MonthRange{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return newMonthRange(t), nil
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// LastMonths 返回以 ref 所在月份结尾的最近 n 个月，按时间升序
func LastMonths(n int, ref time.Time) []MonthRange {
	if n <= 0 {
		return nil
	}
	first := now.With(ref).BeginningOfMonth()
	months := make([]MonthRange, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, newMonthRange(first.AddDate(0, -i, 0)))
	}
	return months
}
