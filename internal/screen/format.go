package screen

import (
	"fmt"
	"strings"
	"time"
)

// FormatINR 按印度位制渲染金额：₹ 符号、零小数位、最后三位一组后
// 每两位一逗号（12,34,567）。入参单位 paise，四舍五入到整卢比。
func FormatINR(paise int64) string {
	neg := paise < 0
	if neg {
		paise = -paise
	}
	rupees := (paise + 50) / 100

	digits := fmt.Sprintf("%d", rupees)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	if len(digits) <= 3 {
		b.WriteString(digits)
		return b.String()
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	// head 部分从右往左每两位插一个逗号
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	b.WriteString(strings.Join(groups, ","))
	b.WriteString(",")
	b.WriteString(tail)
	return b.String()
}

// FormatDate en-IN 习惯的日期展示：dd/mm/yyyy。
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTime en-IN 习惯的日期时间展示。
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006, 3:04 pm")
}
