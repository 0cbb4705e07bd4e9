package prompt

import (
	"fmt"
	"time"
)

// YearWindow 提示词中的年份区间长度（当前年份到当前年份 + 5）
const YearWindow = 5

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDateES 按 es-MX 长日期格式输出，例如 "18 de octubre de 2026"
func FormatDateES(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
}

// DateVars 模板共用的日期变量
func DateVars(now time.Time) map[string]any {
	return map[string]any{
		"current_date":    FormatDateES(now),
		"current_year":    now.Year(),
		"window_end_year": now.Year() + YearWindow,
	}
}
