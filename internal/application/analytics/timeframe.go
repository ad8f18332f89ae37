package analytics

import "time"

// Tokens de timeframe aceptados. Cada token se resuelve de forma
// determinista a un rango [start, end] a partir de "ahora"; un token
// desconocido cae a "today".
const (
	TimeframeToday      = "today"
	TimeframeYesterday  = "yesterday"
	TimeframeLast7Days  = "last7days"
	TimeframeLast30Days = "last30days"
	TimeframeWeek       = "week"
	TimeframeMonth      = "month"
	TimeframeThisMonth  = "thisMonth"
	TimeframeLastMonth  = "lastMonth"
	TimeframeYear       = "year"
	TimeframeAllTime    = "allTime"
)

// ResolveTimeframe mapea un token a su rango [start, end] y devuelve el token
// normalizado. Los días van de 00:00:00.000 al último nanosegundo del día:
// "today" incluye una venta a las 00:00:00.000 de hoy y excluye una a las
// 23:59:59.999 de ayer; "lastMonth" excluye el día 1 del mes en curso.
func ResolveTimeframe(token string, now time.Time) (start, end time.Time, normalized string) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch token {
	case TimeframeYesterday:
		return todayStart.AddDate(0, 0, -1), todayStart.Add(-time.Nanosecond), TimeframeYesterday
	case TimeframeLast7Days:
		return todayStart.AddDate(0, 0, -6), todayEnd, TimeframeLast7Days
	case TimeframeLast30Days:
		return todayStart.AddDate(0, 0, -29), todayEnd, TimeframeLast30Days
	case TimeframeWeek:
		// Semana en curso, lunes a hoy
		offset := (int(todayStart.Weekday()) + 6) % 7
		return todayStart.AddDate(0, 0, -offset), todayEnd, TimeframeWeek
	case TimeframeMonth, TimeframeThisMonth:
		return monthStart, todayEnd, TimeframeMonth
	case TimeframeLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart.Add(-time.Nanosecond), TimeframeLastMonth
	case TimeframeYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), todayEnd, TimeframeYear
	case TimeframeAllTime:
		return time.Time{}, todayEnd, TimeframeAllTime
	default:
		return todayStart, todayEnd, TimeframeToday
	}
}
