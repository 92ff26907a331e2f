package domain

import "time"

// DateOnly возвращает календарную дату t (полночь UTC того же дня).
// Используется для сравнения дат независимо от часового пояса исходного значения.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	return DateOnly(date1).Equal(DateOnly(date2))
}

// IsDateInPast проверяет, что календарный день date раньше календарного дня now
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}
