package availability

import (
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// Resolve возвращает свободные слоты встречи на дату date по возрастанию.
//
// now задает текущий момент и часовой пояс хоста: календарный день "сегодня" и
// момент начала слота вычисляются в now.Location().
// bookings могут содержать бронирования других дат и отмененные: они игнорируются.
//
// Правила:
//  1. дата раньше сегодняшнего дня - пусто;
//  2. день недели выключен или без окон - пусто;
//  3. слоты всех окон дня объединяются и сортируются;
//  4. занятые (неотмененные бронирования на эту дату) исключаются;
//  5. сегодня остаются только слоты, начинающиеся строго позже now.
func Resolve(meeting *domain.Meeting, date time.Time, bookings []*domain.BookedSlot, now time.Time) []types.TimeString {
	result := make([]types.TimeString, 0)

	if meeting == nil || domain.IsDateInPast(date, now) {
		return result
	}

	day := meeting.Availability.ForDate(date)
	if !day.IsBookable() {
		return result
	}

	generated := GenerateDay(day.Windows, meeting.DurationMinutes)
	occupied := occupiedTimes(date, bookings)
	isToday := domain.IsSameDay(date, now)

	for _, slot := range generated {
		if _, taken := occupied[slot]; taken {
			continue
		}
		if isToday && !slot.On(date, now.Location()).After(now) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// IsAvailable проверяет, что start входит в Resolve(meeting, date, bookings, now)
func IsAvailable(meeting *domain.Meeting, date time.Time, start types.TimeString, bookings []*domain.BookedSlot, now time.Time) bool {
	for _, slot := range Resolve(meeting, date, bookings, now) {
		if slot == start {
			return true
		}
	}
	return false
}

// occupiedTimes собирает время начала активных бронирований на дату
func occupiedTimes(date time.Time, bookings []*domain.BookedSlot) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() || !domain.IsSameDay(b.Date, date) {
			continue
		}
		occupied[b.Time] = struct{}{}
	}
	return occupied
}
