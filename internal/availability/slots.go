// Package availability вычисляет свободные слоты встречи на дату.
// Все функции пакета чистые: не обращаются к хранилищу и не зависят от текущего времени напрямую.
package availability

import (
	"sort"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// Generate генерирует слоты окна с фиксированным шагом duration.
// Слот t попадает в результат, пока t+duration <= window.End.
// Если длительность больше окна (или не положительна), возвращается пустой список.
func Generate(window domain.TimeWindow, duration int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if duration <= 0 || window.Validate() != nil || duration > window.LengthMinutes() {
		return slots
	}

	for current := window.Start; current.Minutes()+duration <= window.End.Minutes(); current += types.TimeString(duration) {
		slots = append(slots, current)
	}

	return slots
}

// GenerateDay генерирует слоты по всем окнам дня, сортирует по возрастанию и убирает дубликаты.
// Дубликаты возможны только для старых записей с пересекающимися окнами.
func GenerateDay(windows []domain.TimeWindow, duration int) []types.TimeString {
	all := make([]types.TimeString, 0)
	for _, w := range windows {
		all = append(all, Generate(w, duration)...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	result := all[:0]
	for i, slot := range all {
		if i > 0 && slot == all[i-1] {
			continue
		}
		result = append(result, slot)
	}

	return result
}
