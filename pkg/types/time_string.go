package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках, верхняя граница для TimeString
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда время выходит за пределы суток
	ErrOutOfRange = errors.New("time string out of range")
)

// TimeString время суток без даты. Хранится как количество минут от полуночи,
// в текстовом виде представляется как "HH:MM".
// Значение 24:00 допустимо только как правая граница интервала.
type TimeString int

// NewTimeStringFromString парсит время из строки "HH:MM" (или "HH:MM:SS", как его отдает Postgres)
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" || s == "24:00:00" {
		return TimeString(MinutesPerDay), nil
	}

	layouts := []string{"15:04", "15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeString(t.Hour()*60 + t.Minute()), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// NewTimeString берет время суток из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Hour()*60 + t.Minute())
}

// FromMinutes создает TimeString из количества минут от полуночи
func FromMinutes(minutes int) (TimeString, error) {
	ts := TimeString(minutes)
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	return ts, nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return int(t)
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Validate проверяет, что время лежит в пределах суток
func (t TimeString) Validate() error {
	if t < 0 || t > MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrOutOfRange, int(t))
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на n минут. Переход через полночь запрещен.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return FromMinutes(int(t) + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// On возвращает момент времени: дата date (календарный день) + время t в локации loc.
// Время задается по настенным часам, в дни перехода на летнее время 09:00 остается 09:00.
// 24:00 нормализуется в 00:00 следующего дня.
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, loc)
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner. lib/pq отдает TIME как time.Time, но принимаем и строки.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
