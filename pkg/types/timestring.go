package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time string out of day range")
)

// TimeString время суток в формате "HH:MM"
// Значение "24:00" допустимо только как граница конца рабочего дня
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	return t.parse()
}

// AddMinutes возвращает время, сдвинутое на указанное число минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.parse()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore строго раньше other
// Некорректные значения никогда не сравниваются
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.parse()
	b, errB := other.parse()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// On возвращает момент времени на календарной дате date в её часовом поясе
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.parse()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner, поддерживает TIME колонки PostgreSQL ("HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) parse() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	var hours, minutes int
	for i, c := range []byte(s) {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}
	hours = int(s[0]-'0')*10 + int(s[1]-'0')
	minutes = int(s[3]-'0')*10 + int(s[4]-'0')
	if minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}
	return hours*60 + minutes, nil
}
