package sharelink

import (
	"strconv"
	"strings"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// Срок жизни ссылки — закрытый вариант, собираем из формы на границе HTTP.
type ExpiryMode int

const (
	ExpiryNone ExpiryMode = iota // бессрочная
	ExpiryHours
	ExpiryMonths
	ExpiryExplicit
)

type ExpirySpec struct {
	Mode   ExpiryMode
	Hours  int
	Months int
	At     time.Time // только для ExpiryExplicit
}

// Форматы поля datetime-local плюс обычный RFC3339.
var explicitLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseExpiryForm превращает сырые поля формы в ExpirySpec.
// Нечисловые и неположительные hours/months, как и неизвестный режим,
// дают бессрочную ссылку. Нечитаемая явная дата — ErrInvalidExpiry.
func ParseExpiryForm(mode, hours, months, datetime string) (ExpirySpec, error) {
	switch strings.TrimSpace(mode) {
	case "hours":
		if n, err := strconv.Atoi(strings.TrimSpace(hours)); err == nil && n > 0 {
			return ExpirySpec{Mode: ExpiryHours, Hours: n}, nil
		}
		return ExpirySpec{Mode: ExpiryNone}, nil
	case "months":
		if n, err := strconv.Atoi(strings.TrimSpace(months)); err == nil && n > 0 {
			return ExpirySpec{Mode: ExpiryMonths, Months: n}, nil
		}
		return ExpirySpec{Mode: ExpiryNone}, nil
	case "datetime":
		s := strings.TrimSpace(datetime)
		for _, layout := range explicitLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return ExpirySpec{Mode: ExpiryExplicit, At: t}, nil
			}
		}
		return ExpirySpec{}, domain.ErrInvalidExpiry
	default:
		return ExpirySpec{Mode: ExpiryNone}, nil
	}
}

// ExpiresAt считает момент истечения от now; nil — не истекает.
func (s ExpirySpec) ExpiresAt(now time.Time) *time.Time {
	switch s.Mode {
	case ExpiryHours:
		t := now.Add(time.Duration(s.Hours) * time.Hour)
		return &t
	case ExpiryMonths:
		t := addMonthsClamped(now, s.Months)
		return &t
	case ExpiryExplicit:
		t := s.At
		return &t
	default:
		return nil
	}
}

// addMonthsClamped — календарный сдвиг на n месяцев с прижатием к последнему
// дню короткого месяца: 31 янв + 1 мес = 28/29 фев, а не 2/3 марта,
// как сделал бы time.AddDate с нормализацией.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month) int {
	// день 0 следующего месяца = последний день текущего
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
