package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is a calendar month, 1 (January) to 12 (December). Years are not tracked.
type Month int

// ParseMonth accepts the month number as typed on the command line.
func ParseMonth(raw string) (Month, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("%w %q: it must be between 1 and 12", ErrInvalidMonth, raw)
	}
	return Month(n), nil
}

// ParseMonthName matches an English month name case-insensitively.
func ParseMonthName(name string) (Month, error) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return Month(m), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidMonth, name)
}

// MonthOf returns the local calendar month of t.
func MonthOf(t time.Time) Month {
	return Month(t.Local().Month())
}

func (m Month) Valid() bool { return m >= 1 && m <= 12 }

func (m Month) String() string {
	if !m.Valid() {
		return "Month(" + strconv.Itoa(int(m)) + ")"
	}
	return time.Month(m).String()
}

// MarshalJSON stores the month by name.
func (m Month) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w %d", ErrInvalidMonth, int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a month name or number.
func (m *Month) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseMonthName(name)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w %s", ErrInvalidMonth, data)
	}
	if !Month(n).Valid() {
		return fmt.Errorf("%w %d", ErrInvalidMonth, n)
	}
	*m = Month(n)
	return nil
}
