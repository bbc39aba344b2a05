package exercises

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var ErrInvalidName = errors.New("invalid exercise name")

const maxNameLen = 100

// DateLayout is the day-granularity format used for measurement dates.
const DateLayout = "2006-01-02"

type Exercise struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Measurement struct {
	ID          int     `json:"id"`
	ExerciseID  int     `json:"-"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	MaxWeightKg float64 `json:"maxWeightKg"`
	Date        Date    `json:"date"`
}

// Date is a day-granularity timestamp, serialized as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t.Truncate(24 * time.Hour)}
}

func Today() Date {
	now := time.Now().UTC()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// ValidateName rejects names unusable as registry keys. Quotes, semicolons
// and spaces are fine, the queries are parameterized all the way down.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: longer than %d chars", ErrInvalidName, maxNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control characters", ErrInvalidName)
		}
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: blank", ErrInvalidName)
	}
	return nil
}
