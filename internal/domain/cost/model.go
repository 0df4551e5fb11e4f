package cost

import (
	"fmt"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
)

// DateLayout is the calendar date format used on every boundary.
const DateLayout = "2006-01-02"

// Record is one (day × service × region) spend bucket for one provider.
type Record struct {
	Date     time.Time `json:"date" yaml:"date"`
	Amount   float64   `json:"amount" yaml:"amount"`
	Currency string    `json:"currency" yaml:"currency"`
	Service  string    `json:"service" yaml:"service"`
	Region   string    `json:"region,omitempty" yaml:"region,omitempty"`
}

// Validate reports a record the rest of the system cannot use.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return errors.MalformedData("cost record has no date", nil)
	}
	if r.Amount < 0 {
		return errors.MalformedData(fmt.Sprintf("cost record for %q has negative amount %.2f", r.Service, r.Amount), nil)
	}
	if r.Service == "" {
		return errors.MalformedData("cost record has no service", nil)
	}
	return nil
}

// Budget periods
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// Budget is an allocated-vs-spent ceiling for one provider and period.
// It is carried through for display only.
type Budget struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Amount   float64     `json:"amount" yaml:"amount"`
	Spent    float64     `json:"spent" yaml:"spent"`
	Period   string      `json:"period" yaml:"period"`
	Provider provider.ID `json:"provider" yaml:"provider"`
}

// Utilization returns spent as a percentage of amount.
func (b Budget) Utilization() float64 {
	if b.Amount <= 0 {
		return 0
	}
	return b.Spent / b.Amount * 100
}

// ValidPeriod reports whether p is a known budget period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// DateRange is a closed [Start, End] range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both ends to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// LastDays returns the range covering the n days ending on now, inclusive.
func LastDays(now time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end := Day(now)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, errors.Precondition(fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", start))
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, errors.Precondition(fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", end))
	}
	r := NewDateRange(s, e)
	return r, r.Validate()
}

// Validate rejects an inverted range.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return errors.Precondition(fmt.Sprintf("start date %s is after end date %s",
			r.Start.Format(DateLayout), r.End.Format(DateLayout)))
	}
	return nil
}

// Contains reports whether day t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
