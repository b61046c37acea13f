package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// ValidateRule checks that an RRULE compiles, so series writes can reject
// garbage up front instead of surfacing it as a skipped series on read.
func ValidateRule(rule string) error {
	if _, err := rrule.StrToROption(rule); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseableRecurrenceRule, err)
	}
	return nil
}

// compileRule turns a series' RRULE into an iterator anchored at the series
// anchor expressed in the series' own timezone. Walking the rule in local
// wall-clock is what keeps "every Tuesday at 2pm" at 2pm across DST
// transitions; each generated local start is converted back to an instant
// by the caller.
func compileRule(series *domain.RecurringSeries, loc *time.Location) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(series.RecurrenceRule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableRecurrenceRule, err)
	}

	opt.Dtstart = series.AnchorStart.In(loc)

	// The series' own end condition tightens whatever the rule carries.
	switch series.EndType {
	case domain.SeriesEndAfterDate:
		if series.EndDate != nil {
			until := series.EndDate.In(loc)
			if opt.Until.IsZero() || until.Before(opt.Until) {
				opt.Until = until
			}
		}
	case domain.SeriesEndAfterCount:
		if series.EndCount != nil && (opt.Count == 0 || *series.EndCount < opt.Count) {
			opt.Count = *series.EndCount
		}
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableRecurrenceRule, err)
	}
	return r, nil
}
