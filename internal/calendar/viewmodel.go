package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// Event is a BusyBlock projected into the viewer's wall clock, ready to
// render.
type Event struct {
	ID      string     `json:"id"`
	Source  SourceKind `json:"source"`
	Start   CivilTime  `json:"start"`
	End     CivilTime  `json:"end"`
	Mutable bool       `json:"mutable"`
	Label   string     `json:"label"`
}

// SeriesIssue reports a series that could not be expanded for this window.
type SeriesIssue struct {
	SeriesID int64  `json:"seriesID"`
	Reason   string `json:"reason"`
}

// ViewModel is the render-ready schedule for one staff member and one query
// window, entirely in the viewer's wall clock. GridStart and GridEnd carry
// the working-hours bounds on the window's first day; the hours apply to
// every day of the window. GridEnd is an exclusive render bound: a grid
// running to midnight is expressed as hour 24 of the same day, and neither
// grid time is an instant to convert back.
type ViewModel struct {
	Events        []Event                       `json:"events"`
	Availability  map[CivilDate][]LocalInterval `json:"availability"`
	GridStart     CivilTime                     `json:"gridStart"`
	GridEnd       CivilTime                     `json:"gridEnd"`
	NowMarker     CivilTime                     `json:"nowMarker"`
	SkippedSeries []SeriesIssue                 `json:"skippedSeries,omitempty"`
}

// BuildInput carries everything the builder needs, already fetched by the
// data-access layer. The builder itself performs no I/O.
type BuildInput struct {
	StaffID        int64
	ViewerTimezone string
	WindowStart    time.Time
	WindowEnd      time.Time
	WorkingHours   *domain.WorkingHoursPreference

	Series             []*domain.RecurringSeries
	ExceptionsBySeries map[int64][]*domain.SeriesException
	Replacements       map[int64]*domain.Appointment
	Appointments       []*domain.Appointment
	ManualBlocks       []*domain.ManualBlock
	ExternalEvents     []*domain.ExternalEvent
	Availability       *domain.AvailabilityTemplate
}

// ExpansionCache memoizes per-series expansion results. Implementations
// must treat entries as immutable; a miss is always safe. The key already
// encodes series id, window and exceptions version, so invalidation is
// free: edits bump the version and simply stop hitting the old entry.
type ExpansionCache interface {
	Get(key string) ([]Occurrence, bool)
	Set(key string, occurrences []Occurrence)
}

// Builder assembles the calendar view model. It is stateless apart from the
// injected collaborators and safe for concurrent use.
type Builder struct {
	Expander Expander
	Cache    ExpansionCache   // optional
	Now      func() time.Time // defaults to time.Now
}

// Build produces the viewer-local view model for one staff member's window.
//
// Everything up to projection happens in instant (UTC) space; instants
// become wall clock exactly once, here, through the viewer's timezone. The
// now marker goes through the same projection so it can never disagree with
// the events' coordinate system. An invalid viewer timezone fails the whole
// request; a series with a bad rule or timezone is skipped and reported.
func (b *Builder) Build(input BuildInput) (*ViewModel, error) {
	loc, err := LoadTimezone(input.ViewerTimezone)
	if err != nil {
		return nil, fmt.Errorf("viewer timezone: %w", err)
	}
	if !input.WindowEnd.After(input.WindowStart) {
		return nil, fmt.Errorf("window end %v is not after window start %v", input.WindowEnd, input.WindowStart)
	}

	vm := &ViewModel{}

	occurrences := make([]Occurrence, 0)
	for _, series := range input.Series {
		occs, err := b.expandSeries(series, input)
		if err != nil {
			if errors.Is(err, ErrUnparseableRecurrenceRule) || errors.Is(err, ErrInvalidTimezone) {
				vm.SkippedSeries = append(vm.SkippedSeries, SeriesIssue{SeriesID: series.ID, Reason: err.Error()})
				continue
			}
			return nil, err
		}
		occurrences = append(occurrences, occs...)
	}

	occurrences = MergeStandalone(occurrences, input.Appointments, input.WindowStart, input.WindowEnd)
	blocks := Merge(occurrences, input.ManualBlocks, input.ExternalEvents)

	vm.Events = make([]Event, 0, len(blocks))
	for _, block := range blocks {
		vm.Events = append(vm.Events, Event{
			ID:      block.ID,
			Source:  block.Source,
			Start:   ToCivil(block.Start, loc),
			End:     ToCivil(block.End, loc),
			Mutable: block.Mutable,
			Label:   block.Label,
		})
	}

	availability, err := AvailableIntervals(input.Availability, input.WindowStart, input.WindowEnd, loc)
	if err != nil {
		return nil, err
	}
	vm.Availability = availability

	hours := input.WorkingHours
	if hours == nil {
		hours = domain.DefaultWorkingHours(0)
	} else {
		clamped := *hours
		hours = &clamped
	}
	NormalizeWorkingHours(hours)

	firstDay := ToCivil(input.WindowStart, loc).Date()
	vm.GridStart = CivilTime{Year: firstDay.Year, Month: firstDay.Month, Day: firstDay.Day, Hour: hours.StartHour}
	vm.GridEnd = CivilTime{Year: firstDay.Year, Month: firstDay.Month, Day: firstDay.Day, Hour: hours.EndHour}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	vm.NowMarker = ToCivil(now(), loc)

	return vm, nil
}

func (b *Builder) expandSeries(series *domain.RecurringSeries, input BuildInput) ([]Occurrence, error) {
	key := fmt.Sprintf("expand:%d:%d:%d:%d", series.ID, input.WindowStart.Unix(), input.WindowEnd.Unix(), series.Version)

	if b.Cache != nil {
		if occs, ok := b.Cache.Get(key); ok {
			return occs, nil
		}
	}

	occs, err := b.Expander.Expand(series, input.ExceptionsBySeries[series.ID], input.Replacements, input.WindowStart, input.WindowEnd)
	if err != nil {
		return nil, err
	}

	if b.Cache != nil {
		b.Cache.Set(key, occs)
	}
	return occs, nil
}
