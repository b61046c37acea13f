package extsync

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// FeedEvent is a normalized VEVENT: concrete start/end plus the raw
// recurrence bits, not yet expanded.
type FeedEvent struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	RawRule string
	ExDates []time.Time
}

// ParseFeed parses an ICS payload into feed events. A malformed VEVENT is
// logged and skipped; one broken entry must not take the whole feed down.
func ParseFeed(body []byte) ([]FeedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]FeedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			slog.Warn("skipping malformed feed event", "error", err)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (FeedEvent, error) {
	var out FeedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// busy interval with no DTEND: treat it as a point widened to half
		// an hour, the smallest slot the grid renders
		end = start.Add(30 * time.Minute)
	}
	out.Start = start
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, v := range strings.Split(p.Value, ",") {
			if ex, ok := parseExDate(strings.TrimSpace(v), start.Location()); ok {
				out.ExDates = append(out.ExDates, ex)
			}
		}
	}

	return out, nil
}

func parseExDate(v string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse("20060102T150405Z", v); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("20060102T150405", v, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("20060102", v, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}
