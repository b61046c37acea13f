package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// SourceKind tags the origin of a busy block.
type SourceKind string

const (
	SourceAppointment  SourceKind = "appointment"
	SourceManualBlock  SourceKind = "manual_block"
	SourceExternalSync SourceKind = "external_sync"
)

// sourcePrecedence orders blocks that start at the same instant so
// rendering stays deterministic.
var sourcePrecedence = map[SourceKind]int{
	SourceAppointment:  0,
	SourceManualBlock:  1,
	SourceExternalSync: 2,
}

// BusyBlock is any interval that renders as occupied, tagged with its
// origin. It is a transient union view rebuilt on every query, never a
// stored row. External-sync blocks are immutable reflections of a
// third-party calendar; the rest can be edited or deleted by staff.
type BusyBlock struct {
	ID      string     `json:"id"`
	Source  SourceKind `json:"source"`
	Start   time.Time  `json:"start"`
	End     time.Time  `json:"end"`
	Mutable bool       `json:"mutable"`
	Label   string     `json:"label"`
}

// Merge combines expanded appointment occurrences, manual blocks and
// external-sync events into one ordered list. Overlapping blocks from
// different sources are all kept: a manual block sitting on top of an
// appointment is information the user needs to see, not something to
// collapse away. Order is by start instant, then source precedence
// (appointment > manual > external), then id.
func Merge(occurrences []Occurrence, manual []*domain.ManualBlock, external []*domain.ExternalEvent) []BusyBlock {
	blocks := make([]BusyBlock, 0, len(occurrences)+len(manual)+len(external))

	for _, occ := range occurrences {
		blocks = append(blocks, BusyBlock{
			ID:      occ.ID,
			Source:  SourceAppointment,
			Start:   occ.Start,
			End:     occ.End,
			Mutable: true,
			Label:   occ.ClientName,
		})
	}

	for _, mb := range manual {
		blocks = append(blocks, BusyBlock{
			ID:      fmt.Sprintf("block-%d", mb.ID),
			Source:  SourceManualBlock,
			Start:   mb.StartTime.UTC(),
			End:     mb.EndTime.UTC(),
			Mutable: true,
			Label:   mb.Label,
		})
	}

	for _, ev := range external {
		blocks = append(blocks, BusyBlock{
			ID:      fmt.Sprintf("external-%d", ev.ID),
			Source:  SourceExternalSync,
			Start:   ev.StartTime.UTC(),
			End:     ev.EndTime.UTC(),
			Mutable: false,
			Label:   ev.Summary,
		})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if !blocks[i].Start.Equal(blocks[j].Start) {
			return blocks[i].Start.Before(blocks[j].Start)
		}
		if sourcePrecedence[blocks[i].Source] != sourcePrecedence[blocks[j].Source] {
			return sourcePrecedence[blocks[i].Source] < sourcePrecedence[blocks[j].Source]
		}
		return blocks[i].ID < blocks[j].ID
	})

	return blocks
}
