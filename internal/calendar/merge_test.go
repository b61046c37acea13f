package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func TestMergeKeepsOverlappingBlocksFromAllSources(t *testing.T) {
	// One appointment, one manual block and one external event, all
	// overlapping the same hour. Overlap is information to surface, so all
	// three must come back.
	occs := []Occurrence{{
		ID:         "appointment-1",
		StaffID:    3,
		ClientName: "R. Alvarez",
		Start:      time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC),
		Status:     domain.AppointmentScheduled,
	}}
	manual := []*domain.ManualBlock{{
		ID:        4,
		StaffID:   3,
		StartTime: time.Date(2024, 3, 5, 19, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 5, 20, 30, 0, 0, time.UTC),
		Label:     "Chart review",
	}}
	external := []*domain.ExternalEvent{{
		ID:        8,
		Summary:   "Dentist",
		StartTime: time.Date(2024, 3, 5, 19, 15, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 5, 19, 45, 0, 0, time.UTC),
	}}

	blocks := Merge(occs, manual, external)
	require.Len(t, blocks, 3)

	require.Equal(t, SourceAppointment, blocks[0].Source)
	require.Equal(t, SourceExternalSync, blocks[1].Source)
	require.Equal(t, SourceManualBlock, blocks[2].Source)

	for i := 1; i < len(blocks); i++ {
		require.False(t, blocks[i].Start.Before(blocks[i-1].Start))
	}
}

func TestMergeTieBreakBySourcePrecedence(t *testing.T) {
	at := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	occs := []Occurrence{{ID: "appointment-1", Start: at, End: at.Add(time.Hour)}}
	manual := []*domain.ManualBlock{{ID: 2, StartTime: at, EndTime: at.Add(time.Hour)}}
	external := []*domain.ExternalEvent{{ID: 3, StartTime: at, EndTime: at.Add(time.Hour)}}

	blocks := Merge(occs, manual, external)
	require.Equal(t, []SourceKind{SourceAppointment, SourceManualBlock, SourceExternalSync},
		[]SourceKind{blocks[0].Source, blocks[1].Source, blocks[2].Source})
}

func TestMergeMutability(t *testing.T) {
	at := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	blocks := Merge(
		[]Occurrence{{ID: "appointment-1", Start: at, End: at.Add(time.Hour)}},
		[]*domain.ManualBlock{{ID: 2, StartTime: at, EndTime: at.Add(time.Hour)}},
		[]*domain.ExternalEvent{{ID: 3, StartTime: at, EndTime: at.Add(time.Hour)}},
	)

	for _, b := range blocks {
		if b.Source == SourceExternalSync {
			require.False(t, b.Mutable, "external-sync blocks are read-only reflections")
		} else {
			require.True(t, b.Mutable)
		}
	}
}
