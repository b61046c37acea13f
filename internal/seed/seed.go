// Package seed fills a development database with a small but realistic
// practice: a few staff accounts, weekly availability, recurring clients and
// some one-off bookings.
package seed

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/repository"
)

type demoStaff struct {
	username string
	fullName string
	email    string
	role     domain.Role
	timezone string
}

var demoRoster = []demoStaff{
	{"mreyes", "Marisol Reyes", "mreyes@arborview.example", domain.RoleClinician, "America/New_York"},
	{"dokafor", "Daniel Okafor", "dokafor@arborview.example", domain.RoleClinician, "America/Chicago"},
	{"lnguyen", "Linh Nguyen", "lnguyen@arborview.example", domain.RoleClinician, "America/Los_Angeles"},
	{"tcarter", "Tessa Carter", "tcarter@arborview.example", domain.RoleFrontDesk, "America/New_York"},
}

// demoPasswordHash is bcrypt("arborview@demo"), precomputed so reseeding is
// deterministic.
const demoPasswordHash = "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO"

var demoWindows = []domain.AvailabilityWindow{
	{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
	{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	{DayOfWeek: 2, StartTime: "13:00", EndTime: "17:00", IsActive: true},
	{DayOfWeek: 3, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	{DayOfWeek: 4, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	{DayOfWeek: 4, StartTime: "13:00", EndTime: "17:00", IsActive: true},
	{DayOfWeek: 5, StartTime: "09:00", EndTime: "15:00", IsActive: true},
}

// SeedDemoPractice inserts the demo roster with availability, one weekly
// client series per clinician and a couple of upcoming bookings. Failures
// are logged and skipped so a partially seeded database can be reseeded.
func SeedDemoPractice(r *repository.Repository) {
	// anchor everything to next Monday 10:00 UTC so the seeded week is
	// always in the near future
	anchor := nextMonday(time.Now().UTC()).Add(10 * time.Hour)

	for _, member := range demoRoster {
		user := &domain.User{
			Username:     member.username,
			PasswordHash: demoPasswordHash,
			FullName:     member.fullName,
			Email:        member.email,
			Role:         member.role,
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("failed to insert demo staff", "username", member.username, "error", err)
			continue
		}

		if member.role != domain.RoleClinician {
			continue
		}

		template := &domain.AvailabilityTemplate{
			StaffID: user.ID,
			Windows: demoWindows,
		}
		if err := r.ReplaceAvailabilityTemplate(template); err != nil {
			slog.Error("failed to insert demo availability", "username", member.username, "error", err)
		}

		series := &domain.RecurringSeries{
			GroupID:         uuid.New(),
			StaffID:         user.ID,
			ClientName:      "Jordan Whitfield",
			AnchorStart:     anchor,
			DurationMinutes: 50,
			RecurrenceRule:  "FREQ=WEEKLY;BYDAY=MO",
			Timezone:        member.timezone,
			IsActive:        true,
			EndType:         domain.SeriesEndNone,
		}
		if err := r.CreateSeries(series); err != nil {
			slog.Error("failed to insert demo series", "username", member.username, "error", err)
		}

		appt := &domain.Appointment{
			StaffID:    user.ID,
			ClientName: "Priya Raman",
			StartTime:  anchor.Add(26 * time.Hour),
			EndTime:    anchor.Add(27 * time.Hour),
			Status:     domain.AppointmentScheduled,
			Notes:      "initial consultation",
		}
		if err := r.CreateAppointment(appt); err != nil {
			slog.Error("failed to insert demo appointment", "username", member.username, "error", err)
		}

		block := &domain.ManualBlock{
			StaffID:   user.ID,
			StartTime: anchor.Add(2 * time.Hour),
			EndTime:   anchor.Add(3 * time.Hour),
			Label:     "lunch",
		}
		if err := r.CreateManualBlock(block); err != nil {
			slog.Error("failed to insert demo blocked time", "username", member.username, "error", err)
		}
	}

	slog.Info("demo practice seeded")
}

func nextMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Monday || !day.After(t) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
