package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

var firstNames = []string{
	"Ava", "Ben", "Clara", "Daniel", "Elena", "Felix", "Grace", "Hassan",
	"Iris", "Jonah", "Keiko", "Liam", "Maya", "Noah", "Olivia", "Priya",
	"Quinn", "Rosa", "Samuel", "Tara",
}
var lastNames = []string{
	"Abbott", "Bishop", "Calloway", "Dawson", "Eriksen", "Flores", "Grant",
	"Huang", "Iyer", "Jensen", "Kowalski", "Lindgren", "Moreau", "Novak",
	"Okafor", "Petrov", "Quintero", "Reyes", "Sato", "Thorne",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var roles = []domain.Role{
	domain.RoleFrontDesk,
	domain.RoleClinician,
	domain.RolePracticeAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""

	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

// GenerateRandomAvailabilityWindows builds a plausible non-overlapping
// weekly template: one morning and one afternoon window per weekday.
func GenerateRandomAvailabilityWindows() []domain.AvailabilityWindow {
	windows := make([]domain.AvailabilityWindow, 0, 10)
	for day := 1; day <= 5; day++ {
		morningStart := 8 + rand.Intn(2) // 08:00 or 09:00
		windows = append(windows, domain.AvailabilityWindow{
			DayOfWeek: day,
			StartTime: fmt.Sprintf("%02d:00", morningStart),
			EndTime:   "12:00",
			IsActive:  true,
		})
		afternoonEnd := 16 + rand.Intn(2) // 16:00 or 17:00
		windows = append(windows, domain.AvailabilityWindow{
			DayOfWeek: day,
			StartTime: "13:00",
			EndTime:   fmt.Sprintf("%02d:00", afternoonEnd),
			IsActive:  true,
		})
	}
	return windows
}

var clientNames = []string{
	"J. Whitfield", "M. Arroyo", "C. Donnelly", "S. Vang", "K. Osei",
	"L. Marchetti", "A. Brennan", "T. Nakamura", "E. Sorensen", "D. Castillo",
}

// GenerateRandomAppointment places a half-hour or hour-long visit on a
// weekday in the next few weeks, aligned to the half hour.
func GenerateRandomAppointment(staffID int64) *domain.Appointment {
	day := rand.Intn(21) + 1
	hour := rand.Intn(8) + 9
	halfHours := rand.Intn(2) + 1

	start := time.Now().UTC().Truncate(24 * time.Hour).
		AddDate(0, 0, day).
		Add(time.Duration(hour) * time.Hour).
		Add(time.Duration(rand.Intn(2)) * 30 * time.Minute)

	return &domain.Appointment{
		StaffID:    staffID,
		ClientName: clientNames[rand.Intn(len(clientNames))],
		StartTime:  start,
		EndTime:    start.Add(time.Duration(halfHours) * 30 * time.Minute),
		Status:     domain.AppointmentScheduled,
	}
}

var seriesRules = []string{
	"FREQ=WEEKLY;BYDAY=MO",
	"FREQ=WEEKLY;BYDAY=TU",
	"FREQ=WEEKLY;BYDAY=WE",
	"FREQ=WEEKLY;INTERVAL=2;BYDAY=TH",
	"FREQ=WEEKLY;BYDAY=FR",
}

// GenerateRandomSeries anchors a weekly series at a recent weekday morning.
func GenerateRandomSeries(staffID int64, timezone string) *domain.RecurringSeries {
	anchor := time.Now().UTC().Truncate(24 * time.Hour).
		AddDate(0, 0, -rand.Intn(30)).
		Add(time.Duration(rand.Intn(8)+14) * time.Hour)

	return &domain.RecurringSeries{
		GroupID:         uuid.New(),
		StaffID:         staffID,
		ClientName:      clientNames[rand.Intn(len(clientNames))],
		AnchorStart:     anchor,
		DurationMinutes: 30 * (rand.Intn(3) + 1),
		RecurrenceRule:  seriesRules[rand.Intn(len(seriesRules))],
		Timezone:        timezone,
		IsActive:        true,
		EndType:         domain.SeriesEndNone,
	}
}
