package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AppointmentConfirmationMailData struct {
	StaffName  string `json:"staffName"`
	ClientName string `json:"clientName"`
	StartsAt   string `json:"startsAt"` // formatted in the staff member's timezone
	EndsAt     string `json:"endsAt"`
}
