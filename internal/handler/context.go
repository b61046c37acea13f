package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	UserInfoCtx         ContextKey = "userInfo"
	StaffInfoCtx        ContextKey = "staffInfo"
	AppointmentCtx      ContextKey = "appointment"
	SeriesCtx           ContextKey = "series"
	ManualBlockCtx      ContextKey = "manualBlock"
	ExternalCalendarCtx ContextKey = "externalCalendar"
)
