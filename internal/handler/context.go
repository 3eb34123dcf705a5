package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	UserInfoCtx     ContextKey = "userInfo"
	ResignationCtx  ContextKey = "resignation"
	LeaveRequestCtx ContextKey = "leaveRequest"
	AnnouncementCtx ContextKey = "announcement"
	TeamCtx         ContextKey = "team"
)
