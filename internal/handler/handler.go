package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/staffdesk-dev/hr-manager/backend/internal/config"
	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 员工需要能看到同事的基本信息
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/resignations", func(r chi.Router) {
			r.With(h.myInfo).Post("/", h.SubmitResignation)
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Get("/", h.GetAllResignations)
			r.With(h.myInfo).Get("/my", h.GetMyResignations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.resignation)
				r.Get("/", h.GetResignation)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Patch("/status", h.UpdateResignationStatus)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteResignation)

				// 离职流程的九个步骤各自有独立的路由和载荷，
				// 不存在按字符串分发的通用入口
				r.Route("/exit-process", func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin}))
					r.Use(h.exitProcessGuard)
					r.Patch("/notice-period", h.UpdateNoticePeriod)
					r.Patch("/knowledge-transfer", h.UpdateKnowledgeTransfer)
					r.Patch("/asset-return", h.UpdateAssetReturn)
					r.Patch("/clearances", h.UpdateClearance)
					r.Patch("/exit-interview", h.UpdateExitInterview)
					r.Patch("/fnf", h.UpdateFnf)
					r.Patch("/documents", h.UpdateExitDocuments)
					r.Patch("/system-access", h.UpdateSystemAccess)
					r.Patch("/exit-closure", h.UpdateExitClosure)
				})
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.With(h.myInfo).Post("/", h.SubmitLeaveRequest)
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Get("/", h.GetAllLeaveRequests)
			r.Get("/my", h.GetMyLeaveRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.leaveRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Patch("/review", h.ReviewLeaveRequest)
				r.Delete("/", h.CancelLeaveRequest)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.With(h.myInfo).Post("/clock-in", h.ClockIn)
			r.Post("/clock-out", h.ClockOut)
			r.Get("/my", h.GetMyAttendanceRecords)
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Get("/", h.GetAttendanceRecordsByDate)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Post("/", h.CreateAnnouncement)
			r.Get("/", h.GetAllAnnouncements)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.announcement)
				r.Get("/", h.GetAnnouncement)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Patch("/", h.UpdateAnnouncement)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Delete("/", h.DeleteAnnouncement)
				r.Post("/vote", h.VoteOnPoll)
			})
		})

		r.Route("/payrolls", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin}))
			r.Post("/", h.UpsertPayrollDraft)
			r.Get("/", h.GetPayrollsByMonth)
			r.Post("/{id}/issue", h.IssuePayroll)
		})
		r.Get("/my-payrolls", h.GetMyPayrolls)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.GetAllTeams)
			r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Post("/", h.CreateTeam)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.team)
				r.Get("/", h.GetTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Patch("/", h.UpdateTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Delete("/", h.DeleteTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Post("/members", h.AddTeamMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleHR, domain.RoleAdmin})).Delete("/members/{userID}", h.RemoveTeamMember)
			})
		})
	})
}
