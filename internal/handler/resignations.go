package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// resignationView 在离职申请之上附加推导出来的各步骤状态和总体状态
type resignationView struct {
	*domain.Resignation
	OverallStatus           domain.ResignationStatus `json:"overallStatus"`
	NoticePeriodStatus      domain.StepStatus        `json:"noticePeriodStatus"`
	KnowledgeTransferStatus domain.StepStatus        `json:"knowledgeTransferStatus"`
	AssetReturnStatus       domain.StepStatus        `json:"assetReturnStatus"`
	ClearanceStatus         domain.StepStatus        `json:"clearanceStatus"`
	ExitInterviewStatus     domain.StepStatus        `json:"exitInterviewStatus"`
	SystemAccessStatus      domain.StepStatus        `json:"systemAccessStatus"`
	ExitClosureStatus       domain.StepStatus        `json:"exitClosureStatus"`
}

func newResignationView(rn *domain.Resignation) *resignationView {
	return &resignationView{
		Resignation:             rn,
		OverallStatus:           rn.OverallStatus(),
		NoticePeriodStatus:      rn.NoticePeriodStatus(),
		KnowledgeTransferStatus: rn.KnowledgeTransferStatus(),
		AssetReturnStatus:       rn.AssetReturnStatus(),
		ClearanceStatus:         rn.ClearanceOverallStatus(),
		ExitInterviewStatus:     rn.ExitInterviewStatus(),
		SystemAccessStatus:      rn.SystemAccessStatus(),
		ExitClosureStatus:       rn.ExitClosureStatus(),
	}
}

func newResignationViews(resignations []*domain.Resignation) []*resignationView {
	views := make([]*resignationView, 0, len(resignations))
	for _, rn := range resignations {
		views = append(views, newResignationView(rn))
	}
	return views
}

func (h *Handler) SubmitResignation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		ResignationDate string   `json:"resignationDate" validate:"required"`
		Reason          string   `json:"reason" validate:"required"`
		Feedback        string   `json:"feedback"`
		Assets          []string `json:"assets"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	resignationDate, err := time.Parse("2006-01-02", req.ResignationDate)
	if err != nil {
		h.errorResponse(w, r, "离职日期格式应为 YYYY-MM-DD")
		return
	}

	// 同一员工同时只能有一份未了结的离职申请
	hasOpen, err := h.repository.CheckUserHasOpenResignation(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if hasOpen {
		h.errorResponse(w, r, "已存在未完成的离职申请")
		return
	}

	rn := &domain.Resignation{
		UserID:          myInfo.ID,
		ResignationDate: resignationDate,
		Reason:          req.Reason,
		Feedback:        req.Feedback,
		Assets:          req.Assets,
	}

	if err := h.repository.CreateResignation(rn); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交离职申请成功", newResignationView(rn))
}

func (h *Handler) GetAllResignations(w http.ResponseWriter, r *http.Request) {
	resignations, err := h.repository.GetAllResignations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有离职申请成功", newResignationViews(resignations))
}

func (h *Handler) GetMyResignations(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	resignations, err := h.repository.GetResignationsByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的离职申请成功", newResignationViews(resignations))
}

func (h *Handler) GetResignation(w http.ResponseWriter, r *http.Request) {
	rn := r.Context().Value(ResignationCtx).(*domain.Resignation)

	// 普通员工只能查看自己的离职申请
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))
	if role == domain.RoleEmployee {
		sub, err := strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if rn.UserID != sub {
			h.errorResponse(w, r, "权限不足")
			return
		}
	}

	h.successResponse(w, r, "获取离职申请成功", newResignationView(rn))
}

func (h *Handler) UpdateResignationStatus(w http.ResponseWriter, r *http.Request) {
	rn := r.Context().Value(ResignationCtx).(*domain.Resignation)

	var req struct {
		Approved        bool   `json:"approved"`
		RejectionReason string `json:"rejectionReason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.Approved {
		err = rn.Approve(sub, time.Now())
	} else {
		err = rn.Reject(req.RejectionReason, time.Now())
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResignationNotPending),
			errors.Is(err, domain.ErrRejectionReasonRequired):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpdateResignationStatus(rn); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "离职申请已被他人审批，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知员工审批结果
	applicant, err := h.repository.GetUserByID(rn.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "resignation_result",
		To:   applicant.Email,
		Data: domain.ResignationResultMailData{
			FullName:        applicant.FullName,
			Approved:        req.Approved,
			RejectionReason: rn.RejectionReason,
		},
	}

	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "审批离职申请成功", newResignationView(rn))
}

func (h *Handler) DeleteResignation(w http.ResponseWriter, r *http.Request) {
	rn := r.Context().Value(ResignationCtx).(*domain.Resignation)

	if err := h.repository.DeleteResignation(rn.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除离职申请成功", nil)
}
