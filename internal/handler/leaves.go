package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

func (h *Handler) SubmitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Type      string `json:"type" validate:"required,oneof=事假 病假 年假 调休"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, endDate, err := utils.ParseLeaveDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	lr := &domain.LeaveRequest{
		UserID:    myInfo.ID,
		Type:      domain.LeaveType(req.Type),
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}

	if err := h.repository.CreateLeaveRequest(lr); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交请假申请成功", lr)
}

func (h *Handler) GetAllLeaveRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetAllLeaveRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有请假申请成功", requests)
}

func (h *Handler) GetMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requests, err := h.repository.GetLeaveRequestsByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的请假申请成功", requests)
}

func (h *Handler) ReviewLeaveRequest(w http.ResponseWriter, r *http.Request) {
	lr := r.Context().Value(LeaveRequestCtx).(*domain.LeaveRequest)

	var req struct {
		Approved      bool   `json:"approved"`
		ReviewComment string `json:"reviewComment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if lr.Status != domain.LeaveStatusPending {
		h.errorResponse(w, r, "只有待处理的请假申请才能进行审批")
		return
	}
	if !req.Approved && req.ReviewComment == "" {
		h.errorResponse(w, r, "驳回请假申请时必须填写审批意见")
		return
	}

	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	if req.Approved {
		lr.Status = domain.LeaveStatusApproved
	} else {
		lr.Status = domain.LeaveStatusRejected
	}
	lr.ReviewedBy = &sub
	lr.ReviewedAt = &now
	lr.ReviewComment = req.ReviewComment

	if err := h.repository.UpdateLeaveRequestReview(lr); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请假申请已被他人审批，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知员工审批结果
	applicant, err := h.repository.GetUserByID(lr.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "leave_result",
		To:   applicant.Email,
		Data: domain.LeaveResultMailData{
			FullName:      applicant.FullName,
			LeaveType:     string(lr.Type),
			StartDate:     lr.StartDate.Format("2006-01-02"),
			EndDate:       lr.EndDate.Format("2006-01-02"),
			Approved:      req.Approved,
			ReviewComment: lr.ReviewComment,
		},
	}

	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "审批请假申请成功", lr)
}

// CancelLeaveRequest 员工撤回自己的待处理请假申请
func (h *Handler) CancelLeaveRequest(w http.ResponseWriter, r *http.Request) {
	lr := r.Context().Value(LeaveRequestCtx).(*domain.LeaveRequest)

	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if lr.UserID != sub {
		h.errorResponse(w, r, "只能撤回自己的请假申请")
		return
	}
	if lr.Status != domain.LeaveStatusPending {
		h.errorResponse(w, r, "只有待处理的请假申请才能撤回")
		return
	}

	if err := h.repository.DeleteLeaveRequest(lr.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "撤回请假申请成功", nil)
}
