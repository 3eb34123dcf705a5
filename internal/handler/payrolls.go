package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

type payrollView struct {
	*domain.Payroll
	NetSalary float64 `json:"netSalary"`
}

func newPayrollViews(payrolls []*domain.Payroll) []*payrollView {
	views := make([]*payrollView, 0, len(payrolls))
	for _, p := range payrolls {
		views = append(views, &payrollView{
			Payroll:   p,
			NetSalary: p.NetSalary(),
		})
	}
	return views
}

func (h *Handler) UpsertPayrollDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int64   `json:"userID" validate:"required"`
		Month      string  `json:"month" validate:"required"`
		BaseSalary float64 `json:"baseSalary" validate:"gte=0"`
		Allowance  float64 `json:"allowance" validate:"gte=0"`
		Deduction  float64 `json:"deduction" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	p := &domain.Payroll{
		UserID:     req.UserID,
		Month:      req.Month,
		BaseSalary: req.BaseSalary,
		Allowance:  req.Allowance,
		Deduction:  req.Deduction,
	}

	if err := h.repository.UpsertPayrollDraft(p); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// upsert 的 WHERE 条件不满足时不会返回任何行
			h.errorResponse(w, r, "该月工资单已发放，不能再修改")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "保存工资草稿成功", &payrollView{Payroll: p, NetSalary: p.NetSalary()})
}

func (h *Handler) GetPayrollsByMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if err := utils.ValidateMonth(month); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	payrolls, err := h.repository.GetPayrollsByMonth(month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取工资单成功", newPayrollViews(payrolls))
}

func (h *Handler) IssuePayroll(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "工资单ID无效")
		return
	}

	p, err := h.repository.GetPayrollByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "工资单不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if p.Status != domain.PayrollStatusDraft {
		h.errorResponse(w, r, "工资单已发放")
		return
	}

	now := time.Now()
	p.Status = domain.PayrollStatusIssued
	p.IssuedAt = &now

	if err := h.repository.IssuePayroll(p); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "工资单已被他人操作，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "发放工资成功", &payrollView{Payroll: p, NetSalary: p.NetSalary()})
}

func (h *Handler) GetMyPayrolls(w http.ResponseWriter, r *http.Request) {
	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	payrolls, err := h.repository.GetPayrollsByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的工资单成功", newPayrollViews(payrolls))
}
