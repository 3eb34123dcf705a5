package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

// 离职流程的九个步骤各自有强类型的请求载荷和独立的持久化语句。
// 所有步骤 handler 都遵循同一个套路：
// 解析载荷 -> Apply 到内存副本 -> 只持久化该步骤的列 -> 返回最新视图

func (h *Handler) actorID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
}

func (h *Handler) applyExitStep(w http.ResponseWriter, r *http.Request, update domain.ExitStepUpdate, persist func(*domain.Resignation) error, message string) {
	rn := r.Context().Value(ResignationCtx).(*domain.Resignation)

	actorID, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := update.Apply(rn, actorID, time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := persist(rn); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, message, newResignationView(rn))
}

func (h *Handler) UpdateNoticePeriod(w http.ResponseWriter, r *http.Request) {
	var update domain.NoticePeriodUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if update.StartDate != nil && update.EndDate != nil && update.EndDate.Before(*update.StartDate) {
		h.errorResponse(w, r, "通知期结束日期不能早于开始日期")
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateNoticePeriod, "更新通知期成功")
}

func (h *Handler) UpdateKnowledgeTransfer(w http.ResponseWriter, r *http.Request) {
	var update domain.KnowledgeTransferUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateKnowledgeTransfer, "更新工作交接成功")
}

func (h *Handler) UpdateAssetReturn(w http.ResponseWriter, r *http.Request) {
	var update domain.AssetReturnUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateAssetReturn, "更新资产归还成功")
}

func (h *Handler) UpdateClearance(w http.ResponseWriter, r *http.Request) {
	var update domain.ClearanceUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := utils.ParseClearanceDepartment(string(update.Department)); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	persist := func(rn *domain.Resignation) error {
		return h.repository.UpdateClearance(rn, update.Department)
	}
	h.applyExitStep(w, r, update, persist, "更新部门交接审批成功")
}

func (h *Handler) UpdateExitInterview(w http.ResponseWriter, r *http.Request) {
	var update domain.ExitInterviewUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateExitInterview, "更新离职面谈成功")
}

func (h *Handler) UpdateFnf(w http.ResponseWriter, r *http.Request) {
	var update domain.FnfUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateFnf, "更新薪资结算成功")
}

func (h *Handler) UpdateExitDocuments(w http.ResponseWriter, r *http.Request) {
	var update domain.DocumentsUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateExitDocuments, "更新离职文档成功")
}

func (h *Handler) UpdateSystemAccess(w http.ResponseWriter, r *http.Request) {
	var update domain.SystemAccessUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.applyExitStep(w, r, update, h.repository.UpdateSystemAccess, "更新系统权限回收成功")
}

func (h *Handler) UpdateExitClosure(w http.ResponseWriter, r *http.Request) {
	var update domain.ExitClosureUpdate
	if err := h.readJSON(r, &update); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rn := r.Context().Value(ResignationCtx).(*domain.Resignation)

	actorID, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := update.Apply(rn, actorID, time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateExitClosure(rn); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 离职流程办结后停用员工账号
	if rn.ExitClosed {
		user, err := h.repository.GetUserByID(rn.UserID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if user.IsActive {
			user.IsActive = false
			if err := h.repository.UpdateUser(user); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	h.successResponse(w, r, "更新离职办结成功", newResignationView(rn))
}
