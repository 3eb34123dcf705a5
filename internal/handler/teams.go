package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name" validate:"required"`
		Description string  `json:"description"`
		LeaderID    int64   `json:"leaderID" validate:"required"`
		MemberIDs   []int64 `json:"memberIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	t := &domain.Team{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	}
	for _, userID := range req.MemberIDs {
		t.Members = append(t.Members, domain.TeamMember{UserID: userID})
	}

	if err := h.repository.CreateTeam(t); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.errorResponse(w, r, "团队名称已存在")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "team_members_user_id_fkey":
			h.errorResponse(w, r, "团队成员中包含不存在的用户")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建团队成功", t)
}

func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.repository.GetAllTeams()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有团队成功", teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TeamCtx).(*domain.Team)
	h.successResponse(w, r, "获取团队成功", t)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TeamCtx).(*domain.Team)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		LeaderID    *int64  `json:"leaderID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.LeaderID != nil {
		t.LeaderID = *req.LeaderID
	}

	if err := h.repository.UpdateTeam(t); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "团队信息已被他人修改，请刷新后重试")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.errorResponse(w, r, "团队名称已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新团队成功", t)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TeamCtx).(*domain.Team)

	if err := h.repository.DeleteTeam(t.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除团队成功", nil)
}

func (h *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TeamCtx).(*domain.Team)

	var req struct {
		UserID int64 `json:"userID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.AddTeamMember(t.ID, req.UserID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "team_members_user_id_fkey":
			h.errorResponse(w, r, "用户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "添加团队成员成功", nil)
}

func (h *Handler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TeamCtx).(*domain.Team)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	if err := h.repository.RemoveTeamMember(t.ID, userID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "移除团队成员成功", nil)
}
