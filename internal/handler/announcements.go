package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title" validate:"required"`
		Content  string `json:"content" validate:"required"`
		IsPinned bool   `json:"isPinned"`
		Poll     *struct {
			Question string   `json:"question" validate:"required"`
			Options  []string `json:"options" validate:"required,min=2,dive,required"`
		} `json:"poll"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	a := &domain.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: sub,
		IsPinned: req.IsPinned,
	}

	if req.Poll != nil {
		options := make([]domain.PollOption, 0, len(req.Poll.Options))
		for _, text := range req.Poll.Options {
			options = append(options, domain.PollOption{Text: text})
		}
		a.Poll = &domain.Poll{
			Question: req.Poll.Question,
			Options:  options,
		}
	}

	if err := h.repository.CreateAnnouncement(a); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "发布公告成功", a)
}

func (h *Handler) GetAllAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repository.GetAllAnnouncements()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有公告成功", announcements)
}

func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	// 附带投票时顺便查出当前用户投过的选项
	if a.Poll != nil {
		sub, err := h.actorID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myOptionID, err := h.repository.GetPollVoteByUserID(a.Poll.ID, sub)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		a.Poll.MyOptionID = myOptionID
	}

	h.successResponse(w, r, "获取公告成功", a)
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		IsPinned *bool   `json:"isPinned"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.IsPinned != nil {
		a.IsPinned = *req.IsPinned
	}

	if err := h.repository.UpdateAnnouncement(a); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "公告已被他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新公告成功", a)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	if err := h.repository.DeleteAnnouncement(a.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除公告成功", nil)
}

func (h *Handler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AnnouncementCtx).(*domain.Announcement)

	if a.Poll == nil {
		h.errorResponse(w, r, "该公告没有附带投票")
		return
	}

	var req struct {
		OptionID int64 `json:"optionID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidatePollOption(a.Poll, req.OptionID); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.VoteOnPoll(a.Poll.ID, req.OptionID, sub); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "投票成功", nil)
}
