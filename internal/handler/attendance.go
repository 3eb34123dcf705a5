package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

type attendanceView struct {
	*domain.AttendanceRecord
	Status domain.AttendanceStatus `json:"status"`
}

func newAttendanceViews(records []*domain.AttendanceRecord) []*attendanceView {
	views := make([]*attendanceView, 0, len(records))
	for _, record := range records {
		views = append(views, &attendanceView{
			AttendanceRecord: record,
			Status:           record.Status(),
		})
	}
	return views
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	now := time.Now()
	record := &domain.AttendanceRecord{
		UserID:   myInfo.ID,
		WorkDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		ClockIn:  &now,
	}

	if err := h.repository.ClockIn(record); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "attendance_records_user_id_work_date_key":
			h.errorResponse(w, r, "今天已打过上班卡")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "上班打卡成功", record)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	record := &domain.AttendanceRecord{
		UserID:   sub,
		WorkDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		ClockOut: &now,
	}

	if err := h.repository.ClockOut(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "今天还没有打过上班卡")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "下班打卡成功", record)
}

func (h *Handler) GetMyAttendanceRecords(w http.ResponseWriter, r *http.Request) {
	sub, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if err := utils.ValidateMonth(month); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	records, err := h.repository.GetAttendanceRecordsByUserIDAndMonth(sub, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的考勤记录成功", newAttendanceViews(records))
}

func (h *Handler) GetAttendanceRecordsByDate(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		dateParam = time.Now().Format("2006-01-02")
	}

	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "日期格式应为 YYYY-MM-DD")
		return
	}

	records, err := h.repository.GetAttendanceRecordsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取考勤记录成功", newAttendanceViews(records))
}
