package domain

import "time"

type AttendanceStatus string

const (
	AttendanceStatusNormal     AttendanceStatus = "正常"
	AttendanceStatusLate       AttendanceStatus = "迟到"
	AttendanceStatusEarlyLeave AttendanceStatus = "早退"
	AttendanceStatusMissing    AttendanceStatus = "缺卡"
)

type AttendanceRecord struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"userID"`
	WorkDate time.Time  `json:"workDate"`
	ClockIn  *time.Time `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut"`
	Version  int32      `json:"-"`
}

// Status 根据打卡时间推导考勤状态，工作时间按 09:00 ~ 18:00 计算
func (a *AttendanceRecord) Status() AttendanceStatus {
	if a.ClockIn == nil || a.ClockOut == nil {
		return AttendanceStatusMissing
	}

	workStart := time.Date(a.WorkDate.Year(), a.WorkDate.Month(), a.WorkDate.Day(), 9, 0, 0, 0, a.WorkDate.Location())
	workEnd := time.Date(a.WorkDate.Year(), a.WorkDate.Month(), a.WorkDate.Day(), 18, 0, 0, 0, a.WorkDate.Location())

	if a.ClockIn.After(workStart) {
		return AttendanceStatusLate
	}
	if a.ClockOut.Before(workEnd) {
		return AttendanceStatusEarlyLeave
	}
	return AttendanceStatusNormal
}
