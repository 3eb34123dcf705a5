package domain

import (
	"testing"
	"time"
)

func attendanceAt(clockIn string, clockOut string) *AttendanceRecord {
	workDate := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)

	record := &AttendanceRecord{WorkDate: workDate}
	if clockIn != "" {
		t, _ := time.Parse("15:04", clockIn)
		in := time.Date(2026, 8, 3, t.Hour(), t.Minute(), 0, 0, time.Local)
		record.ClockIn = &in
	}
	if clockOut != "" {
		t, _ := time.Parse("15:04", clockOut)
		out := time.Date(2026, 8, 3, t.Hour(), t.Minute(), 0, 0, time.Local)
		record.ClockOut = &out
	}
	return record
}

func TestAttendanceStatus(t *testing.T) {
	tests := []struct {
		name     string
		clockIn  string
		clockOut string
		want     AttendanceStatus
	}{
		{"正常出勤", "08:55", "18:05", AttendanceStatusNormal},
		{"压线打卡", "09:00", "18:00", AttendanceStatusNormal},
		{"迟到", "09:10", "18:30", AttendanceStatusLate},
		{"早退", "08:30", "17:00", AttendanceStatusEarlyLeave},
		{"没有下班卡", "09:00", "", AttendanceStatusMissing},
		{"没有上班卡", "", "18:00", AttendanceStatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := attendanceAt(tt.clockIn, tt.clockOut)
			if got := record.Status(); got != tt.want {
				t.Errorf("Status() = %s, 期望 %s", got, tt.want)
			}
		})
	}
}

func TestPayrollNetSalary(t *testing.T) {
	p := &Payroll{BaseSalary: 10000, Allowance: 1500, Deduction: 300}
	if got := p.NetSalary(); got != 11200 {
		t.Errorf("NetSalary() = %f, 期望 11200", got)
	}
}
