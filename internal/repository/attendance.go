package repository

import (
	"context"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// ClockIn 记录上班打卡，同一天重复打卡时由唯一约束报错
func (r *Repository) ClockIn(record *domain.AttendanceRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO attendance_records (user_id, work_date, clock_in)
		VALUES ($1, $2, $3)
		RETURNING id, version
	`

	args := []any{record.UserID, record.WorkDate, record.ClockIn}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.Version); err != nil {
		return err
	}

	return nil
}

// ClockOut 记录下班打卡，重复打卡时以最后一次为准
func (r *Repository) ClockOut(record *domain.AttendanceRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE attendance_records
		SET clock_out = $1, version = version + 1
		WHERE user_id = $2 AND work_date = $3
		RETURNING id, clock_in, version
	`

	args := []any{record.ClockOut, record.UserID, record.WorkDate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.ClockIn, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) getAttendanceRecords(query string, args ...any) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		record := &domain.AttendanceRecord{}
		dst := []any{&record.ID, &record.UserID, &record.WorkDate, &record.ClockIn, &record.ClockOut, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetAttendanceRecordsByUserIDAndMonth 获取某个员工某个月的考勤记录，month 格式为 YYYY-MM
func (r *Repository) GetAttendanceRecordsByUserIDAndMonth(userID int64, month string) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, user_id, work_date, clock_in, clock_out, version
		FROM attendance_records
		WHERE user_id = $1 AND TO_CHAR(work_date, 'YYYY-MM') = $2
		ORDER BY work_date
	`
	return r.getAttendanceRecords(query, userID, month)
}

func (r *Repository) GetAttendanceRecordsByDate(date time.Time) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, user_id, work_date, clock_in, clock_out, version
		FROM attendance_records
		WHERE work_date = $1
		ORDER BY user_id
	`
	return r.getAttendanceRecords(query, date)
}
