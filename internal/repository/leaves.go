package repository

import (
	"context"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

func (r *Repository) CreateLeaveRequest(lr *domain.LeaveRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leave_requests (user_id, type, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, version
	`

	args := []any{lr.UserID, lr.Type, lr.StartDate, lr.EndDate, lr.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lr.ID, &lr.Status, &lr.CreatedAt, &lr.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeaveRequestByID(id int64) (*domain.LeaveRequest, error) {
	query := `
		SELECT user_id, type, start_date, end_date, reason, status, reviewed_by, reviewed_at, review_comment, created_at, version
		FROM leave_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	lr := &domain.LeaveRequest{
		ID: id,
	}

	dst := []any{&lr.UserID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason, &lr.Status, &lr.ReviewedBy, &lr.ReviewedAt, &lr.ReviewComment, &lr.CreatedAt, &lr.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return lr, nil
}

func (r *Repository) getLeaveRequests(query string, args ...any) ([]*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.LeaveRequest, 0)
	for rows.Next() {
		lr := &domain.LeaveRequest{}
		dst := []any{&lr.ID, &lr.UserID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason, &lr.Status, &lr.ReviewedBy, &lr.ReviewedAt, &lr.ReviewComment, &lr.CreatedAt, &lr.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) GetAllLeaveRequests() ([]*domain.LeaveRequest, error) {
	query := `
		SELECT id, user_id, type, start_date, end_date, reason, status, reviewed_by, reviewed_at, review_comment, created_at, version
		FROM leave_requests ORDER BY created_at DESC
	`
	return r.getLeaveRequests(query)
}

func (r *Repository) GetLeaveRequestsByUserID(userID int64) ([]*domain.LeaveRequest, error) {
	query := `
		SELECT id, user_id, type, start_date, end_date, reason, status, reviewed_by, reviewed_at, review_comment, created_at, version
		FROM leave_requests WHERE user_id = $1 ORDER BY created_at DESC
	`
	return r.getLeaveRequests(query, userID)
}

// UpdateLeaveRequestReview 持久化审批结果，使用版本号防止重复审批
func (r *Repository) UpdateLeaveRequestReview(lr *domain.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET
			status = $1,
			reviewed_by = $2,
			reviewed_at = $3,
			review_comment = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lr.Status, lr.ReviewedBy, lr.ReviewedAt, lr.ReviewComment, lr.ID, lr.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lr.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteLeaveRequest(id int64) error {
	query := `
		DELETE FROM leave_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
