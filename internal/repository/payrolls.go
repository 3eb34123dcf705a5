package repository

import (
	"context"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// UpsertPayrollDraft 创建或覆盖某个员工某个月的工资草稿，已发放的工资单不允许覆盖
func (r *Repository) UpsertPayrollDraft(p *domain.Payroll) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO payrolls (user_id, month, base_salary, allowance, deduction)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, month) DO UPDATE
		SET base_salary = EXCLUDED.base_salary,
			allowance = EXCLUDED.allowance,
			deduction = EXCLUDED.deduction,
			version = payrolls.version + 1
		WHERE payrolls.status = '草稿'
		RETURNING id, status, issued_at, created_at, version
	`

	args := []any{p.UserID, p.Month, p.BaseSalary, p.Allowance, p.Deduction}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Status, &p.IssuedAt, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPayrollByID(id int64) (*domain.Payroll, error) {
	query := `
		SELECT user_id, month, base_salary, allowance, deduction, status, issued_at, created_at, version
		FROM payrolls WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Payroll{
		ID: id,
	}

	dst := []any{&p.UserID, &p.Month, &p.BaseSalary, &p.Allowance, &p.Deduction, &p.Status, &p.IssuedAt, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) getPayrolls(query string, args ...any) ([]*domain.Payroll, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payrolls := make([]*domain.Payroll, 0)
	for rows.Next() {
		p := &domain.Payroll{}
		dst := []any{&p.ID, &p.UserID, &p.Month, &p.BaseSalary, &p.Allowance, &p.Deduction, &p.Status, &p.IssuedAt, &p.CreatedAt, &p.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		payrolls = append(payrolls, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payrolls, nil
}

func (r *Repository) GetPayrollsByUserID(userID int64) ([]*domain.Payroll, error) {
	query := `
		SELECT id, user_id, month, base_salary, allowance, deduction, status, issued_at, created_at, version
		FROM payrolls WHERE user_id = $1 ORDER BY month DESC
	`
	return r.getPayrolls(query, userID)
}

func (r *Repository) GetPayrollsByMonth(month string) ([]*domain.Payroll, error) {
	query := `
		SELECT id, user_id, month, base_salary, allowance, deduction, status, issued_at, created_at, version
		FROM payrolls WHERE month = $1 ORDER BY user_id
	`
	return r.getPayrolls(query, month)
}

// IssuePayroll 发放工资单，使用版本号防止重复发放
func (r *Repository) IssuePayroll(p *domain.Payroll) error {
	query := `
		UPDATE payrolls
		SET
			status = $1,
			issued_at = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.Status, p.IssuedAt, p.ID, p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}
