package repository

import (
	"context"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// 离职流程的每个步骤都有独立的更新语句，只触碰属于该步骤的列。
// 步骤之间的并发更新互不冲突，因此这里不做版本号校验，
// 但每次更新仍会递增版本号，让顶层状态的审批操作能感知到变化

func (r *Repository) touchResignation(ctx context.Context, rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET updated_at = NOW(), version = version + 1
		WHERE id = $1
		RETURNING updated_at, version
	`
	return r.dbpool.QueryRowContext(ctx, query, rn.ID).Scan(&rn.UpdatedAt, &rn.Version)
}

func (r *Repository) UpdateNoticePeriod(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			notice_period_start_date = $1,
			notice_period_end_date = $2,
			notice_period_complied = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.NoticePeriodStartDate, rn.NoticePeriodEndDate, rn.NoticePeriodComplied, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateKnowledgeTransfer(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			knowledge_transfer_completed = $1,
			handover_notes = $2,
			handover_completed_date = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.KnowledgeTransferCompleted, rn.HandoverNotes, rn.HandoverCompletedDate, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAssetReturn(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			assets_returned = $1,
			assets_return_date = $2,
			assets_return_notes = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.AssetsReturned, rn.AssetsReturnDate, rn.AssetsReturnNotes, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

// UpdateClearance 写入某个部门的交接审批结果，该部门已有记录时覆盖旧记录
func (r *Repository) UpdateClearance(rn *domain.Resignation, department domain.ClearanceDepartment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	var clearance *domain.Clearance
	for i := range rn.Clearances {
		if rn.Clearances[i].Department == department {
			clearance = &rn.Clearances[i]
			break
		}
	}
	if clearance == nil {
		return ErrClearanceNotLoaded
	}

	query := `
		INSERT INTO resignation_clearances (resignation_id, department, status, approved_by, approved_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resignation_id, department) DO UPDATE
		SET status = EXCLUDED.status,
			approved_by = EXCLUDED.approved_by,
			approved_at = EXCLUDED.approved_at,
			notes = EXCLUDED.notes
	`

	args := []any{rn.ID, clearance.Department, clearance.Status, clearance.ApprovedBy, clearance.ApprovedAt, clearance.Notes}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return r.touchResignation(ctx, rn)
}

func (r *Repository) UpdateExitInterview(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			exit_interview_completed = $1,
			exit_interview_date = $2,
			exit_interview_feedback = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.ExitInterviewCompleted, rn.ExitInterviewDate, rn.ExitInterviewFeedback, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateFnf(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			fnf_status = $1,
			fnf_amount = $2,
			fnf_processed_date = $3,
			fnf_notes = $4,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $5
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.FnfStatus, rn.FnfAmount, rn.FnfProcessedDate, rn.FnfNotes, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

// UpdateExitDocuments 更新离职证明等文档地址，其余文档先删后插
func (r *Repository) UpdateExitDocuments(rn *domain.Resignation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE resignations
		SET
			experience_letter = $1,
			relieving_letter = $2,
			documents_uploaded_at = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`
	args := []any{rn.ExperienceLetter, rn.RelievingLetter, rn.DocumentsUploadedAt, rn.ID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	query = `DELETE FROM resignation_documents WHERE resignation_id = $1`
	if _, err := tx.ExecContext(ctx, query, rn.ID); err != nil {
		return err
	}

	for _, url := range rn.OtherDocuments {
		query = `
			INSERT INTO resignation_documents (resignation_id, url)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, rn.ID, url); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateSystemAccess(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			system_access_deactivated = $1,
			system_access_deactivated_date = $2,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $3
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.SystemAccessDeactivated, rn.SystemAccessDeactivatedDate, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateExitClosure(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			exit_closed = $1,
			exit_closed_date = $2,
			exit_closed_by = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.ExitClosed, rn.ExitClosedDate, rn.ExitClosedBy, rn.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}
