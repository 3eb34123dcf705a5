package repository

import (
	"context"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// resignationColumns 是 resignations 表上除 id 以外的所有列，
// 列的顺序必须和 resignationScanDest 中的字段顺序保持一致
const resignationColumns = `
	user_id,
	resignation_date,
	reason,
	feedback,
	status,
	notice_period_start_date,
	notice_period_end_date,
	notice_period_complied,
	knowledge_transfer_completed,
	handover_notes,
	handover_completed_date,
	assets_returned,
	assets_return_date,
	assets_return_notes,
	exit_interview_completed,
	exit_interview_date,
	exit_interview_feedback,
	fnf_status,
	fnf_amount,
	fnf_processed_date,
	fnf_notes,
	experience_letter,
	relieving_letter,
	documents_uploaded_at,
	system_access_deactivated,
	system_access_deactivated_date,
	exit_closed,
	exit_closed_date,
	exit_closed_by,
	approved_by,
	approved_at,
	rejection_reason,
	created_at,
	updated_at,
	version
`

func resignationScanDest(rn *domain.Resignation) []any {
	return []any{
		&rn.UserID,
		&rn.ResignationDate,
		&rn.Reason,
		&rn.Feedback,
		&rn.Status,
		&rn.NoticePeriodStartDate,
		&rn.NoticePeriodEndDate,
		&rn.NoticePeriodComplied,
		&rn.KnowledgeTransferCompleted,
		&rn.HandoverNotes,
		&rn.HandoverCompletedDate,
		&rn.AssetsReturned,
		&rn.AssetsReturnDate,
		&rn.AssetsReturnNotes,
		&rn.ExitInterviewCompleted,
		&rn.ExitInterviewDate,
		&rn.ExitInterviewFeedback,
		&rn.FnfStatus,
		&rn.FnfAmount,
		&rn.FnfProcessedDate,
		&rn.FnfNotes,
		&rn.ExperienceLetter,
		&rn.RelievingLetter,
		&rn.DocumentsUploadedAt,
		&rn.SystemAccessDeactivated,
		&rn.SystemAccessDeactivatedDate,
		&rn.ExitClosed,
		&rn.ExitClosedDate,
		&rn.ExitClosedBy,
		&rn.ApprovedBy,
		&rn.ApprovedAt,
		&rn.RejectionReason,
		&rn.CreatedAt,
		&rn.UpdatedAt,
		&rn.Version,
	}
}

func (r *Repository) CreateResignation(rn *domain.Resignation) error {
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
		INSERT INTO resignations (user_id, resignation_date, reason, feedback)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at, version
	`
	args := []any{rn.UserID, rn.ResignationDate, rn.Reason, rn.Feedback}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&rn.ID, &rn.Status, &rn.CreatedAt, &rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	for _, asset := range rn.Assets {
		query = `
			INSERT INTO resignation_assets (resignation_id, asset_tag)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, rn.ID, asset); err != nil {
			return err
		}
	}

	// 为所有已知部门预置待审批的交接记录
	rn.Clearances = make([]domain.Clearance, 0, len(domain.AllClearanceDepartments()))
	for _, dept := range domain.AllClearanceDepartments() {
		query = `
			INSERT INTO resignation_clearances (resignation_id, department)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, rn.ID, dept); err != nil {
			return err
		}
		rn.Clearances = append(rn.Clearances, domain.Clearance{
			Department: dept,
			Status:     domain.ClearanceStatusPending,
		})
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetResignationByID(id int64) (*domain.Resignation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + resignationColumns + ` FROM resignations WHERE id = $1`

	rn := &domain.Resignation{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(resignationScanDest(rn)...); err != nil {
		return nil, err
	}

	if err := r.loadResignationChildren(ctx, rn); err != nil {
		return nil, err
	}

	return rn, nil
}

func (r *Repository) loadResignationChildren(ctx context.Context, rn *domain.Resignation) error {
	query := `SELECT asset_tag FROM resignation_assets WHERE resignation_id = $1 ORDER BY id`
	rows, err := r.dbpool.QueryContext(ctx, query, rn.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	rn.Assets = make([]string, 0)
	for rows.Next() {
		var asset string
		if err := rows.Scan(&asset); err != nil {
			return err
		}
		rn.Assets = append(rn.Assets, asset)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT department, status, approved_by, approved_at, notes
		FROM resignation_clearances
		WHERE resignation_id = $1
		ORDER BY department
	`
	clearanceRows, err := r.dbpool.QueryContext(ctx, query, rn.ID)
	if err != nil {
		return err
	}
	defer clearanceRows.Close()

	rn.Clearances = make([]domain.Clearance, 0)
	for clearanceRows.Next() {
		var c domain.Clearance
		if err := clearanceRows.Scan(&c.Department, &c.Status, &c.ApprovedBy, &c.ApprovedAt, &c.Notes); err != nil {
			return err
		}
		rn.Clearances = append(rn.Clearances, c)
	}
	if err := clearanceRows.Err(); err != nil {
		return err
	}

	query = `SELECT url FROM resignation_documents WHERE resignation_id = $1 ORDER BY id`
	documentRows, err := r.dbpool.QueryContext(ctx, query, rn.ID)
	if err != nil {
		return err
	}
	defer documentRows.Close()

	rn.OtherDocuments = make([]string, 0)
	for documentRows.Next() {
		var url string
		if err := documentRows.Scan(&url); err != nil {
			return err
		}
		rn.OtherDocuments = append(rn.OtherDocuments, url)
	}
	if err := documentRows.Err(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) getResignations(query string, args ...any) ([]*domain.Resignation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resignations := make([]*domain.Resignation, 0)
	resignationsMap := make(map[int64]*domain.Resignation)

	for rows.Next() {
		rn := &domain.Resignation{}
		dst := append([]any{&rn.ID}, resignationScanDest(rn)...)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		resignations = append(resignations, rn)
		resignationsMap[rn.ID] = rn
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 子表分别查询后按 resignation_id 归并，避免三张子表连接时产生笛卡尔积
	assetQuery := `SELECT resignation_id, asset_tag FROM resignation_assets ORDER BY id`
	assetRows, err := r.dbpool.QueryContext(ctx, assetQuery)
	if err != nil {
		return nil, err
	}
	defer assetRows.Close()

	for assetRows.Next() {
		var resignationID int64
		var asset string
		if err := assetRows.Scan(&resignationID, &asset); err != nil {
			return nil, err
		}
		if rn, exists := resignationsMap[resignationID]; exists {
			rn.Assets = append(rn.Assets, asset)
		}
	}
	if err := assetRows.Err(); err != nil {
		return nil, err
	}

	clearanceQuery := `
		SELECT resignation_id, department, status, approved_by, approved_at, notes
		FROM resignation_clearances
		ORDER BY department
	`
	clearanceRows, err := r.dbpool.QueryContext(ctx, clearanceQuery)
	if err != nil {
		return nil, err
	}
	defer clearanceRows.Close()

	for clearanceRows.Next() {
		var resignationID int64
		var c domain.Clearance
		if err := clearanceRows.Scan(&resignationID, &c.Department, &c.Status, &c.ApprovedBy, &c.ApprovedAt, &c.Notes); err != nil {
			return nil, err
		}
		if rn, exists := resignationsMap[resignationID]; exists {
			rn.Clearances = append(rn.Clearances, c)
		}
	}
	if err := clearanceRows.Err(); err != nil {
		return nil, err
	}

	documentQuery := `SELECT resignation_id, url FROM resignation_documents ORDER BY id`
	documentRows, err := r.dbpool.QueryContext(ctx, documentQuery)
	if err != nil {
		return nil, err
	}
	defer documentRows.Close()

	for documentRows.Next() {
		var resignationID int64
		var url string
		if err := documentRows.Scan(&resignationID, &url); err != nil {
			return nil, err
		}
		if rn, exists := resignationsMap[resignationID]; exists {
			rn.OtherDocuments = append(rn.OtherDocuments, url)
		}
	}
	if err := documentRows.Err(); err != nil {
		return nil, err
	}

	return resignations, nil
}

func (r *Repository) GetAllResignations() ([]*domain.Resignation, error) {
	query := `SELECT id, ` + resignationColumns + ` FROM resignations ORDER BY created_at DESC`
	return r.getResignations(query)
}

func (r *Repository) GetResignationsByUserID(userID int64) ([]*domain.Resignation, error) {
	query := `SELECT id, ` + resignationColumns + ` FROM resignations WHERE user_id = $1 ORDER BY created_at DESC`
	return r.getResignations(query, userID)
}

// CheckUserHasOpenResignation 检查该员工是否已经存在未被驳回且未关闭的离职申请
func (r *Repository) CheckUserHasOpenResignation(userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM resignations
			WHERE user_id = $1 AND status != 'rejected' AND exit_closed = FALSE
		)
	`

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// UpdateResignationStatus 持久化审批结果，使用版本号防止两个管理员同时审批
func (r *Repository) UpdateResignationStatus(rn *domain.Resignation) error {
	query := `
		UPDATE resignations
		SET
			status = $1,
			approved_by = $2,
			approved_at = $3,
			rejection_reason = $4,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rn.Status, rn.ApprovedBy, rn.ApprovedAt, rn.RejectionReason, rn.ID, rn.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rn.UpdatedAt, &rn.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteResignation(id int64) error {
	query := `
		DELETE FROM resignations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
