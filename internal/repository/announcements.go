package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

func (r *Repository) CreateAnnouncement(a *domain.Announcement) error {
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
		INSERT INTO announcements (title, content, author_id, is_pinned)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`
	args := []any{a.Title, a.Content, a.AuthorID, a.IsPinned}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	if a.Poll != nil {
		query = `
			INSERT INTO polls (announcement_id, question)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, a.ID, a.Poll.Question).Scan(&a.Poll.ID); err != nil {
			return err
		}

		for i := range a.Poll.Options {
			query = `
				INSERT INTO poll_options (poll_id, text)
				VALUES ($1, $2)
				RETURNING id
			`
			if err := tx.QueryRowContext(ctx, query, a.Poll.ID, a.Poll.Options[i].Text).Scan(&a.Poll.Options[i].ID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAllAnnouncements 获取所有公告及其投票，置顶的公告排在前面
func (r *Repository) GetAllAnnouncements() ([]*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			a.id,
			a.title,
			a.content,
			a.author_id,
			a.is_pinned,
			a.created_at,
			a.version,
			p.id,
			p.question,
			po.id,
			po.text,
			(SELECT COUNT(*) FROM poll_votes pv WHERE pv.poll_option_id = po.id)
		FROM announcements a
		LEFT JOIN polls p ON a.id = p.announcement_id
		LEFT JOIN poll_options po ON p.id = po.poll_id
		ORDER BY a.is_pinned DESC, a.created_at DESC, po.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := make([]*domain.Announcement, 0)
	announcementsMap := make(map[int64]*domain.Announcement)

	for rows.Next() {
		var row struct {
			ID        int64
			Title     string
			Content   string
			AuthorID  int64
			IsPinned  bool
			CreatedAt time.Time
			Version   int32

			PollID       sql.NullInt64
			PollQuestion sql.NullString
			OptionID     sql.NullInt64
			OptionText   sql.NullString
			OptionVotes  sql.NullInt64
		}

		dst := []any{
			&row.ID,
			&row.Title,
			&row.Content,
			&row.AuthorID,
			&row.IsPinned,
			&row.CreatedAt,
			&row.Version,
			&row.PollID,
			&row.PollQuestion,
			&row.OptionID,
			&row.OptionText,
			&row.OptionVotes,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		a, exists := announcementsMap[row.ID]
		if !exists {
			// 说明此时是第一次查到这个公告，需要初始化
			a = &domain.Announcement{
				ID:        row.ID,
				Title:     row.Title,
				Content:   row.Content,
				AuthorID:  row.AuthorID,
				IsPinned:  row.IsPinned,
				CreatedAt: row.CreatedAt,
				Version:   row.Version,
			}
			announcementsMap[row.ID] = a
			announcements = append(announcements, a)
		}

		// 如果 pollID 为空，则表示这个公告没有附带投票
		if !row.PollID.Valid {
			continue
		}

		if a.Poll == nil {
			a.Poll = &domain.Poll{
				ID:       row.PollID.Int64,
				Question: row.PollQuestion.String,
				Options:  make([]domain.PollOption, 0),
			}
		}

		if !row.OptionID.Valid {
			continue
		}

		a.Poll.Options = append(a.Poll.Options, domain.PollOption{
			ID:    row.OptionID.Int64,
			Text:  row.OptionText.String,
			Votes: row.OptionVotes.Int64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *Repository) GetAnnouncementByID(id int64) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT title, content, author_id, is_pinned, created_at, version
		FROM announcements WHERE id = $1
	`

	a := &domain.Announcement{
		ID: id,
	}

	dst := []any{&a.Title, &a.Content, &a.AuthorID, &a.IsPinned, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	query = `
		SELECT
			p.id,
			p.question,
			po.id,
			po.text,
			(SELECT COUNT(*) FROM poll_votes pv WHERE pv.poll_option_id = po.id)
		FROM polls p
		LEFT JOIN poll_options po ON p.id = po.poll_id
		WHERE p.announcement_id = $1
		ORDER BY po.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row struct {
			PollID       int64
			PollQuestion string
			OptionID     sql.NullInt64
			OptionText   sql.NullString
			OptionVotes  sql.NullInt64
		}

		if err := rows.Scan(&row.PollID, &row.PollQuestion, &row.OptionID, &row.OptionText, &row.OptionVotes); err != nil {
			return nil, err
		}

		if a.Poll == nil {
			a.Poll = &domain.Poll{
				ID:       row.PollID,
				Question: row.PollQuestion,
				Options:  make([]domain.PollOption, 0),
			}
		}

		if !row.OptionID.Valid {
			continue
		}

		a.Poll.Options = append(a.Poll.Options, domain.PollOption{
			ID:    row.OptionID.Int64,
			Text:  row.OptionText.String,
			Votes: row.OptionVotes.Int64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) UpdateAnnouncement(a *domain.Announcement) error {
	// 投票一旦创建就不允许修改，否则已有的投票结果会失去意义
	query := `
		UPDATE announcements
		SET
			title = $1,
			content = $2,
			is_pinned = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Title, a.Content, a.IsPinned, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAnnouncement(id int64) error {
	query := `
		DELETE FROM announcements WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// VoteOnPoll 记录投票，同一个员工重复投票时覆盖之前的选择
func (r *Repository) VoteOnPoll(pollID int64, optionID int64, userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO poll_votes (poll_id, poll_option_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, user_id) DO UPDATE
		SET poll_option_id = EXCLUDED.poll_option_id, voted_at = NOW()
	`

	if _, err := r.dbpool.ExecContext(ctx, query, pollID, optionID, userID); err != nil {
		return err
	}

	return nil
}

// GetPollVoteByUserID 获取某个员工在某个投票中投过的选项
func (r *Repository) GetPollVoteByUserID(pollID int64, userID int64) (*int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT poll_option_id FROM poll_votes WHERE poll_id = $1 AND user_id = $2
	`

	var optionID int64
	if err := r.dbpool.QueryRowContext(ctx, query, pollID, userID).Scan(&optionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &optionID, nil
}
