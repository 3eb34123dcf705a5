package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

func (r *Repository) CreateTeam(t *domain.Team) error {
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
		INSERT INTO teams (name, description, leader_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, t.Name, t.Description, t.LeaderID).Scan(&t.ID, &t.CreatedAt, &t.Version); err != nil {
		return err
	}

	for _, member := range t.Members {
		query = `
			INSERT INTO team_members (team_id, user_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, t.ID, member.UserID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllTeams() ([]*domain.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			t.id,
			t.name,
			t.description,
			t.leader_id,
			t.created_at,
			t.version,
			tm.user_id,
			u.full_name
		FROM teams t
		LEFT JOIN team_members tm ON t.id = tm.team_id
		LEFT JOIN users u ON tm.user_id = u.id
		ORDER BY t.id, tm.user_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	teamsMap := make(map[int64]*domain.Team)

	for rows.Next() {
		var row struct {
			ID          int64
			Name        string
			Description string
			LeaderID    int64
			CreatedAt   time.Time
			Version     int32

			MemberID       sql.NullInt64
			MemberFullName sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.Description,
			&row.LeaderID,
			&row.CreatedAt,
			&row.Version,
			&row.MemberID,
			&row.MemberFullName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		t, exists := teamsMap[row.ID]
		if !exists {
			t = &domain.Team{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				LeaderID:    row.LeaderID,
				CreatedAt:   row.CreatedAt,
				Version:     row.Version,
				Members:     make([]domain.TeamMember, 0),
			}
			teamsMap[row.ID] = t
			teams = append(teams, t)
		}

		// 如果 memberID 为空，则表示这个团队还没有成员
		if !row.MemberID.Valid {
			continue
		}

		t.Members = append(t.Members, domain.TeamMember{
			UserID:   row.MemberID.Int64,
			FullName: row.MemberFullName.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *Repository) GetTeamByID(id int64) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, description, leader_id, created_at, version
		FROM teams WHERE id = $1
	`

	t := &domain.Team{
		ID: id,
	}

	dst := []any{&t.Name, &t.Description, &t.LeaderID, &t.CreatedAt, &t.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	query = `
		SELECT tm.user_id, u.full_name
		FROM team_members tm
		LEFT JOIN users u ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY tm.user_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t.Members = make([]domain.TeamMember, 0)
	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(&member.UserID, &member.FullName); err != nil {
			return nil, err
		}
		t.Members = append(t.Members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *Repository) UpdateTeam(t *domain.Team) error {
	query := `
		UPDATE teams
		SET
			name = $1,
			description = $2,
			leader_id = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{t.Name, t.Description, t.LeaderID, t.ID, t.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&t.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTeam(id int64) error {
	query := `
		DELETE FROM teams WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) AddTeamMember(teamID int64, userID int64) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, teamID, userID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) RemoveTeamMember(teamID int64, userID int64) error {
	query := `
		DELETE FROM team_members WHERE team_id = $1 AND user_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, teamID, userID); err != nil {
		return err
	}

	return nil
}
