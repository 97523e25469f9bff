package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventadmissions/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{
		DB: db,
	}
}

const memberColumns = `id, organization_id, user_id, status, tier, is_staff, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*domain.OrganizationMember, error) {
	m := &domain.OrganizationMember{}
	err := row.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Status, &m.Tier, &m.IsStaff, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) Create(ctx context.Context, member *domain.OrganizationMember) error {
	query := `
		INSERT INTO organization_members (organization_id, user_id, status, tier, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		member.OrganizationID, member.UserID, member.Status, member.Tier, member.IsStaff,
		member.CreatedAt, member.UpdatedAt).
		Scan(&member.ID)
}

func (r *membershipRepository) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM organization_members
		WHERE organization_id = $1 AND user_id = $2
	`
	return scanMember(r.DB.QueryRowContext(ctx, query, organizationID, userID))
}

func (r *membershipRepository) UpdateStatus(ctx context.Context, organizationID, userID, status string) (*domain.OrganizationMember, error) {
	query := `
		UPDATE organization_members
		SET status = $3, updated_at = NOW()
		WHERE organization_id = $1 AND user_id = $2
		RETURNING ` + memberColumns + `
	`
	return scanMember(r.DB.QueryRowContext(ctx, query, organizationID, userID, status))
}

func (r *membershipRepository) ListByOrganizationID(ctx context.Context, organizationID string, params domain.PaginationParams) ([]*domain.OrganizationMember, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organization_members WHERE organization_id = $1`, organizationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + memberColumns + `
		FROM organization_members
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, organizationID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []*domain.OrganizationMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if members == nil {
		members = []*domain.OrganizationMember{}
	}
	return members, total, nil
}
