package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, org_id, email, full_name, password_hash, role, status, invite_token, created_at, updated_at`

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un nuevo perfil. El email es único en todo el sistema.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.OrgID), p.Email, p.FullName, p.PasswordHash, nullIfEmpty(p.Role), p.Status,
		nullIfEmpty(p.InviteToken), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

// GetByEmail busca por email sin distinguir mayúsculas.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1) LIMIT 1`, email)
}

// GetByInviteToken busca la invitación pendiente con ese token.
func (r *ProfileRepo) GetByInviteToken(ctx context.Context, token string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE invite_token = $1`, token)
}

// Update reemplaza los campos mutables del perfil.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles SET org_id = $2, email = $3, full_name = $4, password_hash = $5, role = $6,
			status = $7, invite_token = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.OrgID), p.Email, p.FullName, p.PasswordHash, nullIfEmpty(p.Role),
		p.Status, nullIfEmpty(p.InviteToken), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ListByOrg lista el equipo de la organización, más recientes primero.
func (r *ProfileRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Profile, error) {
	rows, err := r.q.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProfileRepo) getOne(ctx context.Context, query string, arg string) (*entity.Profile, error) {
	p, err := scanProfile(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*entity.Profile, error) {
	var p entity.Profile
	var orgID, role, token *string
	if err := row.Scan(&p.ID, &orgID, &p.Email, &p.FullName, &p.PasswordHash, &role, &p.Status,
		&token, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.OrgID = deref(orgID)
	p.Role = deref(role)
	p.InviteToken = deref(token)
	return &p, nil
}
