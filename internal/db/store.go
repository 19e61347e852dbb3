package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shadowgoose/grantpulse/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type ListParams struct {
	Status string // filter by grant status, empty means all
	Source string
	Search string // matched against name and funder
	Limit  int
	Offset int
}

type ListResult struct {
	Grants []models.GrantRecord `json:"grants"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

const selectCols = `id, name, funder, description, amount_string, due_date,
	status, source, assessment, added_date, created_at, updated_at`

func scanGrant(scan func(dest ...any) error) (models.GrantRecord, error) {
	var g models.GrantRecord
	var assessmentRaw []byte

	err := scan(
		&g.ID, &g.Name, &g.Funder, &g.Description, &g.AmountString, &g.DueDate,
		&g.Status, &g.Source, &assessmentRaw, &g.AddedDate, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return g, err
	}

	if len(assessmentRaw) > 0 {
		var a models.EligibilityAssessment
		if err := json.Unmarshal(assessmentRaw, &a); err == nil {
			g.Assessment = &a
		}
	}

	return g, nil
}

// ListGrants satisfies notify.GrantSource: the scheduler sweeps over the
// full collection, so no params are taken here.
func (s *Store) ListGrants(ctx context.Context) ([]models.GrantRecord, error) {
	return s.queryGrants(ctx, "SELECT "+selectCols+" FROM grants ORDER BY added_date DESC")
}

func (s *Store) List(ctx context.Context, params ListParams) (*ListResult, error) {
	where := "WHERE 1=1"
	var args []any
	argIdx := 1

	if params.Status != "" && params.Status != "all" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, params.Status)
		argIdx++
	}
	if params.Source != "" {
		where += fmt.Sprintf(" AND source = $%d", argIdx)
		args = append(args, params.Source)
		argIdx++
	}
	if params.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE '%%' || $%d || '%%' OR funder ILIKE '%%' || $%d || '%%')", argIdx, argIdx)
		args = append(args, params.Search)
		argIdx++
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM grants "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting grants: %w", err)
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s FROM grants %s ORDER BY added_date DESC LIMIT $%d OFFSET $%d",
		selectCols, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	grants, err := s.queryGrants(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &ListResult{Grants: grants, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Store) queryGrants(ctx context.Context, query string, args ...any) ([]models.GrantRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grants: %w", err)
	}
	defer rows.Close()

	grants := []models.GrantRecord{}
	for rows.Next() {
		g, err := scanGrant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (s *Store) GetGrant(ctx context.Context, id string) (*models.GrantRecord, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+selectCols+" FROM grants WHERE id = $1", id)
	g, err := scanGrant(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching grant %s: %w", id, err)
	}
	return &g, nil
}

// InsertGrant writes a new grant. Duplicates (same name and funder, case
// insensitive) are left untouched and reported via the bool return.
func (s *Store) InsertGrant(ctx context.Context, g models.GrantRecord) (string, bool, error) {
	if g.Status == "" {
		g.Status = models.StatusPotential
	}
	if g.Source == "" {
		g.Source = "manual"
	}

	assessmentRaw, err := marshalAssessment(g.Assessment)
	if err != nil {
		return "", false, err
	}

	addedDate := g.AddedDate
	if addedDate.IsZero() {
		addedDate = time.Now()
	}

	var id string
	err = s.pool.QueryRow(ctx, `
		INSERT INTO grants (name, funder, description, amount_string, due_date, status, source, assessment, added_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (LOWER(name), LOWER(funder)) DO NOTHING
		RETURNING id
	`, strings.TrimSpace(g.Name), strings.TrimSpace(g.Funder), g.Description, g.AmountString,
		g.DueDate, g.Status, g.Source, assessmentRaw, addedDate).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error inserting grant: %w", err)
	}
	return id, true, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE grants SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("error updating grant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveAssessment stores the assessment JSON alongside the grant.
func (s *Store) SaveAssessment(ctx context.Context, id string, a models.EligibilityAssessment) error {
	raw, err := marshalAssessment(&a)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, "UPDATE grants SET assessment = $1, updated_at = NOW() WHERE id = $2", raw, id)
	if err != nil {
		return fmt.Errorf("error saving assessment for grant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalAssessment(a *models.EligibilityAssessment) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("error encoding assessment: %w", err)
	}
	return raw, nil
}
