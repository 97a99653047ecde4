package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/repository"
)

const defaultPageLimit = 50

func sanitizeLimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

type sessionRepository struct{ pool *pgxpool.Pool }

func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &sessionRepository{pool: pool}
}

const upsertSessionSQL = `
	INSERT INTO provider_sessions (provider, account, session_id, email, api_key, access_token, refresh_token)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (provider, account) DO UPDATE SET
		session_id    = EXCLUDED.session_id,
		email         = EXCLUDED.email,
		api_key       = EXCLUDED.api_key,
		access_token  = EXCLUDED.access_token,
		refresh_token = EXCLUDED.refresh_token,
		updated_at    = now()`

const selectSessionColumns = `id, provider, account, session_id, email, api_key, access_token, refresh_token, created_at, updated_at`

func (r *sessionRepository) upsert(ctx context.Context, s model.ProviderSession) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, upsertSessionSQL,
		s.Provider, s.Account, s.SessionID, s.Email, s.APIKey, s.AccessToken, s.RefreshToken,
	)
	return repository.MapPgError(err)
}

func (r *sessionRepository) SaveMailSession(ctx context.Context, sessionID, email string) error {
	return r.upsert(ctx, model.ProviderSession{
		Provider:  model.ProviderMail,
		Account:   email,
		SessionID: sessionID,
		Email:     email,
	})
}

func (r *sessionRepository) SaveTaskSession(ctx context.Context, apiKey string) error {
	return r.upsert(ctx, model.ProviderSession{
		Provider: model.ProviderTask,
		Account:  model.DefaultAccount,
		APIKey:   apiKey,
	})
}

func (r *sessionRepository) SaveOAuthSession(ctx context.Context, email, accessToken, refreshToken string) error {
	return r.upsert(ctx, model.ProviderSession{
		Provider:     model.ProviderOAuth,
		Account:      email,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func scanSession(row pgx.Row) (model.ProviderSession, error) {
	var s model.ProviderSession
	err := row.Scan(&s.ID, &s.Provider, &s.Account, &s.SessionID, &s.Email,
		&s.APIKey, &s.AccessToken, &s.RefreshToken, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *sessionRepository) GetByID(ctx context.Context, id int64) (model.ProviderSession, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ProviderSession{}, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+selectSessionColumns+` FROM provider_sessions WHERE id = $1`, id,
	)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ProviderSession{}, repository.ErrNotFound
		}
		return model.ProviderSession{}, repository.MapPgError(err)
	}
	return s, nil
}

// List returns one window of sessions ordered by id. The total is counted
// separately so it stays accurate when the offset runs past the last row.
func (r *sessionRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.ProviderSession], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.ProviderSession]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM provider_sessions`).Scan(&total); err != nil {
		return repository.PageResult[model.ProviderSession]{}, repository.MapPgError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+selectSessionColumns+`
		 FROM provider_sessions
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.ProviderSession]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.ProviderSession]{Items: make([]model.ProviderSession, 0, limit), Total: total}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return repository.PageResult[model.ProviderSession]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, s)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ProviderSession]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.SessionRepository = (*sessionRepository)(nil)
