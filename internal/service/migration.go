package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Fixed keys the old client used for each provider's session blob.
const (
	LegacyMailKey  = "mail_session"
	LegacyTaskKey  = "task_session"
	LegacyOAuthKey = "oauth_session"
)

// maxParallelProviders bounds how many providers are migrated at once.
const maxParallelProviders = 3

// migrationStep is the step a provider had reached; a recovered panic is reported against it.
type migrationStep int

const (
	stepRead migrationStep = iota
	stepSave
	stepDelete
)

func (s migrationStep) failureStatus() model.MigrationStatus {
	switch s {
	case stepRead:
		return model.MigrationReadError
	case stepDelete:
		return model.MigrationCleanupError
	default:
		return model.MigrationStoreError
	}
}

// legacyProvider ties a legacy key to the code that decodes its blob and saves it.
type legacyProvider struct {
	provider model.Provider
	key      string
	save     func(ctx context.Context, raw string) error
}

// SessionMigrator moves legacy sessions into the session store. Each provider is
// read, saved and only then deleted; a failure leaves the legacy entry for the next run.
type SessionMigrator struct {
	legacy   repository.LegacyStore
	sessions repository.SessionStore
	validate *validator.Validate
	log      zerolog.Logger

	// run serializes Migrate so a provider is never migrated twice concurrently.
	run sync.Mutex

	mu   sync.RWMutex
	last *model.MigrationReport
}

func NewSessionMigrator(legacy repository.LegacyStore, sessions repository.SessionStore, logger zerolog.Logger) *SessionMigrator {
	l := logger.With().Str("module", "service").Str("component", "session_migrator").Logger()
	return &SessionMigrator{
		legacy:   legacy,
		sessions: sessions,
		validate: validator.New(),
		log:      l,
	}
}

func (m *SessionMigrator) providers() []legacyProvider {
	return []legacyProvider{
		{provider: model.ProviderMail, key: LegacyMailKey, save: m.saveMail},
		{provider: model.ProviderTask, key: LegacyTaskKey, save: m.saveTask},
		{provider: model.ProviderOAuth, key: LegacyOAuthKey, save: m.saveOAuth},
	}
}

// Migrate runs every provider concurrently and returns one result per provider,
// in mail, task, oauth order. It never fails as a whole.
func (m *SessionMigrator) Migrate(ctx context.Context) model.MigrationReport {
	m.run.Lock()
	defer m.run.Unlock()

	report := model.MigrationReport{StartedAt: time.Now().UTC()}
	providers := m.providers()
	results := make([]model.MigrationResult, len(providers))

	// Workers never return an error: one provider failing must not cancel the others.
	// gctx only ends when the caller's ctx does.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelProviders)
	for i, p := range providers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = failed(model.MigrationResult{Provider: p.provider, Key: p.key}, model.MigrationReadError, err)
				return nil
			}
			results[i] = m.migrateOne(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	report.Results = results
	report.FinishedAt = time.Now().UTC()

	counts := map[model.MigrationStatus]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	m.log.Info().
		Int("migrated", counts[model.MigrationMigrated]).
		Int("skipped", counts[model.MigrationSkipped]).
		Int("failed", len(results)-counts[model.MigrationMigrated]-counts[model.MigrationSkipped]).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("legacy session migration finished")

	m.mu.Lock()
	m.last = &report
	m.mu.Unlock()
	return report
}

// LastReport returns the report of the most recent run, if any.
func (m *SessionMigrator) LastReport() (model.MigrationReport, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return model.MigrationReport{}, false
	}
	return *m.last, true
}

func (m *SessionMigrator) migrateOne(ctx context.Context, p legacyProvider) (res model.MigrationResult) {
	res = model.MigrationResult{Provider: p.provider, Key: p.key}
	plog := m.log.With().Str("provider", string(p.provider)).Str("key", p.key).Logger()

	step := stepRead
	defer func() {
		if r := recover(); r != nil {
			var err error
			if step == stepSave {
				err = fmt.Errorf("%w: panic: %v", ErrStoreWrite, r)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
			status := step.failureStatus()
			plog.Error().Err(err).Str("status", string(status)).Msg("legacy session migration panicked")
			res = failed(res, status, err)
		}
	}()

	raw, ok, err := m.legacy.Get(ctx, p.key)
	if err != nil {
		plog.Error().Err(err).Msg("read legacy session failed; entry kept")
		return failed(res, model.MigrationReadError, err)
	}
	if !ok {
		res.Status = model.MigrationSkipped
		return res
	}

	step = stepSave
	if err := p.save(ctx, raw); err != nil {
		status := model.MigrationStoreError
		if errors.Is(err, ErrParse) {
			status = model.MigrationParseError
		}
		plog.Error().Err(err).Str("status", string(status)).Msg("legacy session not migrated; entry kept")
		return failed(res, status, err)
	}

	step = stepDelete
	if err := m.legacy.Delete(ctx, p.key); err != nil {
		plog.Warn().Err(err).Msg("session saved but legacy entry not deleted; will retry next run")
		return failed(res, model.MigrationCleanupError, err)
	}

	plog.Info().Msg("legacy session migrated")
	res.Status = model.MigrationMigrated
	return res
}

func failed(res model.MigrationResult, status model.MigrationStatus, err error) model.MigrationResult {
	res.Status = status
	res.Err = err
	res.Error = err.Error()
	return res
}

// decodeLegacy parses raw into T and checks required fields.
func decodeLegacy[T any](v *validator.Validate, raw string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := v.Struct(out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return out, nil
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreWrite, err)
}

func (m *SessionMigrator) saveMail(ctx context.Context, raw string) error {
	s, err := decodeLegacy[model.LegacyMailSession](m.validate, raw)
	if err != nil {
		return err
	}
	return storeErr(m.sessions.SaveMailSession(ctx, s.SessionID, s.Email))
}

func (m *SessionMigrator) saveTask(ctx context.Context, raw string) error {
	s, err := decodeLegacy[model.LegacyTaskSession](m.validate, raw)
	if err != nil {
		return err
	}
	return storeErr(m.sessions.SaveTaskSession(ctx, s.APIKey))
}

func (m *SessionMigrator) saveOAuth(ctx context.Context, raw string) error {
	s, err := decodeLegacy[model.LegacyOAuthSession](m.validate, raw)
	if err != nil {
		return err
	}
	return storeErr(m.sessions.SaveOAuthSession(ctx, s.Email, s.AccessToken, s.RefreshToken))
}

var _ Migrator = (*SessionMigrator)(nil)
