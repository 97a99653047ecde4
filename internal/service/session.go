package service

import (
	"context"
	"time"

	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/pagination"
	"github.com/maxviazov/productivity-hub/internal/repository"
	"github.com/rs/zerolog"
)

type sessionService struct {
	repo repository.SessionRepository
	log  zerolog.Logger
}

func NewSessionService(repo repository.SessionRepository, logger zerolog.Logger) SessionService {
	l := logger.With().Str("module", "service").Str("component", "session").Logger()
	return &sessionService{repo: repo, log: l}
}

func (s *sessionService) ListSessions(ctx context.Context, req pagination.Request) (model.SessionPage, error) {
	start := time.Now()
	win, err := req.Window()
	if err != nil {
		return model.SessionPage{}, fromPaginationError(err)
	}

	res, err := s.repo.List(ctx, repository.Page{Limit: win.Take, Offset: win.Skip})
	if err != nil {
		s.log.Error().Err(err).Int("limit", win.Take).Int("offset", win.Skip).Msg("list sessions failed")
		return model.SessionPage{}, err
	}

	meta, _, err := pagination.Compute(req.Page, req.Limit, res.Total)
	if err != nil {
		// Only reachable if the repository reports a negative total.
		s.log.Error().Err(err).Int("total", res.Total).Msg("pagination metadata failed")
		return model.SessionPage{}, err
	}

	items := res.Items
	if items == nil {
		items = []model.ProviderSession{}
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("page", meta.Page).Int("total", meta.Total).Msg("sessions listed")
	return model.SessionPage{Items: items, Pagination: meta}, nil
}

func (s *sessionService) GetSession(ctx context.Context, id int64) (model.ProviderSession, error) {
	if id <= 0 {
		return model.ProviderSession{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}
