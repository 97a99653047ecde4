// Package contract holds storage-agnostic test suites that every
// repository implementation must pass.
package contract

import (
	"context"
	"fmt"
	"testing"

	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/repository"
)

type SessionFactory func(t *testing.T) (repository.SessionRepository, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunSessionRepositoryContract(t *testing.T, makeRepo SessionFactory) {
	t.Helper()

	t.Run("save_each_provider_and_list", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		if err := repo.SaveMailSession(ctx, "sid-1", "me@example.com"); err != nil {
			t.Fatalf("save mail: %v", err)
		}
		if err := repo.SaveTaskSession(ctx, "key-1"); err != nil {
			t.Fatalf("save task: %v", err)
		}
		if err := repo.SaveOAuthSession(ctx, "me@example.com", "at", "rt"); err != nil {
			t.Fatalf("save oauth: %v", err)
		}

		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		byProvider := map[model.Provider]model.ProviderSession{}
		for _, s := range res.Items {
			byProvider[s.Provider] = s
		}
		if s := byProvider[model.ProviderMail]; s.SessionID != "sid-1" || s.Account != "me@example.com" {
			t.Fatalf("mail session mismatch: %+v", s)
		}
		if s := byProvider[model.ProviderTask]; s.APIKey != "key-1" || s.Account != model.DefaultAccount {
			t.Fatalf("task session mismatch: %+v", s)
		}
		if s := byProvider[model.ProviderOAuth]; s.AccessToken != "at" || s.RefreshToken != "rt" {
			t.Fatalf("oauth session mismatch: %+v", s)
		}
	})

	t.Run("save_is_idempotent_upsert", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for _, key := range []string{"old-key", "new-key"} {
			if err := repo.SaveTaskSession(ctx, key); err != nil {
				t.Fatalf("save task: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || res.Items[0].APIKey != "new-key" {
			t.Fatalf("expected single upserted row, got %+v", res)
		}
	})

	t.Run("get_by_id_and_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		if err := repo.SaveMailSession(ctx, "sid", "a@example.com"); err != nil {
			t.Fatalf("save: %v", err)
		}
		res, err := repo.List(ctx, repository.Page{Limit: 1})
		if err != nil || len(res.Items) != 1 {
			t.Fatalf("list: %v %+v", err, res)
		}
		got, err := repo.GetByID(ctx, res.Items[0].ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Email != "a@example.com" {
			t.Fatalf("mismatch: %+v", got)
		}
		if _, err := repo.GetByID(ctx, 999999); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if err := repo.SaveMailSession(ctx, fmt.Sprintf("sid-%d", i), fmt.Sprintf("u%d@example.com", i)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		past, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 30})
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(past.Items) != 0 || past.Total != 7 {
			t.Fatalf("total must survive an empty window: len=%d total=%d", len(past.Items), past.Total)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
