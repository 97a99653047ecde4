// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"time"

	"github.com/maxviazov/productivity-hub/internal/pagination"
)

// Provider is one of the integration categories a session belongs to.
type Provider string

const (
	ProviderMail  Provider = "mail"
	ProviderTask  Provider = "task"
	ProviderOAuth Provider = "oauth"
)

// DefaultAccount is the account name used for providers without a natural
// account identifier (the task provider is keyed by API key only).
const DefaultAccount = "default"

// ProviderSession is a stored credential set for one provider account.
// Secrets are never serialized.
type ProviderSession struct {
	ID           int64     `json:"id"`
	Provider     Provider  `json:"provider"`
	Account      string    `json:"account"`
	SessionID    string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	APIKey       string    `json:"-"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionPage is a page of provider sessions plus client pagination metadata.
type SessionPage struct {
	Items      []ProviderSession `json:"items"`
	Pagination pagination.Meta   `json:"pagination"`
}

// LegacyMailSession is the blob the old client kept under "mail_session".
type LegacyMailSession struct {
	SessionID string `json:"sessionId" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

// LegacyTaskSession is the blob the old client kept under "task_session".
type LegacyTaskSession struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// LegacyOAuthSession is the blob the old client kept under "oauth_session".
type LegacyOAuthSession struct {
	Email        string `json:"email" validate:"required"`
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// MigrationStatus is the outcome of migrating one provider's legacy session.
type MigrationStatus string

const (
	MigrationMigrated     MigrationStatus = "migrated"
	MigrationSkipped      MigrationStatus = "skipped"
	MigrationParseError   MigrationStatus = "parse_error"
	MigrationStoreError   MigrationStatus = "store_error"
	MigrationReadError    MigrationStatus = "read_error"
	MigrationCleanupError MigrationStatus = "cleanup_error"
)

// MigrationResult reports what happened to a single provider.
type MigrationResult struct {
	Provider Provider        `json:"provider"`
	Key      string          `json:"key"`
	Status   MigrationStatus `json:"status"`
	Error    string          `json:"error,omitempty"`
	Err      error           `json:"-"`
}

// MigrationReport is the per-provider summary of one migration run.
type MigrationReport struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Results    []MigrationResult `json:"results"`
}
