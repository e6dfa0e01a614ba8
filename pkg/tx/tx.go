package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

type Option func(*Manager)

// WithIsoLevel overrides the isolation level used by Do. Serializable by default.
func WithIsoLevel(level pgx.TxIsoLevel) Option {
	return func(m *Manager) {
		m.isoLevel = level
	}
}

type Manager struct {
	internal *manager.Manager
	isoLevel pgx.TxIsoLevel
}

func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		isoLevel: pgx.Serializable,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do runs fn inside a transaction. Nested calls join the outer transaction.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.internal.DoWithSettings(ctx, m.settings(pgx.ReadWrite), fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.internal.DoWithSettings(ctx, m.settings(pgx.ReadOnly), fn)
}

func (m *Manager) settings(mode pgx.TxAccessMode) pgxv5.Settings {
	return pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: m.isoLevel, AccessMode: mode}),
	)
}
