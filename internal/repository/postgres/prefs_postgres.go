package postgres

import (
	"context"
	"errors"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PrefsRepo — репозиторий для работы с таблицей chat_prefs.
type PrefsRepo struct {
	db *pgxpool.Pool
}

// NewPrefsRepository - Создаёт новый репозиторий настроек чата на основе пула соединений.
func NewPrefsRepository(db *pgxpool.Pool) *PrefsRepo {
	return &PrefsRepo{db: db}
}

// GetPrefs - Настройки списка для чата.
func (r *PrefsRepo) GetPrefs(ctx context.Context, chatID int64) (domain.ChatPrefs, error) {
	query := `
        SELECT chat_id, currency, sort_by, updated_at
        FROM chat_prefs
        WHERE chat_id = $1
    `
	var p domain.ChatPrefs
	var currency, sortBy string
	err := r.db.QueryRow(ctx, query, chatID).Scan(&p.ChatID, &currency, &sortBy, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ChatPrefs{}, repository.ErrNotFound
	}
	if err != nil {
		return domain.ChatPrefs{}, err
	}
	p.Currency = domain.Currency(currency)
	p.SortBy = domain.SortBy(sortBy)
	return p, nil
}

// SavePrefs - Сохраняет настройки чата (upsert).
func (r *PrefsRepo) SavePrefs(ctx context.Context, p domain.ChatPrefs) error {
	query := `
	INSERT INTO chat_prefs (chat_id, currency, sort_by, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (chat_id)
	DO UPDATE SET currency = EXCLUDED.currency,
	              sort_by = EXCLUDED.sort_by,
	              updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, p.ChatID, string(p.Currency), string(p.SortBy), p.UpdatedAt)
	return err
}
