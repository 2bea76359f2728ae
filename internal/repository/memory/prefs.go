package memory

import (
	"context"
	"sync"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/repository"
)

// PrefsRepo — настройки чатов в памяти процесса (когда postgres выключен)
type PrefsRepo struct {
	mu    sync.RWMutex
	prefs map[int64]domain.ChatPrefs
}

func NewPrefsRepository() *PrefsRepo {
	return &PrefsRepo{prefs: make(map[int64]domain.ChatPrefs)}
}

func (r *PrefsRepo) GetPrefs(_ context.Context, chatID int64) (domain.ChatPrefs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prefs[chatID]
	if !ok {
		return domain.ChatPrefs{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *PrefsRepo) SavePrefs(_ context.Context, p domain.ChatPrefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[p.ChatID] = p
	return nil
}
