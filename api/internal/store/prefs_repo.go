package store

import (
	"context"
	"database/sql"
)

var ErrNotFound = sql.ErrNoRows

// PrefsRepo keeps per-chat bot settings. Problems and solutions are never
// written here; only the answer-language choice survives a restart.
type PrefsRepo struct{ DB *sql.DB }

func NewPrefsRepo(db *sql.DB) *PrefsRepo { return &PrefsRepo{DB: db} }

// Language returns the stored answer language for a chat.
func (r *PrefsRepo) Language(ctx context.Context, chatID int64) (string, error) {
	const q = `select language from chat_prefs where chat_id=$1`
	var lang string
	if err := r.DB.QueryRowContext(ctx, q, chatID).Scan(&lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SetLanguage stores/overwrites the answer language for a chat.
func (r *PrefsRepo) SetLanguage(ctx context.Context, chatID int64, language string) error {
	const q = `
insert into chat_prefs(chat_id, language)
values ($1,$2)
on conflict (chat_id)
do update set language=excluded.language, updated_at=now()`
	_, err := r.DB.ExecContext(ctx, q, chatID, language)
	return err
}
