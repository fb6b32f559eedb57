// Package auth define a sessão de administrador e a porta do armazenamento
// de sessões. O cookie guarda só o ID; o resto vive no store (memória em
// dev, Redis quando configurado).
package auth

import (
	"context"
	"errors"
	"time"
)

const CookieName = "sndot_sessao"

var ErrSessionNotFound = errors.New("session not found")

// Session é o principal autenticado. Staff repete a flag do administrador
// para a checagem de permissão não depender de uma ida ao banco por request.
type Session struct {
	ID          string    `json:"id"`
	AdminID     string    `json:"admin_id"`
	NomeUsuario string    `json:"nome_usuario"`
	Staff       bool      `json:"staff"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type Store interface {
	Save(ctx context.Context, s Session) error
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
