package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"sndot/internal/auth"
)

func TestStore_SaveFindDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sess := auth.Session{
		ID:        "s-1",
		AdminID:   "a-1",
		Staff:     true,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Find(ctx, "s-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.AdminID != "a-1" {
		t.Fatalf("sessão errada: %+v", got)
	}

	if err := s.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Find(ctx, "s-1"); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("esperava ErrSessionNotFound, veio %v", err)
	}
}

func TestStore_SessaoExpiradaSome(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	sess := auth.Session{
		ID:        "s-2",
		ExpiresAt: base.Add(30 * time.Minute),
	}
	if err := s.Save(context.Background(), sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	// dentro do prazo
	if _, err := s.Find(context.Background(), "s-2"); err != nil {
		t.Fatalf("find dentro do prazo: %v", err)
	}

	// depois do prazo
	s.now = func() time.Time { return base.Add(31 * time.Minute) }
	if _, err := s.Find(context.Background(), "s-2"); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("esperava ErrSessionNotFound, veio %v", err)
	}
}

func TestStore_FindInexistente(t *testing.T) {
	s := NewStore()
	if _, err := s.Find(context.Background(), "nada"); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("esperava ErrSessionNotFound, veio %v", err)
	}
}
