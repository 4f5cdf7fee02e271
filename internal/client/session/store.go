// Package session persists the signed-in user's identity and cached body
// metrics in a local SQLite database so they survive process restarts.
//
// Absent keys read as their defaults: NoUser for the user id and zero for
// weight, height and age. The only errors returned are those of the
// underlying storage.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fittracker/internal/dbx"
)

// NoUser is the user id reported when nobody is signed in.
const NoUser = -1

const (
	keyUserID = "user_id"
	keyWeight = "weight"
	keyHeight = "height"
	keyAge    = "age"
)

// Store is the process-wide session handle. It is passed explicitly to every
// consumer; last write wins.
type Store struct {
	db *sql.DB
	kv *kvRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, kv: newKVRepository(db)}
}

// Open opens the session database at path, applies migrations and returns a
// ready Store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := OpenDatabase(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveUserID(ctx context.Context, id int) error {
	return s.kv.Set(ctx, keyUserID, strconv.Itoa(id))
}

// UserID returns the saved user id or NoUser.
func (s *Store) UserID(ctx context.Context) (int, error) {
	v, ok, err := s.kv.Get(ctx, keyUserID)
	if err != nil || !ok {
		return NoUser, err
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return NoUser, nil
	}
	return id, nil
}

func (s *Store) IsLoggedIn(ctx context.Context) (bool, error) {
	id, err := s.UserID(ctx)
	if err != nil {
		return false, err
	}
	return id != NoUser, nil
}

// SaveBodyInfo writes weight, height and age atomically.
func (s *Store) SaveBodyInfo(ctx context.Context, weight, height float64, age int) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := newKVRepository(tx)
		if err := kv.Set(ctx, keyWeight, formatFloat(weight)); err != nil {
			return err
		}
		if err := kv.Set(ctx, keyHeight, formatFloat(height)); err != nil {
			return err
		}
		return kv.Set(ctx, keyAge, strconv.Itoa(age))
	})
}

func (s *Store) Weight(ctx context.Context) (float64, error) {
	return s.float(ctx, keyWeight)
}

func (s *Store) Height(ctx context.Context) (float64, error) {
	return s.float(ctx, keyHeight)
}

func (s *Store) Age(ctx context.Context) (int, error) {
	v, ok, err := s.kv.Get(ctx, keyAge)
	if err != nil || !ok {
		return 0, err
	}
	age, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return age, nil
}

// Clear forgets the user and every cached metric.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) float(ctx context.Context, key string) (float64, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, nil
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
