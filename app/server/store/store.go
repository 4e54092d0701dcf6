// Package store holds the gorm-backed repositories for accounts and events.
// Uniqueness of account email and username is enforced here, by the
// database constraints: callers may run advisory pre-checks, but the
// authoritative answer is ErrDuplicate at write time.
package store

import (
	"errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// translate maps gorm's sentinel errors onto the store's own, so consumers
// never import gorm to interpret a failure.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
