package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type GormRepo struct {
	DB *gorm.DB
}

// IsNotFound reports whether err is the storage-layer "no such row" error,
// so callers outside the repo never import gorm directly.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
