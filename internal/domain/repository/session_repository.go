package repository

import (
	"time"

	"github.com/prayastok/stok-api/internal/domain/entity"
)

// SessionRepository is the persistence port for operator sessions.
type SessionRepository interface {
	Create(session *entity.Session) error
	GetByID(id string) (*entity.Session, error)
	Revoke(id string, at time.Time) error
}
