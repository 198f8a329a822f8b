package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all persisted models.
// IDs are plain UUID strings so the same model works against both the
// relational and the document store.
type BaseModel struct {
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate GORM hook for BaseModel
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

// NewID returns a fresh opaque record id.
func NewID() string {
	return uuid.New().String()
}
