package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for one audit log entry. Rows are
// append-only and never updated.
type AuditLogModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Action     string    `gorm:"type:varchar(50);not null;index"`
	TargetType string    `gorm:"type:varchar(50);not null"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorEmail string    `gorm:"type:varchar(200);not null"`
	ActorName  string    `gorm:"type:varchar(200);not null"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain audit entry.
func (m *AuditLogModel) ToDomain() audit.Entry {
	return audit.Entry{
		ID:         m.ID,
		Action:     audit.Action(m.Action),
		TargetType: m.TargetType,
		TargetID:   m.TargetID,
		ActorID:    m.ActorID,
		ActorEmail: m.ActorEmail,
		ActorName:  m.ActorName,
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain audit entry.
func (m *AuditLogModel) FromDomain(e audit.Entry) {
	m.ID = e.ID
	m.Action = string(e.Action)
	m.TargetType = e.TargetType
	m.TargetID = e.TargetID
	m.ActorID = e.ActorID
	m.ActorEmail = e.ActorEmail
	m.ActorName = e.ActorName
	m.Detail = e.Detail
	m.CreatedAt = e.CreatedAt
}
