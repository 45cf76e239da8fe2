package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/returns"
)

// ReturnModel is the persistence model for the Return aggregate.
type ReturnModel struct {
	AggregateModel
	Number         int64                      `gorm:"not null;uniqueIndex"`
	CustomerName   string                     `gorm:"type:varchar(200);not null"`
	CustomerEmail  string                     `gorm:"type:varchar(200);not null;index"`
	CustomerPhone  string                     `gorm:"type:varchar(50)"`
	OrderReference string                     `gorm:"type:varchar(100)"`
	Description    string                     `gorm:"type:text;not null"`
	Resolution     string                     `gorm:"type:varchar(20);not null"`
	Status         string                     `gorm:"type:varchar(20);not null;index"`
	Items          []ReturnItemModel          `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
	History        []ReturnStatusHistoryModel `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
	Notes          []ReturnNoteModel          `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
	Images         []ReturnImageModel         `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ReturnItemModel is one returned item with its SKU snapshot.
type ReturnItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReturnID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariationID *uuid.UUID `gorm:"type:uuid;index"`
	ProductName string     `gorm:"type:varchar(200);not null"`
	SKU         string     `gorm:"type:varchar(50);not null"`
	Quantity    int        `gorm:"not null"`
	Reason      string     `gorm:"type:varchar(30);not null"`
	Condition   string     `gorm:"type:varchar(200)"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItemModel) TableName() string {
	return "return_items"
}

// ReturnStatusHistoryModel is one append-only status history entry.
type ReturnStatusHistoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Note      string    `gorm:"type:text"`
	Author    string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ReturnStatusHistoryModel) TableName() string {
	return "return_status_history"
}

// ReturnNoteModel is one internal admin note.
type ReturnNoteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    string    `gorm:"type:varchar(200);not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnNoteModel) TableName() string {
	return "return_notes"
}

// ReturnImageModel is one attached image reference.
type ReturnImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID  uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	Filename  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnImageModel) TableName() string {
	return "return_images"
}

// ToDomain converts the persistence model to a domain Return aggregate.
func (m *ReturnModel) ToDomain() *returns.Return {
	ret := &returns.Return{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		CustomerPhone:     m.CustomerPhone,
		OrderReference:    m.OrderReference,
		Description:       m.Description,
		Resolution:        returns.Resolution(m.Resolution),
		Status:            returns.Status(m.Status),
		Items:             make([]returns.ReturnItem, len(m.Items)),
		History:           make([]returns.StatusHistoryEntry, len(m.History)),
		Notes:             make([]returns.InternalNote, len(m.Notes)),
		Images:            make([]returns.ReturnImage, len(m.Images)),
	}
	for i, item := range m.Items {
		ret.Items[i] = returns.ReturnItem{
			ID:          item.ID,
			ReturnID:    item.ReturnID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Reason:      returns.Reason(item.Reason),
			Condition:   item.Condition,
			CreatedAt:   item.CreatedAt,
		}
	}
	for i, entry := range m.History {
		ret.History[i] = returns.StatusHistoryEntry{
			ID:        entry.ID,
			ReturnID:  entry.ReturnID,
			Status:    returns.Status(entry.Status),
			Note:      entry.Note,
			Author:    entry.Author,
			CreatedAt: entry.CreatedAt,
		}
	}
	for i, note := range m.Notes {
		ret.Notes[i] = returns.InternalNote{
			ID:        note.ID,
			ReturnID:  note.ReturnID,
			Author:    note.Author,
			Body:      note.Body,
			CreatedAt: note.CreatedAt,
		}
	}
	for i, img := range m.Images {
		ret.Images[i] = returns.ReturnImage{
			ID:        img.ID,
			ReturnID:  img.ReturnID,
			URL:       img.URL,
			Filename:  img.Filename,
			CreatedAt: img.CreatedAt,
		}
	}
	return ret
}

// FromDomain populates the persistence model from a domain Return aggregate.
func (m *ReturnModel) FromDomain(r *returns.Return) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Number = r.Number
	m.CustomerName = r.CustomerName
	m.CustomerEmail = r.CustomerEmail
	m.CustomerPhone = r.CustomerPhone
	m.OrderReference = r.OrderReference
	m.Description = r.Description
	m.Resolution = string(r.Resolution)
	m.Status = r.Status.String()
	m.Items = make([]ReturnItemModel, len(r.Items))
	for i, item := range r.Items {
		m.Items[i] = ReturnItemModel{
			ID:          item.ID,
			ReturnID:    r.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Reason:      string(item.Reason),
			Condition:   item.Condition,
			CreatedAt:   item.CreatedAt,
		}
	}
	m.History = make([]ReturnStatusHistoryModel, len(r.History))
	for i, entry := range r.History {
		m.History[i] = NewReturnStatusHistoryModel(r.ID, entry)
	}
	m.Notes = make([]ReturnNoteModel, len(r.Notes))
	for i, note := range r.Notes {
		m.Notes[i] = NewReturnNoteModel(r.ID, note)
	}
	m.Images = make([]ReturnImageModel, len(r.Images))
	for i, img := range r.Images {
		m.Images[i] = ReturnImageModel{
			ID:        img.ID,
			ReturnID:  r.ID,
			URL:       img.URL,
			Filename:  img.Filename,
			CreatedAt: img.CreatedAt,
		}
	}
}

// NewReturnStatusHistoryModel builds the row form of one history entry
func NewReturnStatusHistoryModel(returnID uuid.UUID, entry returns.StatusHistoryEntry) ReturnStatusHistoryModel {
	return ReturnStatusHistoryModel{
		ID:        entry.ID,
		ReturnID:  returnID,
		Status:    entry.Status.String(),
		Note:      entry.Note,
		Author:    entry.Author,
		CreatedAt: entry.CreatedAt,
	}
}

// NewReturnNoteModel builds the row form of one internal note
func NewReturnNoteModel(returnID uuid.UUID, note returns.InternalNote) ReturnNoteModel {
	return ReturnNoteModel{
		ID:        note.ID,
		ReturnID:  returnID,
		Author:    note.Author,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
	}
}
