package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// AttributeOption is one allowed value of a variation attribute
type AttributeOption struct {
	ID          uuid.UUID
	AttributeID uuid.UUID
	Value       string
	CreatedAt   time.Time
}

// VariationAttribute is a named variation axis (e.g. "Color") with its set
// of allowed option values. Attributes are shared catalog vocabulary: the
// same attribute can be attached to many products.
type VariationAttribute struct {
	shared.BaseAggregateRoot
	Name    string
	Options []AttributeOption
}

// NewVariationAttribute creates a new variation attribute
func NewVariationAttribute(name string) (*VariationAttribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 100 characters")
	}

	attr := &VariationAttribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Options:           make([]AttributeOption, 0),
	}

	attr.AddDomainEvent(NewVariationAttributeCreatedEvent(attr))

	return attr, nil
}

// AddOption adds an allowed value to the attribute
func (a *VariationAttribute) AddOption(value string) (*AttributeOption, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, shared.NewDomainError("INVALID_OPTION", "Option value cannot be empty")
	}
	if len(value) > 100 {
		return nil, shared.NewDomainError("INVALID_OPTION", "Option value cannot exceed 100 characters")
	}
	for _, opt := range a.Options {
		if opt.Value == value {
			return nil, shared.NewDomainError("DUPLICATE_OPTION", "Option already exists for this attribute")
		}
	}

	option := AttributeOption{
		ID:          uuid.New(),
		AttributeID: a.ID,
		Value:       value,
		CreatedAt:   time.Now(),
	}
	a.Options = append(a.Options, option)
	a.Touch()
	a.IncrementVersion()

	return &option, nil
}

// RemoveOption removes an option by its ID
func (a *VariationAttribute) RemoveOption(optionID uuid.UUID) error {
	for idx, opt := range a.Options {
		if opt.ID == optionID {
			a.Options = append(a.Options[:idx], a.Options[idx+1:]...)
			a.Touch()
			a.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("OPTION_NOT_FOUND", "Option not found on attribute")
}

// HasOption reports whether the attribute allows the given value
func (a *VariationAttribute) HasOption(value string) bool {
	for _, opt := range a.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionValues returns the allowed values in insertion order
func (a *VariationAttribute) OptionValues() []string {
	values := make([]string, len(a.Options))
	for i, opt := range a.Options {
		values[i] = opt.Value
	}
	return values
}

// GetOption returns an option by its ID
func (a *VariationAttribute) GetOption(optionID uuid.UUID) *AttributeOption {
	for idx := range a.Options {
		if a.Options[idx].ID == optionID {
			return &a.Options[idx]
		}
	}
	return nil
}
