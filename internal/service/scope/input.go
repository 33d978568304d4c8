package scope

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// CreateScopeInput holds the parameters for creating a scope.
type CreateScopeInput struct {
	OrganizationID uuid.UUID
	Integration    domain.Integration
	Items          []domain.ItemRef
}

// Validate checks all fields and collects all errors.
func (i CreateScopeInput) Validate() error {
	var errs []domain.FieldError

	if i.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if !i.Integration.IsValid() {
		errs = append(errs, domain.FieldError{Field: "integration", Message: fmt.Sprintf("unknown integration %q", i.Integration)})
	}

	errs = append(errs, validateItems(i.Items)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateItemsInput holds the parameters for replacing a scope's item set.
type UpdateItemsInput struct {
	OrganizationID uuid.UUID
	ScopeID        uuid.UUID
	Items          []domain.ItemRef
}

// Validate checks all fields and collects all errors.
func (i UpdateItemsInput) Validate() error {
	var errs []domain.FieldError

	if i.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required"})
	}
	if i.ScopeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "scope_id", Message: "required"})
	}

	errs = append(errs, validateItems(i.Items)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateItems checks the per-item rules shared by create and update.
func validateItems(items []domain.ItemRef) []domain.FieldError {
	var errs []domain.FieldError

	if len(items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item required"})
	}

	for idx, item := range items {
		field := fmt.Sprintf("items[%d]", idx)
		if strings.TrimSpace(item.ItemID) == "" {
			errs = append(errs, domain.FieldError{Field: field + ".item_id", Message: "required"})
		}
		if len(item.ItemID) > MaxItemIDLength {
			errs = append(errs, domain.FieldError{Field: field + ".item_id", Message: fmt.Sprintf("max %d characters", MaxItemIDLength)})
		}
		if !item.ItemType.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".item_type", Message: fmt.Sprintf("unknown item type %q", item.ItemType)})
		}
	}

	return errs
}
