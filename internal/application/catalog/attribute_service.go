package catalog

import (
	"context"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateAttributeRequest represents a request to create a variant attribute
type CreateAttributeRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	DisplayOrder *int   `json:"display_order"`
}

// UpdateAttributeRequest represents a request to update an attribute
type UpdateAttributeRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	DisplayOrder *int    `json:"display_order"`
}

// CreateValueRequest represents a request to add a value to an attribute
type CreateValueRequest struct {
	Value     string `json:"value" binding:"required,min=1,max=100"`
	HexCode   string `json:"hex_code" binding:"omitempty,max=7"`
	SwatchURL string `json:"swatch_url" binding:"omitempty,max=500"`
	SortOrder *int   `json:"sort_order"`
}

// AttributeResponse represents an attribute with its values
type AttributeResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DisplayOrder int             `json:"display_order"`
	Values       []ValueResponse `json:"values,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValueResponse represents one attribute value
type ValueResponse struct {
	ID        uuid.UUID `json:"id"`
	Value     string    `json:"value"`
	HexCode   string    `json:"hex_code,omitempty"`
	SwatchURL string    `json:"swatch_url,omitempty"`
	SortOrder int       `json:"sort_order"`
}

// AttributeService handles variant attribute and value management
type AttributeService struct {
	repos Repos
	tx    TxManager
}

// NewAttributeService creates a new AttributeService
func NewAttributeService(repos Repos, tx TxManager) *AttributeService {
	return &AttributeService{repos: repos, tx: tx}
}

// Create creates an attribute axis
func (s *AttributeService) Create(ctx context.Context, req CreateAttributeRequest) (*AttributeResponse, error) {
	var created *catalog.VariantAttribute

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		taken, err := repos.Attributes.NameExists(ctx, req.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "name", "An attribute with this name already exists")
		}

		attribute, err := catalog.NewVariantAttribute(req.Name)
		if err != nil {
			return err
		}
		if req.DisplayOrder != nil {
			attribute.SetDisplayOrder(*req.DisplayOrder)
		}

		if err := repos.Attributes.Save(ctx, attribute); err != nil {
			return err
		}
		created = attribute
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAttributeResponse(created, nil), nil
}

// Update renames or reorders an attribute
func (s *AttributeService) Update(ctx context.Context, id uuid.UUID, req UpdateAttributeRequest) (*AttributeResponse, error) {
	var updated *catalog.VariantAttribute

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		attribute, err := repos.Attributes.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != attribute.Name {
			taken, err := repos.Attributes.NameExists(ctx, *req.Name, attribute.ID)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewFieldError("ALREADY_EXISTS", "name", "An attribute with this name already exists")
			}
			if err := attribute.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.DisplayOrder != nil {
			attribute.SetDisplayOrder(*req.DisplayOrder)
		}

		if err := repos.Attributes.Save(ctx, attribute); err != nil {
			return err
		}
		updated = attribute
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, updated.ID)
}

// Delete removes an attribute; blocked while variant selections use it
func (s *AttributeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		attribute, err := repos.Attributes.FindByID(ctx, id)
		if err != nil {
			return err
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckAttributeRemovable(ctx, attribute.ID); err != nil {
			return err
		}

		return repos.Attributes.Delete(ctx, attribute.ID)
	})
}

// GetByID retrieves an attribute with its values
func (s *AttributeService) GetByID(ctx context.Context, id uuid.UUID) (*AttributeResponse, error) {
	attribute, err := s.repos.Attributes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	values, err := s.repos.Attributes.FindValues(ctx, attribute.ID)
	if err != nil {
		return nil, err
	}
	return toAttributeResponse(attribute, values), nil
}

// List retrieves all attributes with their values
func (s *AttributeService) List(ctx context.Context) ([]AttributeResponse, error) {
	attributes, err := s.repos.Attributes.FindAll(ctx, shared.Filter{
		Filters: make(map[string]interface{}),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AttributeResponse, len(attributes))
	for i := range attributes {
		values, err := s.repos.Attributes.FindValues(ctx, attributes[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = *toAttributeResponse(&attributes[i], values)
	}
	return responses, nil
}

// AddValue adds a value under an attribute; values are unique per attribute
func (s *AttributeService) AddValue(ctx context.Context, attributeID uuid.UUID, req CreateValueRequest) (*ValueResponse, error) {
	var created *catalog.VariantAttributeValue

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		if _, err := repos.Attributes.FindByID(ctx, attributeID); err != nil {
			return err
		}

		taken, err := repos.Attributes.ValueExists(ctx, attributeID, req.Value, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "value", "This attribute already has that value")
		}

		value, err := catalog.NewVariantAttributeValue(attributeID, req.Value)
		if err != nil {
			return err
		}
		if req.HexCode != "" || req.SwatchURL != "" {
			if err := value.SetSwatch(req.HexCode, req.SwatchURL); err != nil {
				return err
			}
		}
		if req.SortOrder != nil {
			value.SetSortOrder(*req.SortOrder)
		}

		if err := repos.Attributes.SaveValue(ctx, value); err != nil {
			return err
		}
		created = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toValueResponse(created), nil
}

// DeleteValue removes a value; blocked while variant selections use it
func (s *AttributeService) DeleteValue(ctx context.Context, valueID uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		value, err := repos.Attributes.FindValueByID(ctx, valueID)
		if err != nil {
			return err
		}

		guard := NewDependencyGuard(repos)
		if err := guard.CheckValueRemovable(ctx, value); err != nil {
			return err
		}

		return repos.Attributes.DeleteValue(ctx, value.ID)
	})
}

func toAttributeResponse(a *catalog.VariantAttribute, values []catalog.VariantAttributeValue) *AttributeResponse {
	resp := &AttributeResponse{
		ID:           a.ID,
		Name:         a.Name,
		DisplayOrder: a.DisplayOrder,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	for i := range values {
		resp.Values = append(resp.Values, *toValueResponse(&values[i]))
	}
	return resp
}

func toValueResponse(v *catalog.VariantAttributeValue) *ValueResponse {
	return &ValueResponse{
		ID:        v.ID,
		Value:     v.Value,
		HexCode:   v.HexCode,
		SwatchURL: v.SwatchURL,
		SortOrder: v.SortOrder,
	}
}
