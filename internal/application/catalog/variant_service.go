package catalog

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VariantService handles product variant CRUD and attribute selections
type VariantService struct {
	repos Repos
	tx    TxManager
}

// NewVariantService creates a new VariantService
func NewVariantService(repos Repos, tx TxManager) *VariantService {
	return &VariantService{repos: repos, tx: tx}
}

// Create creates a variant under a product. The SKU is caller-provided and
// must be globally unique.
func (s *VariantService) Create(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error) {
	var created *catalog.ProductVariant
	var selections []catalog.VariantAttributeSelection

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		if _, err := repos.Products.FindByID(ctx, req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewFieldError("INVALID_INPUT", "product_id", "Product not found")
			}
			return err
		}

		taken, err := repos.Variants.SKUExists(ctx, req.SKU, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "sku", "A variant with this SKU already exists")
		}

		variant, err := catalog.NewProductVariant(req.ProductID, req.SKU, req.Price)
		if err != nil {
			return err
		}

		if req.SalePrice != nil {
			if err := variant.SetPricing(req.Price, req.SalePrice); err != nil {
				return err
			}
		}
		if req.Stock != nil {
			if err := variant.SetStock(*req.Stock); err != nil {
				return err
			}
		}
		variant.SetDimensions(req.WeightKg, req.LengthCm, req.WidthCm, req.HeightCm)
		if req.CostPrice != nil || req.TaxClass != "" {
			if err := variant.SetCosting(req.CostPrice, req.TaxClass); err != nil {
				return err
			}
		}

		if err := repos.Variants.Save(ctx, variant); err != nil {
			return err
		}

		selections, err = s.buildSelections(ctx, repos, variant.ID, req.Selections)
		if err != nil {
			return err
		}
		if err := repos.Variants.ReplaceSelections(ctx, variant.ID, selections); err != nil {
			return err
		}

		created = variant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToVariantResponse(created, selections), nil
}

// Update edits a variant. The SKU never changes after creation.
func (s *VariantService) Update(ctx context.Context, id uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	var updated *catalog.ProductVariant
	var selections []catalog.VariantAttributeSelection

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		variant, err := repos.Variants.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Price != nil || req.SalePrice != nil || req.ClearSale {
			price := variant.Price
			if req.Price != nil {
				price = *req.Price
			}
			salePrice := variant.SalePrice
			if req.ClearSale {
				salePrice = nil
			} else if req.SalePrice != nil {
				salePrice = req.SalePrice
			}
			if err := variant.SetPricing(price, salePrice); err != nil {
				return err
			}
		}
		if req.Stock != nil {
			if err := variant.SetStock(*req.Stock); err != nil {
				return err
			}
		}
		if req.WeightKg != nil || req.LengthCm != nil || req.WidthCm != nil || req.HeightCm != nil {
			weight := variant.WeightKg
			length := variant.LengthCm
			width := variant.WidthCm
			height := variant.HeightCm
			if req.WeightKg != nil {
				weight = req.WeightKg
			}
			if req.LengthCm != nil {
				length = req.LengthCm
			}
			if req.WidthCm != nil {
				width = req.WidthCm
			}
			if req.HeightCm != nil {
				height = req.HeightCm
			}
			variant.SetDimensions(weight, length, width, height)
		}
		if req.CostPrice != nil || req.TaxClass != nil {
			costPrice := variant.CostPrice
			taxClass := variant.TaxClass
			if req.CostPrice != nil {
				costPrice = req.CostPrice
			}
			if req.TaxClass != nil {
				taxClass = *req.TaxClass
			}
			if err := variant.SetCosting(costPrice, taxClass); err != nil {
				return err
			}
		}

		if err := repos.Variants.Save(ctx, variant); err != nil {
			return err
		}

		if req.Selections != nil {
			selections, err = s.buildSelections(ctx, repos, variant.ID, req.Selections)
			if err != nil {
				return err
			}
			if err := repos.Variants.ReplaceSelections(ctx, variant.ID, selections); err != nil {
				return err
			}
		} else {
			selections, err = repos.Variants.FindSelections(ctx, variant.ID)
			if err != nil {
				return err
			}
		}

		updated = variant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToVariantResponse(updated, selections), nil
}

// Activate re-enables an inactive variant
func (s *VariantService) Activate(ctx context.Context, id uuid.UUID) (*VariantResponse, error) {
	return s.toggleActive(ctx, id, true)
}

// Deactivate disables a variant
func (s *VariantService) Deactivate(ctx context.Context, id uuid.UUID) (*VariantResponse, error) {
	return s.toggleActive(ctx, id, false)
}

func (s *VariantService) toggleActive(ctx context.Context, id uuid.UUID, active bool) (*VariantResponse, error) {
	var variant *catalog.ProductVariant

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		variant, err = repos.Variants.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if active {
			err = variant.Activate()
		} else {
			err = variant.Deactivate()
		}
		if err != nil {
			return err
		}
		return repos.Variants.Save(ctx, variant)
	})
	if err != nil {
		return nil, err
	}

	selections, err := s.repos.Variants.FindSelections(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	return ToVariantResponse(variant, selections), nil
}

// Delete permanently removes a variant. It must be inactive first.
func (s *VariantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		variant, err := repos.Variants.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if variant.IsActive {
			return shared.NewDomainError("INVALID_STATE", "Variant must be deactivated before it can be deleted")
		}
		return repos.Variants.Delete(ctx, variant.ID)
	})
}

// GetByID retrieves a variant with its attribute selections
func (s *VariantService) GetByID(ctx context.Context, id uuid.UUID) (*VariantResponse, error) {
	variant, err := s.repos.Variants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	selections, err := s.repos.Variants.FindSelections(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	return ToVariantResponse(variant, selections), nil
}

// ListByProduct retrieves a product's variants
func (s *VariantService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	variants, err := s.repos.Variants.FindByProduct(ctx, productID, shared.Filter{
		Filters: make(map[string]interface{}),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]VariantResponse, len(variants))
	for i := range variants {
		selections, err := s.repos.Variants.FindSelections(ctx, variants[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = *ToVariantResponse(&variants[i], selections)
	}
	return responses, nil
}

// buildSelections validates that each value belongs to its declared
// attribute and that no attribute repeats
func (s *VariantService) buildSelections(ctx context.Context, repos Repos, variantID uuid.UUID, reqs []SelectionRequest) ([]catalog.VariantAttributeSelection, error) {
	seen := make(map[uuid.UUID]bool, len(reqs))
	selections := make([]catalog.VariantAttributeSelection, 0, len(reqs))

	for _, sel := range reqs {
		if seen[sel.AttributeID] {
			return nil, shared.NewFieldError("INVALID_INPUT", "selections", "Each attribute may appear only once per variant")
		}
		seen[sel.AttributeID] = true

		value, err := repos.Attributes.FindValueByID(ctx, sel.ValueID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewFieldError("INVALID_INPUT", "selections", "Attribute value not found")
			}
			return nil, err
		}
		if value.AttributeID != sel.AttributeID {
			return nil, shared.NewFieldError("INVALID_INPUT", "selections", "Value does not belong to the declared attribute")
		}

		selections = append(selections, catalog.VariantAttributeSelection{
			VariantID:   variantID,
			AttributeID: sel.AttributeID,
			ValueID:     sel.ValueID,
		})
	}
	return selections, nil
}
