package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByPath(ctx context.Context, path string) (*catalog.Category, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindDescendants(ctx context.Context, category *catalog.Category) ([]catalog.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAncestors(ctx context.Context, category *catalog.Category, includeSelf bool) ([]catalog.Category, error) {
	args := m.Called(ctx, category, includeSelf)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) SiblingNameExists(ctx context.Context, parentID *uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, parentID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) SiblingSlugExists(ctx context.Context, parentID *uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, parentID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasActiveChildren(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SavePaths(ctx context.Context, categories []catalog.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBrandRepository is a mock implementation of BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBrandRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBrandRepository) HasProducts(ctx context.Context, brandID uuid.UUID) (bool, error) {
	args := m.Called(ctx, brandID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) HasActiveVariants(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ReplaceRelated(ctx context.Context, productID uuid.UUID, relatedIDs []uuid.UUID) error {
	args := m.Called(ctx, productID, relatedIDs)
	return args.Error(0)
}

func (m *MockProductRepository) FindRelatedIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVariantRepository is a mock implementation of VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) FindBySKU(ctx context.Context, sku string) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.ProductVariant, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariantRepository) ReplaceSelections(ctx context.Context, variantID uuid.UUID, selections []catalog.VariantAttributeSelection) error {
	args := m.Called(ctx, variantID, selections)
	return args.Error(0)
}

func (m *MockVariantRepository) FindSelections(ctx context.Context, variantID uuid.UUID) ([]catalog.VariantAttributeSelection, error) {
	args := m.Called(ctx, variantID)
	return args.Get(0).([]catalog.VariantAttributeSelection), args.Error(1)
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttributeRepository is a mock implementation of AttributeRepository
type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VariantAttribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VariantAttribute), args.Error(1)
}

func (m *MockAttributeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.VariantAttribute, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.VariantAttribute), args.Error(1)
}

func (m *MockAttributeRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) IsInUse(ctx context.Context, attributeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, attributeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) Save(ctx context.Context, attribute *catalog.VariantAttribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttributeRepository) FindValueByID(ctx context.Context, id uuid.UUID) (*catalog.VariantAttributeValue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VariantAttributeValue), args.Error(1)
}

func (m *MockAttributeRepository) FindValues(ctx context.Context, attributeID uuid.UUID) ([]catalog.VariantAttributeValue, error) {
	args := m.Called(ctx, attributeID)
	return args.Get(0).([]catalog.VariantAttributeValue), args.Error(1)
}

func (m *MockAttributeRepository) ValueExists(ctx context.Context, attributeID uuid.UUID, value string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, attributeID, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) ValueInUse(ctx context.Context, valueID uuid.UUID) (bool, error) {
	args := m.Called(ctx, valueID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) SaveValue(ctx context.Context, value *catalog.VariantAttributeValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockAttributeRepository) DeleteValue(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductReview), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]catalog.ProductReview, error) {
	args := m.Called(ctx, productID, approvedOnly, filter)
	return args.Get(0).([]catalog.ProductReview), args.Error(1)
}

func (m *MockReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.ProductReview, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]catalog.ProductReview), args.Error(1)
}

func (m *MockReviewRepository) FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*catalog.ProductReview, error) {
	args := m.Called(ctx, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductReview), args.Error(1)
}

func (m *MockReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *catalog.ProductReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MediaObject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MediaObject), args.Error(1)
}

func (m *MockMediaRepository) FindByOwner(ctx context.Context, ownerKind catalog.MediaOwnerKind, ownerID uuid.UUID) ([]catalog.MediaObject, error) {
	args := m.Called(ctx, ownerKind, ownerID)
	return args.Get(0).([]catalog.MediaObject), args.Error(1)
}

func (m *MockMediaRepository) ClearPrimaryForOwner(ctx context.Context, ownerKind catalog.MediaOwnerKind, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerKind, ownerID)
	return args.Error(0)
}

func (m *MockMediaRepository) Save(ctx context.Context, media *catalog.MediaObject) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// passthroughTx runs the function immediately on the same repositories;
// rollback behaviour is covered by the persistence tests
type passthroughTx struct {
	repos Repos
}

func (t *passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return fn(ctx, t.repos)
}

func newTestRepos() (Repos, *MockCategoryRepository, *MockBrandRepository, *MockProductRepository, *MockVariantRepository, *MockAttributeRepository, *MockReviewRepository, *MockMediaRepository) {
	categories := new(MockCategoryRepository)
	brands := new(MockBrandRepository)
	products := new(MockProductRepository)
	variants := new(MockVariantRepository)
	attributes := new(MockAttributeRepository)
	reviews := new(MockReviewRepository)
	media := new(MockMediaRepository)

	repos := Repos{
		Categories: categories,
		Brands:     brands,
		Products:   products,
		Variants:   variants,
		Attributes: attributes,
		Reviews:    reviews,
		Media:      media,
	}
	return repos, categories, brands, products, variants, attributes, reviews, media
}
