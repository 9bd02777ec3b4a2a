package identity

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressKind labels a saved address
type AddressKind string

const (
	AddressKindHome  AddressKind = "home"
	AddressKindWork  AddressKind = "work"
	AddressKindOther AddressKind = "other"
)

// Address is a user's saved shipping address. At most one address per user
// carries IsDefault; the repository swaps the flag atomically.
type Address struct {
	shared.BaseEntity
	UserID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Kind   AddressKind `gorm:"type:varchar(10);not null;default:'home'"`

	FullName       string `gorm:"type:varchar(200);not null"`
	Phone          string `gorm:"type:varchar(50);not null"`
	AlternatePhone string `gorm:"type:varchar(50)"`

	Pincode  string `gorm:"type:varchar(20);not null"`
	Locality string `gorm:"type:varchar(200)"`
	Line     string `gorm:"type:varchar(500);not null"`
	City     string `gorm:"type:varchar(100);not null"`
	State    string `gorm:"type:varchar(100);not null"`
	Landmark string `gorm:"type:varchar(200)"`

	IsDefault bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// AddressFields carries the mutable fields of an address
type AddressFields struct {
	Kind           AddressKind
	FullName       string
	Phone          string
	AlternatePhone string
	Pincode        string
	Locality       string
	Line           string
	City           string
	State          string
	Landmark       string
}

// NewAddress creates an address for a user
func NewAddress(userID uuid.UUID, fields AddressFields) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "user_id", "User is required")
	}

	address := &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
	if err := address.apply(fields); err != nil {
		return nil, err
	}
	return address, nil
}

// Update replaces the address fields
func (a *Address) Update(fields AddressFields) error {
	if err := a.apply(fields); err != nil {
		return err
	}
	a.Touch()
	return nil
}

func (a *Address) apply(fields AddressFields) error {
	if err := validateAddressKind(fields.Kind); err != nil {
		return err
	}
	if strings.TrimSpace(fields.FullName) == "" {
		return shared.NewFieldError("INVALID_INPUT", "full_name", "Full name cannot be empty")
	}
	if strings.TrimSpace(fields.Phone) == "" {
		return shared.NewFieldError("INVALID_INPUT", "phone", "Phone cannot be empty")
	}
	if strings.TrimSpace(fields.Pincode) == "" {
		return shared.NewFieldError("INVALID_INPUT", "pincode", "Pincode cannot be empty")
	}
	if strings.TrimSpace(fields.Line) == "" {
		return shared.NewFieldError("INVALID_INPUT", "line", "Address line cannot be empty")
	}
	if strings.TrimSpace(fields.City) == "" {
		return shared.NewFieldError("INVALID_INPUT", "city", "City cannot be empty")
	}
	if strings.TrimSpace(fields.State) == "" {
		return shared.NewFieldError("INVALID_INPUT", "state", "State cannot be empty")
	}

	a.Kind = fields.Kind
	a.FullName = strings.TrimSpace(fields.FullName)
	a.Phone = strings.TrimSpace(fields.Phone)
	a.AlternatePhone = strings.TrimSpace(fields.AlternatePhone)
	a.Pincode = strings.TrimSpace(fields.Pincode)
	a.Locality = strings.TrimSpace(fields.Locality)
	a.Line = strings.TrimSpace(fields.Line)
	a.City = strings.TrimSpace(fields.City)
	a.State = strings.TrimSpace(fields.State)
	a.Landmark = strings.TrimSpace(fields.Landmark)
	return nil
}

// MarkDefault flags this as the user's default address. The repository
// clears the flag on the user's other addresses in the same transaction.
func (a *Address) MarkDefault() {
	a.IsDefault = true
	a.Touch()
}

// ClearDefault removes the default flag
func (a *Address) ClearDefault() {
	a.IsDefault = false
	a.Touch()
}

func validateAddressKind(kind AddressKind) error {
	switch kind {
	case AddressKindHome, AddressKindWork, AddressKindOther:
		return nil
	default:
		return shared.NewFieldError("INVALID_INPUT", "kind", "Address kind must be home, work, or other")
	}
}
