package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. NameKey carries the unique index so names are
// unique regardless of case.
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Name        string          `gorm:"not null" json:"name"`
	NameKey     string          `gorm:"uniqueIndex;not null" json:"-"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price" swaggertype:"string"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// BeforeSave derives NameKey from Name.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NameKey = ProductKey(p.Name)
	if p.NameKey == "" {
		return errors.New("product name is required")
	}
	return nil
}

// ProductKey normalizes a product name for case-insensitive comparison.
func ProductKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
