package models

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MainImagePrefix       = "products/main_images/"
	DimensionsImagePrefix = "products/dimensions_images/"
)

var ErrEmptySlug = errors.New("product slug cannot be empty")

type Product struct {
	ID              uint            `gorm:"primaryKey"`
	Title           string          `gorm:"size:255;not null"`
	Slug            string          `gorm:"size:255;not null;uniqueIndex"`
	InitialText     *string         `gorm:"type:text"`
	Description     string          `gorm:"type:text;not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MainImage       string          `gorm:"size:100;not null"`
	DimensionsImage *string         `gorm:"size:100"`
	Order           uint            `gorm:"not null;default:0"`
	// IsActive is a plain bool, so a zero Product is inactive. Use NewProduct
	// for a product that starts out published.
	IsActive       bool                   `gorm:"not null;index"`
	Specifications []ProductSpecification `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProduct returns a product that is active by default.
func NewProduct() *Product {
	return &Product{IsActive: true}
}

// BeforeSave fills a blank slug from the title. A slug that is already set
// is left alone, so re-saving never changes it.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = slug.Make(stripPunctuation(p.Title))
	}
	if p.Slug == "" {
		return ErrEmptySlug
	}
	return nil
}

// stripPunctuation drops everything except letters, digits, whitespace,
// underscores and hyphens. Combining marks stay so that decomposed accents
// are still transliterated. Symbols like "&" and "@" are removed instead of
// being spelled out as words.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r),
			unicode.Is(unicode.Mn, r), r == '_', r == '-':
			return r
		}
		return -1
	}, s)
}
