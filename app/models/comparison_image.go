package models

import "time"

const ComparisonImagePrefix = "products/comparison_images/"

// ProductSeriesComparisonImage is a chart comparing several models of a
// series. It is not tied to any single product.
type ProductSeriesComparisonImage struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	Image      string    `gorm:"size:100;not null"`
	IsActive   bool      `gorm:"not null;index"` // zero value is inactive, see NewComparisonImage
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

// NewComparisonImage returns a comparison image that is active by default.
func NewComparisonImage() *ProductSeriesComparisonImage {
	return &ProductSeriesComparisonImage{IsActive: true}
}

func (ProductSeriesComparisonImage) TableName() string {
	return "product_series_comparison_images"
}
