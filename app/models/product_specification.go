package models

// ProductSpecification holds the value a product has for one specification
// type. A product carries at most one value per type.
type ProductSpecification struct {
	ID                  uint               `gorm:"primaryKey"`
	ProductID           uint               `gorm:"not null;uniqueIndex:idx_product_specification_type"`
	Product             *Product           `gorm:"foreignKey:ProductID"`
	SpecificationTypeID uint               `gorm:"not null;uniqueIndex:idx_product_specification_type;index"`
	SpecificationType   *SpecificationType `gorm:"foreignKey:SpecificationTypeID;constraint:OnDelete:CASCADE"`
	Value               string             `gorm:"size:255;not null"`
}
