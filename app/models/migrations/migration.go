package migrations

import (
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"gorm.io/gorm"
)

// Models is the fixed schema of the catalog, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Contact{},
		&models.SpecificationType{},
		&models.Product{},
		&models.ProductSpecification{},
		&models.ProductSeriesComparisonImage{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
