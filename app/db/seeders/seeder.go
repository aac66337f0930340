package seeders

import (
	"context"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateReport struct {
	SpecificationTypesCreated []string
	ProductsCreated           []string
	ProductsExisting          []string
	SpecificationsCreated     int
}

type ClearReport struct {
	ProductsDeleted              int64
	SpecificationsDeleted        int64
	OrphanSpecificationTypeNames []string
}

// CreateSampleProducts seeds the Rainy FL series. Existing specification
// types and products are left untouched, so running it twice is harmless.
func CreateSampleProducts(ctx context.Context, db *gorm.DB, logger *zap.Logger) (*CreateReport, error) {
	report := &CreateReport{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		specTypeRepo := repositories.NewSpecificationTypeRepository(tx)
		productRepo := repositories.NewProductRepository(tx)
		productSpecRepo := repositories.NewProductSpecificationRepository(tx)

		specTypes := make(map[string]*models.SpecificationType, len(sampleSpecificationTypes))
		for _, seed := range sampleSpecificationTypes {
			specType, created, err := specTypeRepo.FirstOrCreateByName(ctx, models.SpecificationType{
				Name:        seed.Name,
				Unit:        helpers.NullableString(seed.Unit),
				Description: helpers.NullableString(seed.Description),
			})
			if err != nil {
				return err
			}
			specTypes[seed.Name] = specType
			if created {
				report.SpecificationTypesCreated = append(report.SpecificationTypesCreated, seed.Name)
				logger.Debug("CreateSampleProducts: created specification type", zap.String("name", seed.Name))
			}
		}

		for _, seed := range sampleProducts {
			existing, err := productRepo.GetByTitle(ctx, seed.Title)
			if err != nil {
				return err
			}
			if existing != nil {
				report.ProductsExisting = append(report.ProductsExisting, seed.Title)
				continue
			}

			product := &models.Product{
				Title:       seed.Title,
				Price:       decimal.RequireFromString(seed.Price),
				InitialText: helpers.NullableString(seed.InitialText),
				Description: seed.Description,
				Order:       seed.Order,
				IsActive:    true,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			report.ProductsCreated = append(report.ProductsCreated, seed.Title)

			values := make([]specValue, 0, len(commonSpecs)+len(seed.Specs))
			values = append(values, commonSpecs...)
			values = append(values, seed.Specs...)
			for _, v := range values {
				specType, ok := specTypes[v.Name]
				if !ok {
					continue
				}
				err := productSpecRepo.Create(ctx, &models.ProductSpecification{
					ProductID:           product.ID,
					SpecificationTypeID: specType.ID,
					Value:               v.Value,
				})
				if err != nil {
					return err
				}
				report.SpecificationsCreated++
			}
			logger.Info("CreateSampleProducts: created product",
				zap.String("title", product.Title), zap.Int("specifications", len(values)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "create sample products")
	}
	return report, nil
}

// ClearSampleProducts removes the Rainy FL products, their specifications and
// any specification type no product uses anymore.
func ClearSampleProducts(ctx context.Context, db *gorm.DB, logger *zap.Logger) (*ClearReport, error) {
	report := &ClearReport{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := repositories.NewProductRepository(tx)
		productSpecRepo := repositories.NewProductSpecificationRepository(tx)
		specTypeRepo := repositories.NewSpecificationTypeRepository(tx)

		products, err := productRepo.ListByTitlePrefix(ctx, SampleProductPrefix)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}

		if report.SpecificationsDeleted, err = productSpecRepo.DeleteByProductIDs(ctx, ids); err != nil {
			return err
		}
		if report.ProductsDeleted, err = productRepo.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		if report.OrphanSpecificationTypeNames, err = specTypeRepo.DeleteOrphans(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "clear sample products")
	}

	logger.Info("ClearSampleProducts: done",
		zap.Int64("products", report.ProductsDeleted),
		zap.Int64("specifications", report.SpecificationsDeleted),
		zap.Strings("orphan_specification_types", report.OrphanSpecificationTypeNames),
	)
	return report, nil
}
