package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductSpecificationFilter struct {
	Search              string
	ProductID           uint
	SpecificationTypeID uint
}

type ProductSpecificationRepositoryImpl interface {
	Create(ctx context.Context, spec *models.ProductSpecification) error
	GetByID(ctx context.Context, id uint) (*models.ProductSpecification, error)
	List(ctx context.Context, filter ProductSpecificationFilter) ([]models.ProductSpecification, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.ProductSpecification, error)
	ReplaceForProduct(ctx context.Context, productID uint, specs []models.ProductSpecification) error
	Update(ctx context.Context, spec *models.ProductSpecification) error
	Delete(ctx context.Context, id uint) error
	DeleteByProductIDs(ctx context.Context, productIDs []uint) (int64, error)
}

type productSpecificationRepository struct {
	db *gorm.DB
}

func NewProductSpecificationRepository(db *gorm.DB) ProductSpecificationRepositoryImpl {
	return &productSpecificationRepository{db: db}
}

func (r *productSpecificationRepository) Create(ctx context.Context, spec *models.ProductSpecification) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(spec).Error; err != nil {
		return errors.Wrap(err, "create product specification")
	}
	return nil
}

func (r *productSpecificationRepository) GetByID(ctx context.Context, id uint) (*models.ProductSpecification, error) {
	var spec models.ProductSpecification
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("SpecificationType").
		First(&spec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get product specification %d", id)
	}
	return &spec, nil
}

func (r *productSpecificationRepository) List(ctx context.Context, filter ProductSpecificationFilter) ([]models.ProductSpecification, error) {
	var specs []models.ProductSpecification
	q := r.db.WithContext(ctx).
		Model(&models.ProductSpecification{}).
		Joins("JOIN products ON products.id = product_specifications.product_id").
		Joins("JOIN specification_types ON specification_types.id = product_specifications.specification_type_id").
		Preload("Product").
		Preload("SpecificationType")
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		q = q.Where("LOWER(products.title) LIKE ? OR LOWER(specification_types.name) LIKE ? OR LOWER(product_specifications.value) LIKE ?", term, term, term)
	}
	if filter.ProductID != 0 {
		q = q.Where("product_specifications.product_id = ?", filter.ProductID)
	}
	if filter.SpecificationTypeID != 0 {
		q = q.Where("product_specifications.specification_type_id = ?", filter.SpecificationTypeID)
	}
	err := q.Order("product_specifications.product_id ASC").
		Order("product_specifications.specification_type_id ASC").
		Find(&specs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list product specifications")
	}
	return specs, nil
}

func (r *productSpecificationRepository) ListByProduct(ctx context.Context, productID uint) ([]models.ProductSpecification, error) {
	var specs []models.ProductSpecification
	err := r.db.WithContext(ctx).
		Preload("SpecificationType").
		Where("product_id = ?", productID).
		Order("specification_type_id ASC").
		Find(&specs).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list specifications of product %d", productID)
	}
	return specs, nil
}

// ReplaceForProduct swaps the product's whole specification set in one
// transaction. A duplicate specification type aborts it and leaves the
// previous set in place.
func (r *productSpecificationRepository) ReplaceForProduct(ctx context.Context, productID uint, specs []models.ProductSpecification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSpecification{}).Error; err != nil {
			return err
		}
		if len(specs) == 0 {
			return nil
		}
		for i := range specs {
			specs[i].ID = 0
			specs[i].ProductID = productID
		}
		return tx.Omit(clause.Associations).Create(&specs).Error
	})
	if err != nil {
		return errors.Wrapf(err, "replace specifications of product %d", productID)
	}
	return nil
}

func (r *productSpecificationRepository) Update(ctx context.Context, spec *models.ProductSpecification) error {
	err := r.db.WithContext(ctx).
		Model(spec).
		Select("product_id", "specification_type_id", "value").
		Updates(spec).Error
	if err != nil {
		return errors.Wrapf(err, "update product specification %d", spec.ID)
	}
	return nil
}

func (r *productSpecificationRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.ProductSpecification{}, id)
}

func (r *productSpecificationRepository) DeleteByProductIDs(ctx context.Context, productIDs []uint) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Delete(&models.ProductSpecification{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete product specifications")
	}
	return res.RowsAffected, nil
}
