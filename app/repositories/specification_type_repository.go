package repositories

import (
	"context"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const orphanSpecificationTypes = "NOT EXISTS (SELECT 1 FROM product_specifications ps WHERE ps.specification_type_id = specification_types.id)"

type SpecificationTypeFilter struct {
	Search string
}

type SpecificationTypeRepositoryImpl interface {
	Create(ctx context.Context, specType *models.SpecificationType) error
	GetByID(ctx context.Context, id uint) (*models.SpecificationType, error)
	GetByName(ctx context.Context, name string) (*models.SpecificationType, error)
	List(ctx context.Context, filter SpecificationTypeFilter) ([]models.SpecificationType, error)
	Autocomplete(ctx context.Context, term string, limit int) ([]models.SpecificationType, error)
	FirstOrCreateByName(ctx context.Context, defaults models.SpecificationType) (*models.SpecificationType, bool, error)
	Update(ctx context.Context, specType *models.SpecificationType) error
	Delete(ctx context.Context, id uint) error
	DeleteOrphans(ctx context.Context) ([]string, error)
}

type specificationTypeRepository struct {
	db *gorm.DB
}

func NewSpecificationTypeRepository(db *gorm.DB) SpecificationTypeRepositoryImpl {
	return &specificationTypeRepository{db: db}
}

func (r *specificationTypeRepository) Create(ctx context.Context, specType *models.SpecificationType) error {
	if err := r.db.WithContext(ctx).Create(specType).Error; err != nil {
		return errors.Wrap(err, "create specification type")
	}
	return nil
}

func (r *specificationTypeRepository) GetByID(ctx context.Context, id uint) (*models.SpecificationType, error) {
	var specType models.SpecificationType
	err := r.db.WithContext(ctx).First(&specType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get specification type %d", id)
	}
	return &specType, nil
}

func (r *specificationTypeRepository) GetByName(ctx context.Context, name string) (*models.SpecificationType, error) {
	var specType models.SpecificationType
	err := r.db.WithContext(ctx).First(&specType, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get specification type %q", name)
	}
	return &specType, nil
}

func (r *specificationTypeRepository) List(ctx context.Context, filter SpecificationTypeFilter) ([]models.SpecificationType, error) {
	var specTypes []models.SpecificationType
	q := r.db.WithContext(ctx).Model(&models.SpecificationType{})
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", term, term)
	}
	if err := q.Order("name ASC").Find(&specTypes).Error; err != nil {
		return nil, errors.Wrap(err, "list specification types")
	}
	return specTypes, nil
}

func (r *specificationTypeRepository) Autocomplete(ctx context.Context, term string, limit int) ([]models.SpecificationType, error) {
	var specTypes []models.SpecificationType
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", likePattern(term)).
		Order("name ASC").
		Limit(limit).
		Find(&specTypes).Error
	if err != nil {
		return nil, errors.Wrap(err, "autocomplete specification types")
	}
	return specTypes, nil
}

// FirstOrCreateByName looks the type up by name and inserts defaults when it
// does not exist yet. The bool reports whether a row was created.
func (r *specificationTypeRepository) FirstOrCreateByName(ctx context.Context, defaults models.SpecificationType) (*models.SpecificationType, bool, error) {
	existing, err := r.GetByName(ctx, defaults.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	specType := defaults
	if err := r.Create(ctx, &specType); err != nil {
		return nil, false, err
	}
	return &specType, true, nil
}

func (r *specificationTypeRepository) Update(ctx context.Context, specType *models.SpecificationType) error {
	if err := r.db.WithContext(ctx).Save(specType).Error; err != nil {
		return errors.Wrapf(err, "update specification type %d", specType.ID)
	}
	return nil
}

// Delete removes the type; the foreign key cascades to its product specifications.
func (r *specificationTypeRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.SpecificationType{}, id)
}

// DeleteOrphans removes specification types no product uses and returns their names.
func (r *specificationTypeRepository) DeleteOrphans(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SpecificationType{}).Where(orphanSpecificationTypes).Order("id ASC").Pluck("name", &names).Error; err != nil {
			return err
		}
		if len(names) == 0 {
			return nil
		}
		return tx.Where(orphanSpecificationTypes).Delete(&models.SpecificationType{}).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "delete orphan specification types")
	}
	return names, nil
}
