package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ComparisonImageFilter struct {
	Search        string
	IsActive      *bool
	UploadedSince *time.Time
}

type ComparisonImageRepositoryImpl interface {
	Create(ctx context.Context, image *models.ProductSeriesComparisonImage) error
	GetByID(ctx context.Context, id uint) (*models.ProductSeriesComparisonImage, error)
	List(ctx context.Context, filter ComparisonImageFilter) ([]models.ProductSeriesComparisonImage, error)
	GetActive(ctx context.Context) ([]models.ProductSeriesComparisonImage, error)
	Update(ctx context.Context, image *models.ProductSeriesComparisonImage) error
	Delete(ctx context.Context, id uint) error
}

type comparisonImageRepository struct {
	db *gorm.DB
}

func NewComparisonImageRepository(db *gorm.DB) ComparisonImageRepositoryImpl {
	return &comparisonImageRepository{db: db}
}

func (r *comparisonImageRepository) Create(ctx context.Context, image *models.ProductSeriesComparisonImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return errors.Wrap(err, "create comparison image")
	}
	return nil
}

func (r *comparisonImageRepository) GetByID(ctx context.Context, id uint) (*models.ProductSeriesComparisonImage, error) {
	var image models.ProductSeriesComparisonImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get comparison image %d", id)
	}
	return &image, nil
}

func (r *comparisonImageRepository) List(ctx context.Context, filter ComparisonImageFilter) ([]models.ProductSeriesComparisonImage, error) {
	var images []models.ProductSeriesComparisonImage
	q := r.db.WithContext(ctx).Model(&models.ProductSeriesComparisonImage{})
	if strings.TrimSpace(filter.Search) != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.UploadedSince != nil {
		q = q.Where("uploaded_at >= ?", *filter.UploadedSince)
	}
	if err := q.Order("uploaded_at DESC").Order("id DESC").Find(&images).Error; err != nil {
		return nil, errors.Wrap(err, "list comparison images")
	}
	return images, nil
}

func (r *comparisonImageRepository) GetActive(ctx context.Context) ([]models.ProductSeriesComparisonImage, error) {
	var images []models.ProductSeriesComparisonImage
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active comparison images")
	}
	return images, nil
}

// Update never touches uploaded_at.
func (r *comparisonImageRepository) Update(ctx context.Context, image *models.ProductSeriesComparisonImage) error {
	err := r.db.WithContext(ctx).
		Model(image).
		Select("name", "image", "is_active").
		Updates(image).Error
	if err != nil {
		return errors.Wrapf(err, "update comparison image %d", image.ID)
	}
	return nil
}

func (r *comparisonImageRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.ProductSeriesComparisonImage{}, id)
}
