package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// "order" is a reserved word, so the column goes through clause.Column to
// get dialect quoting.
var productOrdering = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Table: "products", Name: "order"}},
	{Column: clause.Column{Table: "products", Name: "title"}},
	{Column: clause.Column{Table: "products", Name: "id"}},
}}

type ProductFilter struct {
	Search       string
	IsActive     *bool
	CreatedSince *time.Time
	UpdatedSince *time.Time
}

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByTitle(ctx context.Context, title string) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	ListByTitlePrefix(ctx context.Context, prefix string) ([]models.Product, error)
	GetActiveWithSpecifications(ctx context.Context) ([]models.Product, error)
	Autocomplete(ctx context.Context, term string, limit int) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return errors.Wrap(err, "create product")
	}
	return nil
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	return p.first(ctx, "products.id = ?", id)
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return p.first(ctx, "products.slug = ?", slug)
}

func (p *productRepository) GetByTitle(ctx context.Context, title string) (*models.Product, error) {
	return p.first(ctx, "products.title = ?", title)
}

func (p *productRepository) first(ctx context.Context, query string, arg interface{}) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Specifications", orderBySpecificationType).
		Preload("Specifications.SpecificationType").
		Where(query, arg).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get product")
	}
	return &product, nil
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	q := p.db.WithContext(ctx).Model(&models.Product{})
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedSince != nil {
		q = q.Where("created_at >= ?", *filter.CreatedSince)
	}
	if filter.UpdatedSince != nil {
		q = q.Where("updated_at >= ?", *filter.UpdatedSince)
	}
	if err := q.Order(productOrdering).Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (p *productRepository) ListByTitlePrefix(ctx context.Context, prefix string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("title LIKE ?", prefix+"%").
		Order(productOrdering).
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list products starting with %q", prefix)
	}
	return products, nil
}

// GetActiveWithSpecifications loads the public catalog: active products in
// display order, each with its specifications and their types eager loaded.
func (p *productRepository) GetActiveWithSpecifications(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Specifications", orderBySpecificationType).
		Preload("Specifications.SpecificationType").
		Order(productOrdering).
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active products")
	}
	return products, nil
}

func (p *productRepository) Autocomplete(ctx context.Context, term string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", likePattern(term)).
		Order(productOrdering).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "autocomplete products")
	}
	return products, nil
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := p.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return errors.Wrapf(err, "update product %d", product.ID)
	}
	return nil
}

// Delete removes the product; the foreign key cascades to its specifications.
func (p *productRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(p.db.WithContext(ctx), &models.Product{}, id)
}

func (p *productRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := p.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Product{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "delete products")
	}
	return res.RowsAffected, nil
}

func orderBySpecificationType(tx *gorm.DB) *gorm.DB {
	return tx.Order("product_specifications.specification_type_id ASC")
}
