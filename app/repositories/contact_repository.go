package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ContactFilter struct {
	Search       string
	CreatedSince *time.Time
}

type ContactRepositoryImpl interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uint) (*models.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepositoryImpl {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return errors.Wrap(err, "create contact")
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get contact %d", id)
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]models.Contact, error) {
	var contacts []models.Contact
	q := r.db.WithContext(ctx).Model(&models.Contact{})
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(message) LIKE ?", term, term, term)
	}
	if filter.CreatedSince != nil {
		q = q.Where("created_at >= ?", *filter.CreatedSince)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&contacts).Error; err != nil {
		return nil, errors.Wrap(err, "list contacts")
	}
	return contacts, nil
}

// Update never touches created_at.
func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	err := r.db.WithContext(ctx).
		Model(contact).
		Select("name", "phone", "email", "message").
		Updates(contact).Error
	if err != nil {
		return errors.Wrapf(err, "update contact %d", contact.ID)
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Contact{}, id)
}
