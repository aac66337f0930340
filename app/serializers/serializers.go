// Package serializers maps catalog rows to the public JSON representation.
package serializers

import (
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/models"
)

// AssetURL turns a stored relative asset path into the URL clients should
// fetch. Callers bind it to the current request's base URL.
type AssetURL func(path string) string

func optionalURL(path string, assetURL AssetURL) *string {
	if path == "" || assetURL == nil {
		return nil
	}
	u := assetURL(path)
	if u == "" {
		return nil
	}
	return &u
}

type SpecificationValue struct {
	Name  string  `json:"name"`
	Unit  *string `json:"unit"`
	Value string  `json:"value"`
}

type Product struct {
	ID                 uint                 `json:"id"`
	Title              string               `json:"title"`
	Slug               string               `json:"slug"`
	InitialText        *string              `json:"initial_text"`
	Description        string               `json:"description"`
	Price              string               `json:"price"`
	MainImage          string               `json:"main_image"`
	MainImageURL       *string              `json:"main_image_url"`
	DimensionsImage    *string              `json:"dimensions_image"`
	DimensionsImageURL *string              `json:"dimensions_image_url"`
	Order              uint                 `json:"order"`
	IsActive           bool                 `json:"is_active"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	Specifications     []SpecificationValue `json:"specifications"`
}

func NewProduct(p models.Product, assetURL AssetURL) Product {
	out := Product{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		InitialText:     p.InitialText,
		Description:     p.Description,
		Price:           p.Price.StringFixed(2),
		MainImage:       p.MainImage,
		MainImageURL:    optionalURL(p.MainImage, assetURL),
		DimensionsImage: p.DimensionsImage,
		Order:           p.Order,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Specifications:  make([]SpecificationValue, 0, len(p.Specifications)),
	}
	if p.DimensionsImage != nil {
		out.DimensionsImageURL = optionalURL(*p.DimensionsImage, assetURL)
	}
	for _, spec := range p.Specifications {
		value := SpecificationValue{Value: spec.Value}
		if spec.SpecificationType != nil {
			value.Name = spec.SpecificationType.Name
			value.Unit = spec.SpecificationType.Unit
		}
		out.Specifications = append(out.Specifications, value)
	}
	return out
}

func NewProducts(products []models.Product, assetURL AssetURL) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, NewProduct(p, assetURL))
	}
	return out
}

type ComparisonImage struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	ImageURL   *string   `json:"image_url"`
	IsActive   bool      `json:"is_active"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func NewComparisonImage(img models.ProductSeriesComparisonImage, assetURL AssetURL) ComparisonImage {
	return ComparisonImage{
		ID:         img.ID,
		Name:       img.Name,
		Image:      img.Image,
		ImageURL:   optionalURL(img.Image, assetURL),
		IsActive:   img.IsActive,
		UploadedAt: img.UploadedAt,
	}
}

func NewComparisonImages(images []models.ProductSeriesComparisonImage, assetURL AssetURL) []ComparisonImage {
	out := make([]ComparisonImage, 0, len(images))
	for _, img := range images {
		out = append(out, NewComparisonImage(img, assetURL))
	}
	return out
}

// ProductList is the body of GET /products/.
type ProductList struct {
	Products              []Product         `json:"products"`
	ComparisonImages      []ComparisonImage `json:"comparison_images"`
	TotalProducts         int               `json:"total_products"`
	TotalComparisonImages int               `json:"total_comparison_images"`
}

func NewProductList(products []models.Product, images []models.ProductSeriesComparisonImage, assetURL AssetURL) ProductList {
	list := ProductList{
		Products:         NewProducts(products, assetURL),
		ComparisonImages: NewComparisonImages(images, assetURL),
	}
	list.TotalProducts = len(list.Products)
	list.TotalComparisonImages = len(list.ComparisonImages)
	return list
}

type Contact struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewContact(c models.Contact) Contact {
	return Contact{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func NewContacts(contacts []models.Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContact(c))
	}
	return out
}

type SpecificationType struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
}

func NewSpecificationType(s models.SpecificationType) SpecificationType {
	return SpecificationType{ID: s.ID, Name: s.Name, Description: s.Description, Unit: s.Unit}
}

func NewSpecificationTypes(specTypes []models.SpecificationType) []SpecificationType {
	out := make([]SpecificationType, 0, len(specTypes))
	for _, s := range specTypes {
		out = append(out, NewSpecificationType(s))
	}
	return out
}

// ProductSpecification is the admin shape: it exposes both foreign keys
// alongside the readable names.
type ProductSpecification struct {
	ID                    uint    `json:"id"`
	Product               uint    `json:"product"`
	ProductTitle          string  `json:"product_title"`
	SpecificationType     uint    `json:"specification_type"`
	SpecificationTypeName string  `json:"specification_type_name"`
	SpecificationTypeUnit *string `json:"specification_type_unit"`
	Value                 string  `json:"value"`
}

func NewProductSpecification(s models.ProductSpecification) ProductSpecification {
	out := ProductSpecification{
		ID:                s.ID,
		Product:           s.ProductID,
		SpecificationType: s.SpecificationTypeID,
		Value:             s.Value,
	}
	if s.Product != nil {
		out.ProductTitle = s.Product.Title
	}
	if s.SpecificationType != nil {
		out.SpecificationTypeName = s.SpecificationType.Name
		out.SpecificationTypeUnit = s.SpecificationType.Unit
	}
	return out
}

func NewProductSpecifications(specs []models.ProductSpecification) []ProductSpecification {
	out := make([]ProductSpecification, 0, len(specs))
	for _, s := range specs {
		out = append(out, NewProductSpecification(s))
	}
	return out
}
