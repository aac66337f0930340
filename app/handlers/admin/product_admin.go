package admin

import (
	"context"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
	"github.com/Rakhulsr/rainy-catalog/app/utils/format"
	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	priceMaxDigits        = 10
	priceDecimalPlaces    = 2
	msgInvalidImage       = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgInvalidBoolean     = "Must be a valid boolean."
	msgPriceDecimalPlaces = "Ensure that there are no more than 2 decimal places."
	msgPriceDigits        = "Ensure that there are no more than 10 digits in total."
	msgPriceWholeDigits   = "Ensure that there are no more than 8 digits before the decimal point."
)

type productForm struct {
	Title           string `json:"title" validate:"required,max=255"`
	Slug            string `json:"slug" validate:"omitempty,max=255,slug"`
	InitialText     string `json:"initial_text"`
	Description     string `json:"description" validate:"required"`
	Price           string `json:"price" validate:"required,numeric"`
	MainImage       string `json:"main_image" validate:"required,max=100"`
	DimensionsImage string `json:"dimensions_image" validate:"max=100"`
	Order           string `json:"order" validate:"omitempty,number"`
}

// productRow adds the formatted price shown in admin listings.
type productRow struct {
	serializers.Product
	PriceDisplay string `json:"price_display"`
}

func newProductRow(p models.Product, assetURL serializers.AssetURL) productRow {
	return productRow{
		Product:      serializers.NewProduct(p, assetURL),
		PriceDisplay: format.FormatPrice(p.Price),
	}
}

// checkPrice enforces the decimal(10,2) column bounds on the digits as
// written, so "1.230" counts three decimal places.
func checkPrice(value string) []string {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return []string{"A valid number is required."}
	}
	digits := len(new(big.Int).Abs(price.Coefficient()).String())
	exp := int(price.Exponent())

	var total, places int
	switch {
	case exp >= 0:
		total = digits + exp
	case digits > -exp:
		total, places = digits, -exp
	default:
		total, places = -exp, -exp
	}

	switch {
	case total > priceMaxDigits:
		return []string{msgPriceDigits}
	case places > priceDecimalPlaces:
		return []string{msgPriceDecimalPlaces}
	case total-places > priceMaxDigits-priceDecimalPlaces:
		return []string{msgPriceWholeDigits}
	}
	return nil
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := time.Now()
	products, err := h.productRepo.List(r.Context(), repositories.ProductFilter{
		Search:       q.Get("q"),
		IsActive:     helpers.ParseBoolParam(q.Get("is_active")),
		CreatedSince: helpers.DateFilterSince(q.Get("created"), now),
		UpdatedSince: helpers.DateFilterSince(q.Get("updated"), now),
	})
	if err != nil {
		h.databaseError(w, "ListProducts", err)
		return
	}

	assetURL := h.assetURLs(r)
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, newProductRow(p, assetURL))
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(rows),
		"results": rows,
	})
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r, "GetProduct")
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductRow(*product, h.assetURLs(r)))
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, models.NewProduct(), http.StatusCreated)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r, "UpdateProduct")
	if !ok {
		return
	}
	h.saveProduct(w, r, product, http.StatusOK)
}

func (h *AdminHandler) loadProduct(w http.ResponseWriter, r *http.Request, op string) (*models.Product, bool) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Product")
		return nil, false
	}
	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, op, err)
		return nil, false
	}
	if product == nil {
		h.notFound(w, "Product")
		return nil, false
	}
	return product, true
}

// storeUpload saves an uploaded image for field. It returns the stored path,
// or "" with a field error when the file is not an acceptable image.
func (h *AdminHandler) storeUpload(ctx context.Context, p *payload, field, prefix string, fieldErrs map[string][]string) (string, error) {
	fh := p.file(field)
	if fh == nil {
		return "", nil
	}
	name, err := media.SaveImageUpload(ctx, h.storage, prefix, fh)
	if err == media.ErrNotAnImage || err == media.ErrImageTooLarge {
		fieldErrs[field] = []string{msgInvalidImage}
		return "", nil
	}
	return name, err
}

func (h *AdminHandler) discardUploads(ctx context.Context, names []string) {
	for _, name := range names {
		if err := h.storage.Delete(ctx, name); err != nil {
			h.logger.Warn("discardUploads: failed to remove upload", zap.String("name", name), zap.Error(err))
		}
	}
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, product *models.Product, status int) {
	ctx := r.Context()
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	uploadErrs := map[string][]string{}
	var uploaded []string
	mainImage, err := h.storeUpload(ctx, p, "main_image", models.MainImagePrefix, uploadErrs)
	if err != nil {
		h.logger.Error("saveProduct: failed to store main image", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, helpers.CodeInternal, "Could not store image.", nil)
		return
	}
	if mainImage != "" {
		uploaded = append(uploaded, mainImage)
	}
	dimensionsImage, err := h.storeUpload(ctx, p, "dimensions_image", models.DimensionsImagePrefix, uploadErrs)
	if err != nil {
		h.discardUploads(ctx, uploaded)
		h.logger.Error("saveProduct: failed to store dimensions image", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, helpers.CodeInternal, "Could not store image.", nil)
		return
	}
	if dimensionsImage != "" {
		uploaded = append(uploaded, dimensionsImage)
	}

	form := productForm{
		Title:           p.string("title", product.Title),
		Slug:            p.string("slug", product.Slug),
		InitialText:     p.string("initial_text", derefString(product.InitialText)),
		Description:     p.string("description", product.Description),
		Price:           p.string("price", priceString(product)),
		MainImage:       p.string("main_image", product.MainImage),
		DimensionsImage: p.string("dimensions_image", derefString(product.DimensionsImage)),
		Order:           p.string("order", strconv.FormatUint(uint64(product.Order), 10)),
	}
	if mainImage != "" {
		form.MainImage = mainImage
	}
	if dimensionsImage != "" {
		form.DimensionsImage = dimensionsImage
	}

	fieldErrs := h.validate(form, p.typeErrors)
	for field, msgs := range uploadErrs {
		fieldErrs[field] = msgs
	}
	if _, failed := fieldErrs["price"]; !failed && form.Price != "" {
		if msgs := checkPrice(form.Price); len(msgs) > 0 {
			fieldErrs["price"] = msgs
		}
	}
	isActive := product.IsActive
	if p.has("is_active") {
		if b := helpers.ParseBoolParam(p.values["is_active"]); b != nil {
			isActive = *b
		} else {
			fieldErrs["is_active"] = []string{msgInvalidBoolean}
		}
	}
	if len(fieldErrs) > 0 {
		h.discardUploads(ctx, uploaded)
		h.validationFailed(w, fieldErrs)
		return
	}

	product.Title = form.Title
	product.Slug = form.Slug
	product.InitialText = helpers.NullableString(form.InitialText)
	product.Description = form.Description
	product.Price = decimal.RequireFromString(form.Price).Round(priceDecimalPlaces)
	product.MainImage = form.MainImage
	product.DimensionsImage = helpers.NullableString(form.DimensionsImage)
	product.Order = helpers.ParseUintParam(form.Order)
	product.IsActive = isActive

	if product.ID == 0 {
		err = h.productRepo.Create(ctx, product)
	} else {
		err = h.productRepo.Update(ctx, product)
	}
	if err != nil {
		h.discardUploads(ctx, uploaded)
		h.databaseError(w, "saveProduct", err)
		return
	}

	saved, err := h.productRepo.GetByID(ctx, product.ID)
	if err != nil || saved == nil {
		saved = product
	}
	_ = h.render.JSON(w, status, newProductRow(*saved, h.assetURLs(r)))
}

func priceString(p *models.Product) string {
	if p.ID == 0 {
		return ""
	}
	return p.Price.StringFixed(priceDecimalPlaces)
}

// DeleteProduct removes the product together with its specifications.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Product")
		return
	}
	h.deleteResult(w, "DeleteProduct", "Product", h.productRepo.Delete(r.Context(), id))
}
