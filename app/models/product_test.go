package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/rainy-catalog/app/db/testdb"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/shopspring/decimal"
)

func newProduct(title, slug string) *models.Product {
	return &models.Product{
		Title:       title,
		Slug:        slug,
		Description: "Filtro de lluvia",
		Price:       decimal.RequireFromString("450000.00"),
		MainImage:   models.MainImagePrefix + "fl80.png",
		IsActive:    true,
	}
}

func TestProductSlug(t *testing.T) {
	db := testdb.Open(t).WithContext(context.Background())

	t.Run("derived_from_title", func(t *testing.T) {
		p := newProduct("Rainy FL 80", "")
		if err := db.Create(p).Error; err != nil {
			t.Fatal(err)
		}
		if p.Slug != "rainy-fl-80" {
			t.Errorf("slug = %q, want %q", p.Slug, "rainy-fl-80")
		}
	})

	t.Run("diacritics_and_punctuation", func(t *testing.T) {
		p := newProduct("Área  máxima: ¡Filtro!", "")
		if err := db.Create(p).Error; err != nil {
			t.Fatal(err)
		}
		if p.Slug != "area-maxima-filtro" {
			t.Errorf("slug = %q, want %q", p.Slug, "area-maxima-filtro")
		}
	})

	t.Run("symbols_are_dropped", func(t *testing.T) {
		for title, want := range map[string]string{
			"Rainy & Co":    "rainy-co",
			"Filtro @ Casa": "filtro-casa",
			"Rainy FL_80":   "rainy-fl_80",
		} {
			p := newProduct(title, "")
			if err := db.Create(p).Error; err != nil {
				t.Fatal(err)
			}
			if p.Slug != want {
				t.Errorf("slug(%q) = %q, want %q", title, p.Slug, want)
			}
		}
	})

	t.Run("explicit_slug_kept", func(t *testing.T) {
		p := newProduct("Rainy FL 150", "fl-150")
		if err := db.Create(p).Error; err != nil {
			t.Fatal(err)
		}
		if p.Slug != "fl-150" {
			t.Errorf("slug = %q, want %q", p.Slug, "fl-150")
		}
	})

	t.Run("resave_does_not_change_slug", func(t *testing.T) {
		p := newProduct("Rainy FL 250", "")
		if err := db.Create(p).Error; err != nil {
			t.Fatal(err)
		}
		p.Title = "Rainy FL 250 Plus"
		if err := db.Save(p).Error; err != nil {
			t.Fatal(err)
		}
		var reloaded models.Product
		if err := db.First(&reloaded, p.ID).Error; err != nil {
			t.Fatal(err)
		}
		if reloaded.Slug != "rainy-fl-250" {
			t.Errorf("slug = %q after re-save, want %q", reloaded.Slug, "rainy-fl-250")
		}
	})

	t.Run("colliding_slug_is_an_error", func(t *testing.T) {
		if err := db.Create(newProduct("Rainy FL 350", "")).Error; err != nil {
			t.Fatal(err)
		}
		if err := db.Create(newProduct("Rainy FL 350", "")).Error; err == nil {
			t.Error("expected a constraint violation for duplicate slug")
		}
		var n int64
		if err := db.Model(&models.Product{}).Where("slug = ?", "rainy-fl-350").Count(&n).Error; err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("%d products with slug rainy-fl-350, want 1", n)
		}
	})

	t.Run("title_without_slug_characters", func(t *testing.T) {
		err := db.Create(newProduct("!!!", "")).Error
		if !errors.Is(err, models.ErrEmptySlug) {
			t.Errorf("err = %v, want ErrEmptySlug", err)
		}
	})
}

func TestNewModelsAreActive(t *testing.T) {
	db := testdb.Open(t)

	p := models.NewProduct()
	p.Title = "Rainy FL 80"
	p.Description = "Filtro de lluvia"
	p.Price = decimal.RequireFromString("450000")
	p.MainImage = models.MainImagePrefix + "fl80.png"
	if err := db.Create(p).Error; err != nil {
		t.Fatal(err)
	}
	img := models.NewComparisonImage()
	img.Name = "Serie FL"
	img.Image = models.ComparisonImagePrefix + "fl.png"
	if err := db.Create(img).Error; err != nil {
		t.Fatal(err)
	}

	var storedProduct models.Product
	if err := db.First(&storedProduct, p.ID).Error; err != nil {
		t.Fatal(err)
	}
	var storedImage models.ProductSeriesComparisonImage
	if err := db.First(&storedImage, img.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !storedProduct.IsActive || !storedImage.IsActive {
		t.Errorf("is_active = %v/%v, want true/true", storedProduct.IsActive, storedImage.IsActive)
	}
}

func TestSpecificationTypeString(t *testing.T) {
	unit := "mm"
	withUnit := models.SpecificationType{Name: "Tamaño de la entrada", Unit: &unit}
	if got := withUnit.String(); got != "Tamaño de la entrada (mm)" {
		t.Errorf("String() = %q", got)
	}
	withoutUnit := models.SpecificationType{Name: "Limpieza"}
	if got := withoutUnit.String(); got != "Limpieza" {
		t.Errorf("String() = %q", got)
	}
}

func TestCascadeDeletes(t *testing.T) {
	db := testdb.Open(t)

	area := models.SpecificationType{Name: "Área máxima de la cubierta"}
	flow := models.SpecificationType{Name: "Caudal máximo"}
	if err := db.Create(&area).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&flow).Error; err != nil {
		t.Fatal(err)
	}
	p := newProduct("Rainy FL 80", "")
	if err := db.Omit("Specifications").Create(p).Error; err != nil {
		t.Fatal(err)
	}
	for _, st := range []models.SpecificationType{area, flow} {
		spec := models.ProductSpecification{ProductID: p.ID, SpecificationTypeID: st.ID, Value: "120"}
		if err := db.Omit("Product", "SpecificationType").Create(&spec).Error; err != nil {
			t.Fatal(err)
		}
	}

	count := func() int64 {
		var n int64
		db.Model(&models.ProductSpecification{}).Count(&n)
		return n
	}

	if err := db.Delete(&models.SpecificationType{}, area.ID).Error; err != nil {
		t.Fatal(err)
	}
	if n := count(); n != 1 {
		t.Fatalf("after deleting a type: %d specifications, want 1", n)
	}

	if err := db.Delete(&models.Product{}, p.ID).Error; err != nil {
		t.Fatal(err)
	}
	if n := count(); n != 0 {
		t.Errorf("after deleting the product: %d specifications, want 0", n)
	}
}
