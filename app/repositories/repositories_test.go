package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/db/testdb"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func createProduct(t *testing.T, repo repositories.ProductRepositoryImpl, title string, order uint, active bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:       title,
		Description: title + " description",
		Price:       decimal.RequireFromString("100.50"),
		MainImage:   models.MainImagePrefix + "x.png",
		Order:       order,
		IsActive:    active,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create product %q: %v", title, err)
	}
	return p
}

func createSpecType(t *testing.T, repo repositories.SpecificationTypeRepositoryImpl, name string) *models.SpecificationType {
	t.Helper()
	st := &models.SpecificationType{Name: name}
	if err := repo.Create(context.Background(), st); err != nil {
		t.Fatalf("create specification type %q: %v", name, err)
	}
	return st
}

func TestGetActiveWithSpecifications(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)
	specTypes := repositories.NewSpecificationTypeRepository(db)
	specs := repositories.NewProductSpecificationRepository(db)

	first := createSpecType(t, specTypes, "Área máxima de la cubierta")
	second := createSpecType(t, specTypes, "Caudal máximo")
	third := createSpecType(t, specTypes, "Tamaño de la entrada")

	b := createProduct(t, products, "Beta", 1, true)
	a := createProduct(t, products, "Alpha", 1, true)
	createProduct(t, products, "Zeta", 0, true)
	createProduct(t, products, "Hidden", 0, false)

	// Inserted out of type order on purpose.
	for _, st := range []*models.SpecificationType{third, first, second} {
		if err := specs.Create(ctx, &models.ProductSpecification{ProductID: a.ID, SpecificationTypeID: st.ID, Value: st.Name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := specs.Create(ctx, &models.ProductSpecification{ProductID: b.ID, SpecificationTypeID: second.ID, Value: "180"}); err != nil {
		t.Fatal(err)
	}

	got, err := products.GetActiveWithSpecifications(ctx)
	if err != nil {
		t.Fatal(err)
	}

	wantTitles := []string{"Zeta", "Alpha", "Beta"}
	if len(got) != len(wantTitles) {
		t.Fatalf("got %d products, want %d", len(got), len(wantTitles))
	}
	for i, title := range wantTitles {
		if got[i].Title != title {
			t.Errorf("product[%d] = %q, want %q", i, got[i].Title, title)
		}
	}

	alpha := got[1]
	if len(alpha.Specifications) != 3 {
		t.Fatalf("Alpha has %d specifications, want 3", len(alpha.Specifications))
	}
	for i, st := range []*models.SpecificationType{first, second, third} {
		spec := alpha.Specifications[i]
		if spec.SpecificationTypeID != st.ID {
			t.Errorf("spec[%d] type = %d, want %d", i, spec.SpecificationTypeID, st.ID)
		}
		if spec.SpecificationType == nil || spec.SpecificationType.Name != st.Name {
			t.Errorf("spec[%d] type not preloaded", i)
		}
	}
}

func TestProductSpecificationPairIsUnique(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)
	specTypes := repositories.NewSpecificationTypeRepository(db)
	specs := repositories.NewProductSpecificationRepository(db)

	p := createProduct(t, products, "Rainy FL 80", 1, true)
	st := createSpecType(t, specTypes, "Caudal máximo")

	if err := specs.Create(ctx, &models.ProductSpecification{ProductID: p.ID, SpecificationTypeID: st.ID, Value: "120"}); err != nil {
		t.Fatal(err)
	}
	if err := specs.Create(ctx, &models.ProductSpecification{ProductID: p.ID, SpecificationTypeID: st.ID, Value: "130"}); err == nil {
		t.Error("expected duplicate (product, specification type) to fail")
	}
}

func TestReplaceForProduct(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)
	specTypes := repositories.NewSpecificationTypeRepository(db)
	specs := repositories.NewProductSpecificationRepository(db)

	p := createProduct(t, products, "Rainy FL 80", 1, true)
	area := createSpecType(t, specTypes, "Área")
	flow := createSpecType(t, specTypes, "Caudal")

	err := specs.ReplaceForProduct(ctx, p.ID, []models.ProductSpecification{
		{SpecificationTypeID: area.ID, Value: "120"},
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("replaces_the_set", func(t *testing.T) {
		err := specs.ReplaceForProduct(ctx, p.ID, []models.ProductSpecification{
			{SpecificationTypeID: flow.ID, Value: "90"},
			{SpecificationTypeID: area.ID, Value: "150"},
		})
		if err != nil {
			t.Fatal(err)
		}
		got, err := specs.ListByProduct(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].SpecificationTypeID != area.ID || got[0].Value != "150" {
			t.Errorf("unexpected specifications %+v", got)
		}
	})

	t.Run("duplicate_rolls_back", func(t *testing.T) {
		err := specs.ReplaceForProduct(ctx, p.ID, []models.ProductSpecification{
			{SpecificationTypeID: area.ID, Value: "1"},
			{SpecificationTypeID: area.ID, Value: "2"},
		})
		if err == nil {
			t.Fatal("expected duplicate type to fail")
		}
		got, err := specs.ListByProduct(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("previous set lost: %+v", got)
		}
	})
}

func TestProductSpecificationList(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)
	specTypes := repositories.NewSpecificationTypeRepository(db)
	specs := repositories.NewProductSpecificationRepository(db)

	p1 := createProduct(t, products, "Rainy FL 80", 1, true)
	p2 := createProduct(t, products, "Rainy FL 150", 2, true)
	area := createSpecType(t, specTypes, "Area")
	flow := createSpecType(t, specTypes, "Flow")
	for _, s := range []models.ProductSpecification{
		{ProductID: p2.ID, SpecificationTypeID: flow.ID, Value: "180"},
		{ProductID: p1.ID, SpecificationTypeID: flow.ID, Value: "120"},
		{ProductID: p1.ID, SpecificationTypeID: area.ID, Value: "120"},
	} {
		s := s
		if err := specs.Create(ctx, &s); err != nil {
			t.Fatal(err)
		}
	}

	all, err := specs.List(ctx, repositories.ProductSpecificationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ProductID != p1.ID || all[0].SpecificationTypeID != area.ID {
		t.Errorf("unexpected ordering %+v", all)
	}
	if all[0].Product == nil || all[0].Product.Title != "Rainy FL 80" {
		t.Error("product not preloaded")
	}

	byType, err := specs.List(ctx, repositories.ProductSpecificationFilter{SpecificationTypeID: flow.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(byType) != 2 {
		t.Errorf("filter by type: got %d, want 2", len(byType))
	}

	search, err := specs.List(ctx, repositories.ProductSpecificationFilter{Search: "fl 150"})
	if err != nil {
		t.Fatal(err)
	}
	if len(search) != 1 || search[0].ProductID != p2.ID {
		t.Errorf("search: %+v", search)
	}
}

func TestSpecificationTypes(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)
	specTypes := repositories.NewSpecificationTypeRepository(db)
	specs := repositories.NewProductSpecificationRepository(db)

	unit := "mm"
	st, created, err := specTypes.FirstOrCreateByName(ctx, models.SpecificationType{Name: "Tamaño de la entrada", Unit: &unit})
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	again, created, err := specTypes.FirstOrCreateByName(ctx, models.SpecificationType{Name: "Tamaño de la entrada"})
	if err != nil || created || again.ID != st.ID {
		t.Fatalf("second call: created=%v err=%v id=%d", created, err, again.ID)
	}

	if err := specTypes.Create(ctx, &models.SpecificationType{Name: "Tamaño de la entrada"}); err == nil {
		t.Error("expected unique name violation")
	}

	used := createSpecType(t, specTypes, "Caudal máximo")
	createSpecType(t, specTypes, "Limpieza")
	p := createProduct(t, products, "Rainy FL 80", 1, true)
	if err := specs.Create(ctx, &models.ProductSpecification{ProductID: p.ID, SpecificationTypeID: used.ID, Value: "120"}); err != nil {
		t.Fatal(err)
	}

	names, err := specTypes.DeleteOrphans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Tamaño de la entrada" || names[1] != "Limpieza" {
		t.Errorf("orphans = %v", names)
	}
	remaining, err := specTypes.List(ctx, repositories.SpecificationTypeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].ID != used.ID {
		t.Errorf("remaining = %+v", remaining)
	}
}

func TestAutocomplete(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)

	for i, title := range []string{"Rainy FL 80", "Rainy FL 150", "Other"} {
		createProduct(t, products, title, uint(i), true)
	}
	got, err := products.Autocomplete(ctx, "fl", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Rainy FL 80" {
		t.Errorf("autocomplete = %+v", got)
	}
}

func TestProductList(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := repositories.NewProductRepository(db)

	createProduct(t, products, "Rainy FL 80", 1, true)
	createProduct(t, products, "Rainy FL 150", 2, false)

	inactive := false
	got, err := products.List(ctx, repositories.ProductFilter{IsActive: &inactive})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Rainy FL 150" {
		t.Errorf("inactive filter = %+v", got)
	}

	got, err = products.List(ctx, repositories.ProductFilter{Search: "150 description"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("search = %d results, want 1", len(got))
	}

	prefixed, err := products.ListByTitlePrefix(ctx, "Rainy FL")
	if err != nil {
		t.Fatal(err)
	}
	if len(prefixed) != 2 {
		t.Errorf("prefix = %d results, want 2", len(prefixed))
	}

	bySlug, err := products.GetBySlug(ctx, "rainy-fl-80")
	if err != nil || bySlug == nil {
		t.Fatalf("GetBySlug: %v %v", bySlug, err)
	}
	missing, err := products.GetByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetByID(missing) = %v, %v", missing, err)
	}
}

func TestContacts(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	contacts := repositories.NewContactRepository(db)

	old := &models.Contact{Name: "Ana", Email: "ana@example.com", Message: "Hola"}
	recent := &models.Contact{Name: "Luis", Email: "luis@example.com", Message: "Cotización FL 80"}
	for _, c := range []*models.Contact{old, recent} {
		if err := contacts.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	lastYear := time.Now().AddDate(-1, 0, 0)
	if err := db.Model(old).UpdateColumn("created_at", lastYear).Error; err != nil {
		t.Fatal(err)
	}

	all, err := contacts.List(ctx, repositories.ContactFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != recent.ID {
		t.Errorf("want newest first, got %+v", all)
	}

	since := time.Now().Add(-time.Hour)
	recentOnly, err := contacts.List(ctx, repositories.ContactFilter{CreatedSince: &since})
	if err != nil {
		t.Fatal(err)
	}
	if len(recentOnly) != 1 || recentOnly[0].ID != recent.ID {
		t.Errorf("created filter = %+v", recentOnly)
	}

	search, err := contacts.List(ctx, repositories.ContactFilter{Search: "ANA@"})
	if err != nil {
		t.Fatal(err)
	}
	if len(search) != 1 || search[0].ID != old.ID {
		t.Errorf("search = %+v", search)
	}

	recent.Message = "Actualizado"
	if err := contacts.Update(ctx, recent); err != nil {
		t.Fatal(err)
	}
	reloaded, err := contacts.GetByID(ctx, recent.ID)
	if err != nil || reloaded.Message != "Actualizado" {
		t.Errorf("update not persisted: %+v %v", reloaded, err)
	}

	if err := contacts.Delete(ctx, recent.ID); err != nil {
		t.Fatal(err)
	}
	if err := contacts.Delete(ctx, recent.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestComparisonImages(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	images := repositories.NewComparisonImageRepository(db)

	for _, img := range []models.ProductSeriesComparisonImage{
		{Name: "Serie FL grande", Image: models.ComparisonImagePrefix + "b.png", IsActive: true},
		{Name: "Borrador", Image: models.ComparisonImagePrefix + "c.png", IsActive: false},
		{Name: "Serie FL", Image: models.ComparisonImagePrefix + "a.png", IsActive: true},
	} {
		img := img
		if err := images.Create(ctx, &img); err != nil {
			t.Fatal(err)
		}
	}

	active, err := images.GetActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0].Name != "Serie FL" || active[1].Name != "Serie FL grande" {
		t.Errorf("active = %+v", active)
	}

	yes := true
	filtered, err := images.List(ctx, repositories.ComparisonImageFilter{Search: "serie", IsActive: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered = %d, want 2", len(filtered))
	}
}
