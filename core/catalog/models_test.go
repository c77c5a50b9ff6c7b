package catalog

import "testing"

func TestUpdateCategory_Validate(t *testing.T) {
	orig := Category{ID: 1, Name: "DASACA", Slug: SlugDasaca, Description: "certification track"}

	t.Run("omitted fields fall back to the original", func(t *testing.T) {
		uc := UpdateCategory{}
		if err := uc.Validate(orig); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if uc.Name != orig.Name || uc.Slug != orig.Slug || uc.Description != orig.Description {
			t.Errorf("payload = %+v; want the original values kept", uc)
		}
	})

	t.Run("provided fields win", func(t *testing.T) {
		uc := UpdateCategory{Name: "  DASACA Track  ", Slug: "DASACA2"}
		if err := uc.Validate(orig); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if uc.Name != "DASACA Track" || uc.Slug != "dasaca2" {
			t.Errorf("payload = %+v; want cleaned provided values", uc)
		}
		if uc.Description != orig.Description {
			t.Errorf("Description = %q; want the original kept", uc.Description)
		}
	})
}

func TestUpdateCourse_Validate(t *testing.T) {
	sale := 399.0
	orig := Course{
		ID:            1,
		CategoryID:    2,
		Title:         "DASACA Foundation",
		Description:   "entry-level track",
		Price:         450,
		DiscountPrice: &sale,
		Duration:      "12 weeks",
		Level:         "Beginner",
	}

	t.Run("omitted fields fall back to the original", func(t *testing.T) {
		uc := UpdateCourse{}
		if err := uc.Validate(orig); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if uc.Title != orig.Title || uc.CategoryID != orig.CategoryID {
			t.Errorf("payload = %+v; want the original values kept", uc)
		}
		if uc.Description != orig.Description || uc.Duration != orig.Duration || uc.Level != orig.Level {
			t.Errorf("payload = %+v; want the original values kept", uc)
		}
		if uc.Price == nil || *uc.Price != orig.Price {
			t.Errorf("Price = %v; want the original %v", uc.Price, orig.Price)
		}
		if uc.DiscountPrice == nil || *uc.DiscountPrice != sale {
			t.Errorf("DiscountPrice = %v; want the original %v", uc.DiscountPrice, sale)
		}
	})

	t.Run("provided fields win", func(t *testing.T) {
		price := 500.0
		uc := UpdateCourse{
			CategoryID: 3,
			Title:      "  DASACA Practitioner  ",
			Price:      &price,
			Level:      "Intermediate",
		}
		if err := uc.Validate(orig); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if uc.Title != "DASACA Practitioner" || uc.CategoryID != 3 || uc.Level != "Intermediate" {
			t.Errorf("payload = %+v; want provided values", uc)
		}
		if *uc.Price != price {
			t.Errorf("Price = %v; want %v", *uc.Price, price)
		}
		if uc.Description != orig.Description {
			t.Errorf("Description = %q; want the original kept", uc.Description)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		uc := UpdateCourse{Level: "Guru"}
		if err := uc.Validate(orig); err == nil {
			t.Error("want a validation error for an unknown level")
		}
	})
}
