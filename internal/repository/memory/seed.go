package memory

import (
	"context"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// SampleCatalog is the starter range loaded into an empty catalog.
func SampleCatalog() []domain.Product {
	return []domain.Product{
		{
			Name:        "Neem Soap",
			NameBengali: "নিম সাবান",
			Description: "Antibacterial handmade soap with pure neem extract for clear, healthy skin.",
			Price:       280,
			Category:    "soaps",
			ImageURL:    "https://images.unsplash.com/photo-1600857062241-98e5dba7f214?w=600",
			Ingredients: "Neem extract, coconut oil, olive oil, shea butter",
			Benefits:    "Fights acne, soothes irritation, deep cleanses",
			InStock:     true,
			Featured:    true,
		},
		{
			Name:        "Turmeric Soap",
			NameBengali: "হলুদ সাবান",
			Description: "Brightening soap made with turmeric and natural oils for a radiant glow.",
			Price:       320,
			Category:    "soaps",
			ImageURL:    "https://images.unsplash.com/photo-1607006344380-b6775a0824a7?w=600",
			Ingredients: "Turmeric powder, coconut oil, castor oil, honey",
			Benefits:    "Evens skin tone, reduces blemishes, anti-inflammatory",
			InStock:     true,
			Featured:    true,
		},
		{
			Name:        "Aloe Vera Soap",
			NameBengali: "অ্যালোভেরা সাবান",
			Description: "Gentle moisturizing soap with fresh aloe vera gel for sensitive skin.",
			Price:       300,
			Category:    "soaps",
			ImageURL:    "https://images.unsplash.com/photo-1608248597279-f99d160bfcbc?w=600",
			Ingredients: "Aloe vera gel, coconut oil, glycerin, vitamin E",
			Benefits:    "Hydrates, calms sunburn, suitable for sensitive skin",
			InStock:     true,
			Featured:    true,
		},
		{
			Name:        "Lavender Soap",
			NameBengali: "ল্যাভেন্ডার সাবান",
			Description: "Relaxing lavender soap with essential oils for a calming bath.",
			Price:       290,
			Category:    "soaps",
			ImageURL:    "https://images.unsplash.com/photo-1599305090598-fe179d501227?w=600",
			Ingredients: "Lavender essential oil, olive oil, shea butter",
			Benefits:    "Calms the mind, softens skin, pleasant fragrance",
			InStock:     true,
		},
		{
			Name:        "Coffee Body Scrub",
			NameBengali: "কফি বডি স্ক্রাব",
			Description: "Exfoliating scrub with ground coffee to revitalize tired skin.",
			Price:       450,
			Category:    "scrubs",
			ImageURL:    "https://images.unsplash.com/photo-1570194065650-d99fb4bedf0a?w=600",
			Ingredients: "Ground coffee, brown sugar, coconut oil",
			Benefits:    "Exfoliates, improves circulation, reduces cellulite",
			InStock:     true,
		},
		{
			Name:        "Pure Coconut Oil",
			NameBengali: "খাঁটি নারকেল তেল",
			Description: "Cold-pressed virgin coconut oil for hair and skin care.",
			Price:       380,
			Category:    "oils",
			ImageURL:    "https://images.unsplash.com/photo-1526947425960-945c6e72858f?w=600",
			Ingredients: "100% virgin coconut oil",
			Benefits:    "Nourishes hair, moisturizes skin, natural makeup remover",
			InStock:     true,
		},
	}
}

// SeedCatalog inserts the sample catalog when products is empty.
func SeedCatalog(ctx context.Context, products repository.ProductRepository) error {
	existing, err := products.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range SampleCatalog() {
		product := p
		if err := products.Create(ctx, &product); err != nil {
			return err
		}
	}
	return nil
}
