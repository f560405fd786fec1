package domain

import "time"

// Product is a catalog item.
type Product struct {
	ID          string
	Name        string
	NameBengali string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Ingredients string
	Benefits    string
	InStock     bool
	Featured    bool
	CreatedAt   time.Time
}

// ProductUpdate is a partial product change; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	NameBengali *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Ingredients *string
	Benefits    *string
	InStock     *bool
	Featured    *bool
}

// Apply copies the set fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.NameBengali != nil {
		p.NameBengali = *u.NameBengali
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Ingredients != nil {
		p.Ingredients = *u.Ingredients
	}
	if u.Benefits != nil {
		p.Benefits = *u.Benefits
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
}
