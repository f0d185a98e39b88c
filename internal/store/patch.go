package store

import "github.com/lumenlabs/webmart/internal/domain"

// ProductPatch carries the fields of a submitted edit form. Update is a
// shallow merge by contract: a nil field leaves the stored value
// untouched, a present field overwrites it. OriginalPrice and Badge can
// be cleared explicitly because the form submits them as empty.
type ProductPatch struct {
	Name            *string
	Category        *string
	Price           *float64
	OriginalPrice   *float64
	ClearOriginal   bool
	Description     *string
	FullDescription *string
	Image           *string
	Rating          *float64
	Reviews         *int
	Badge           *string
	Specs           domain.SpecList
	SpecsSet        bool
}

func (p ProductPatch) Apply(dst *domain.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		dst.OriginalPrice = p.OriginalPrice
	} else if p.ClearOriginal {
		dst.OriginalPrice = nil
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.FullDescription != nil {
		dst.FullDescription = *p.FullDescription
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.Reviews != nil {
		dst.Reviews = *p.Reviews
	}
	if p.Badge != nil {
		dst.Badge = *p.Badge
	}
	if p.SpecsSet {
		dst.Specs = p.Specs
	}
}
