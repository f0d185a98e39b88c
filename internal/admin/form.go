package admin

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/lumenlabs/webmart/internal/domain"
	"github.com/lumenlabs/webmart/internal/store"
)

var ErrValidation = errors.New("invalid product form")

// ProductForm carries the raw submitted product form. All values
// arrive as strings, the way a form post delivers them; numeric
// parsing happens here, standing in for native field validation.
//
// ImageData holds the data URL materialized from an uploaded file. It
// wins over the plain ImageURL field when present.
type ProductForm struct {
	Name            string   `json:"name" form:"name"`
	Category        string   `json:"category" form:"category"`
	Price           string   `json:"price" form:"price"`
	OriginalPrice   string   `json:"originalPrice" form:"originalPrice"`
	Description     string   `json:"description" form:"description"`
	FullDescription string   `json:"fullDescription" form:"fullDescription"`
	ImageURL        string   `json:"image" form:"image"`
	ImageData       string   `json:"imageData" form:"imageData"`
	Rating          string   `json:"rating" form:"rating"`
	Reviews         string   `json:"reviews" form:"reviews"`
	Badge           string   `json:"badge" form:"badge"`
	SpecKeys        []string `json:"specKeys" form:"specKey[]"`
	SpecValues      []string `json:"specValues" form:"specValue[]"`
}

// Validate enforces the required/numeric constraints that the browser
// enforced natively before the submit handler could run.
func (f *ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.Wrap(ErrValidation, "name is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return errors.Wrap(ErrValidation, "category is required")
	}
	if strings.TrimSpace(f.Description) == "" {
		return errors.Wrap(ErrValidation, "description is required")
	}
	if _, err := cast.ToFloat64E(f.Price); err != nil {
		return errors.Wrap(ErrValidation, "price must be a number")
	}
	if f.OriginalPrice != "" {
		if _, err := cast.ToFloat64E(f.OriginalPrice); err != nil {
			return errors.Wrap(ErrValidation, "original price must be a number")
		}
	}
	return nil
}

func (f *ProductForm) image() string {
	if f.ImageData != "" {
		return f.ImageData
	}
	return f.ImageURL
}

// Product builds a new product from the form. Ratings and review
// counts that fail to parse coerce to zero rather than rejecting the
// input.
func (f *ProductForm) Product() domain.Product {
	p := domain.Product{
		Name:            f.Name,
		Category:        f.Category,
		Price:           cast.ToFloat64(f.Price),
		Description:     f.Description,
		FullDescription: f.FullDescription,
		Image:           f.image(),
		Rating:          cast.ToFloat64(f.Rating),
		Reviews:         cast.ToInt(f.Reviews),
		Badge:           f.Badge,
		Specs:           CollectSpecs(f.SpecKeys, f.SpecValues),
	}
	if f.OriginalPrice != "" {
		v := cast.ToFloat64(f.OriginalPrice)
		p.OriginalPrice = &v
	}
	return p
}

// Patch builds the shallow-merge payload for an update. The form
// submits every field, so each one is present in the patch; fields the
// form does not carry (the id, server-side bookkeeping) stay untouched
// by contract.
func (f *ProductForm) Patch() store.ProductPatch {
	price := cast.ToFloat64(f.Price)
	rating := cast.ToFloat64(f.Rating)
	reviews := cast.ToInt(f.Reviews)
	image := f.image()
	patch := store.ProductPatch{
		Name:            &f.Name,
		Category:        &f.Category,
		Price:           &price,
		Description:     &f.Description,
		FullDescription: &f.FullDescription,
		Image:           &image,
		Rating:          &rating,
		Reviews:         &reviews,
		Badge:           &f.Badge,
		Specs:           CollectSpecs(f.SpecKeys, f.SpecValues),
		SpecsSet:        true,
	}
	if f.OriginalPrice != "" {
		v := cast.ToFloat64(f.OriginalPrice)
		patch.OriginalPrice = &v
	} else {
		patch.ClearOriginal = true
	}
	return patch
}

// FormFor pre-fills a form from an existing product, the edit-time
// counterpart of Product.
func FormFor(p domain.Product) ProductForm {
	f := ProductForm{
		Name:            p.Name,
		Category:        p.Category,
		Price:           formatNumber(p.Price),
		Description:     p.Description,
		FullDescription: p.LongDescription(),
		ImageURL:        p.Image,
		Rating:          formatNumber(p.Rating),
		Reviews:         cast.ToString(p.Reviews),
		Badge:           p.Badge,
	}
	if p.OriginalPrice != nil {
		f.OriginalPrice = formatNumber(*p.OriginalPrice)
	}
	for _, row := range EditorFor(p.Specs).Rows() {
		f.SpecKeys = append(f.SpecKeys, row.Key)
		f.SpecValues = append(f.SpecValues, row.Value)
	}
	return f
}
