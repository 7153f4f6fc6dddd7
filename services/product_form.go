package services

import (
	"strings"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"

	"github.com/shopspring/decimal"
)

// FormGetter returns a form value and whether the key was sent at all.
type FormGetter func(key string) (string, bool)

// ParseProductForm coerces dashboard form fields into a ProductForm.
//
//   - price, prevprice: trimmed; empty or missing means no value; anything
//     else must be a non-negative decimal.
//   - sale, preorder: true only for the checkbox value "on".
//   - releasedate: blank means no value, otherwise the raw string is kept.
//   - title, platform, description, imglink: kept exactly as sent, nil when
//     missing.
func ParseProductForm(get FormGetter) (models.ProductForm, error) {
	var form models.ProductForm
	var err error

	if form.Price, err = parsePrice(get, "price"); err != nil {
		return models.ProductForm{}, err
	}
	if form.PrevPrice, err = parsePrice(get, "prevprice"); err != nil {
		return models.ProductForm{}, err
	}

	form.Sale = checkbox(get, "sale")
	form.Preorder = checkbox(get, "preorder")

	if v, ok := get("releasedate"); ok && strings.TrimSpace(v) != "" {
		form.ReleaseDate = &v
	}

	form.Title = text(get, "title")
	form.Platform = text(get, "platform")
	form.Description = text(get, "description")
	form.ImgLink = text(get, "imglink")

	return form, nil
}

func parsePrice(get FormGetter, key string) (decimal.NullDecimal, error) {
	raw, ok := get(key)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, apperrors.Validation("Invalid " + key + ": must be a number")
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, apperrors.Validation("Invalid " + key + ": must not be negative")
	}
	return decimal.NewNullDecimal(d), nil
}

func checkbox(get FormGetter, key string) bool {
	v, _ := get(key)
	return v == "on"
}

func text(get FormGetter, key string) *string {
	v, ok := get(key)
	if !ok {
		return nil
	}
	return &v
}
