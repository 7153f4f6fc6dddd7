package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. JSON names match the storage column names.
type Product struct {
	ID          uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       *string             `json:"title" gorm:"column:title"`
	Platform    *string             `json:"platform" gorm:"column:platform;index"`
	Price       decimal.NullDecimal `json:"price" gorm:"column:price;type:numeric"`
	PrevPrice   decimal.NullDecimal `json:"prevprice" gorm:"column:prevprice;type:numeric"`
	Sale        bool                `json:"sale" gorm:"column:sale;default:false"`
	Preorder    bool                `json:"preorder" gorm:"column:preorder;default:false"`
	ReleaseDate *string             `json:"releasedate" gorm:"column:releasedate"`
	Description *string             `json:"description" gorm:"column:description"`
	ImgLink     *string             `json:"imglink" gorm:"column:imglink"`
	DateAdded   time.Time           `json:"dateadded" gorm:"column:dateadded;autoCreateTime;index"`
}

func (Product) TableName() string { return "products" }

// ProductForm is the coerced ingestion input, before the server assigns
// the identifier and timestamp.
type ProductForm struct {
	Title       *string
	Platform    *string
	Price       decimal.NullDecimal
	PrevPrice   decimal.NullDecimal
	Sale        bool
	Preorder    bool
	ReleaseDate *string
	Description *string
	ImgLink     *string
}

// ToProduct copies the form into a new Product.
func (f ProductForm) ToProduct() *Product {
	return &Product{
		Title:       f.Title,
		Platform:    f.Platform,
		Price:       f.Price,
		PrevPrice:   f.PrevPrice,
		Sale:        f.Sale,
		Preorder:    f.Preorder,
		ReleaseDate: f.ReleaseDate,
		Description: f.Description,
		ImgLink:     f.ImgLink,
	}
}

// CatalogFilter narrows a listing. Nil pointers and false flags mean no
// restriction.
type CatalogFilter struct {
	Platform *string
	Search   *string
	Sale     bool
	Preorder bool
}
