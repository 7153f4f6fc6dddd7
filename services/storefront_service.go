package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront-service/common/logger"
	"storefront-service/models"

	"go.uber.org/zap"
)

type ViewState string

const (
	StateLoaded ViewState = "loaded"
	StateEmpty  ViewState = "empty"
	StateError  ViewState = "error"
)

const (
	HeadingAll       = "Alle produkter"
	HeadingUpcoming  = "🎮 Kommende Spil 🎮"
	HeadingSale      = "🔥 Tilbud 🔥"
	ImagePlaceholder = "No Image"
	ReleaseTBA       = "TBA"

	BadgePreorder = "Pre-order"
	BadgeSale     = "SALE"
)

// ProductCard is one tile in a product grid.
type ProductCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Platform    string   `json:"platform,omitempty"`
	Price       string   `json:"price"`
	PrevPrice   string   `json:"prev_price,omitempty"`
	Badges      []string `json:"badges"`
	Image       string   `json:"image,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Release     string   `json:"release"`
}

// GridView is what a product grid renders.
type GridView struct {
	Heading  string        `json:"heading"`
	State    ViewState     `json:"state"`
	Message  string        `json:"message,omitempty"`
	Products []ProductCard `json:"products"`
}

// PreorderRow is one line of the upcoming-games list.
type PreorderRow struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Image   string `json:"image,omitempty"`
	Release string `json:"release"`
	Price   string `json:"price"`
	Link    string `json:"link"`
}

type PreorderListView struct {
	Heading string        `json:"heading"`
	State   ViewState     `json:"state"`
	Message string        `json:"message,omitempty"`
	Items   []PreorderRow `json:"items"`
}

// GridQuery carries the storefront's own query parameters.
type GridQuery struct {
	Cat      string
	Search   string
	Preorder string
}

// StorefrontService turns catalog results into view models.
type StorefrontService struct {
	catalog ProductLister
}

func NewStorefrontService(catalog ProductLister) *StorefrontService {
	return &StorefrontService{catalog: catalog}
}

// GridHeading picks the heading for the main product grid.
func GridHeading(q GridQuery) string {
	switch {
	case q.Preorder == "true":
		return HeadingUpcoming
	case q.Cat != "":
		return q.Cat
	case q.Search != "":
		return `Søgeresultater for "` + q.Search + `"`
	default:
		return HeadingAll
	}
}

// Grid is the main product grid: cat filters by platform.
func (s *StorefrontService) Grid(ctx context.Context, q GridQuery) GridView {
	var filter models.CatalogFilter
	if q.Cat != "" {
		filter.Platform = &q.Cat
	}
	if q.Search != "" {
		filter.Search = &q.Search
	}
	filter.Preorder = q.Preorder == "true"

	products, err := s.catalog.List(ctx, filter)
	return gridView(ctx, GridHeading(q), products, err, "Failed to fetch products", "No products found")
}

// Sale lists sale products only.
func (s *StorefrontService) Sale(ctx context.Context) GridView {
	products, err := s.catalog.List(ctx, models.CatalogFilter{Sale: true})
	return gridView(ctx, HeadingSale, products, err, "Failed to fetch sale products", "Ingen tilbud fundet")
}

// Preorders lists every preorder product, soonest release first.
func (s *StorefrontService) Preorders(ctx context.Context) GridView {
	products, err := s.catalog.List(ctx, models.CatalogFilter{})
	if err == nil {
		products = SortByRelease(onlyPreorders(products))
	}
	return gridView(ctx, HeadingUpcoming, products, err, "Failed to fetch preorder products", "Ingen preorders fundet")
}

// PreorderList is the compact upcoming-games list.
func (s *StorefrontService) PreorderList(ctx context.Context) PreorderListView {
	view := PreorderListView{Heading: HeadingUpcoming, Items: []PreorderRow{}}

	products, err := s.catalog.List(ctx, models.CatalogFilter{Preorder: true})
	if err != nil {
		logger.FromContext(ctx).Warn("preorder list unavailable", zap.Error(err))
		view.State = StateError
		view.Message = "Fejl: Failed to fetch preorder products"
		return view
	}
	if len(products) == 0 {
		view.State = StateEmpty
		view.Message = "Ingen kommende spil fundet"
		return view
	}

	for _, p := range SortByRelease(products) {
		row := PreorderRow{
			ID:      p.ID.String(),
			Title:   deref(p.Title),
			Image:   deref(p.ImgLink),
			Release: FormatReleaseDate(p.ReleaseDate),
			Link:    "/single?id=" + p.ID.String(),
		}
		if p.Price.Valid {
			row.Price = p.Price.Decimal.String() + " kr."
		}
		view.Items = append(view.Items, row)
	}
	view.State = StateLoaded
	return view
}

func gridView(ctx context.Context, heading string, products []models.Product, err error, failure, empty string) GridView {
	view := GridView{Heading: heading, Products: []ProductCard{}}
	switch {
	case err != nil:
		logger.FromContext(ctx).Warn("product grid unavailable", zap.String("heading", heading), zap.Error(err))
		view.State = StateError
		view.Message = "Error: " + failure
	case len(products) == 0:
		view.State = StateEmpty
		view.Message = empty
	default:
		view.State = StateLoaded
		for _, p := range products {
			view.Products = append(view.Products, NewProductCard(p))
		}
	}
	return view
}

// NewProductCard renders one product for a grid.
func NewProductCard(p models.Product) ProductCard {
	card := ProductCard{
		ID:       p.ID.String(),
		Title:    deref(p.Title),
		Platform: deref(p.Platform),
		Badges:   []string{},
		Release:  FormatReleaseDate(p.ReleaseDate),
	}
	if p.Price.Valid {
		card.Price = FormatPrice(p.Price.Decimal.InexactFloat64())
	}
	// Previous price only shows as a strike-through when it beats the price.
	if p.PrevPrice.Valid && p.Price.Valid && p.PrevPrice.Decimal.GreaterThan(p.Price.Decimal) {
		card.PrevPrice = FormatPrice(p.PrevPrice.Decimal.InexactFloat64())
	}
	if p.Preorder {
		card.Badges = append(card.Badges, BadgePreorder)
	}
	if p.Sale {
		card.Badges = append(card.Badges, BadgeSale)
	}
	if img := deref(p.ImgLink); img != "" {
		card.Image = img
	} else {
		card.Placeholder = ImagePlaceholder
	}
	return card
}

// FormatPrice renders a price with two decimals and the krone suffix.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f kr.", price)
}

var danishMonths = [...]string{"jan.", "feb.", "mar.", "apr.", "maj", "jun.", "jul.", "aug.", "sep.", "okt.", "nov.", "dec."}

var releaseLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006/01/02",
}

// ParseReleaseDate accepts the date shapes the dashboard produces.
func ParseReleaseDate(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatReleaseDate renders the Danish short date, e.g. "3. okt. 2025",
// or TBA.
func FormatReleaseDate(raw *string) string {
	t, ok := ParseReleaseDate(raw)
	if !ok {
		return ReleaseTBA
	}
	return fmt.Sprintf("%d. %s %d", t.Day(), danishMonths[t.Month()-1], t.Year())
}

// SortByRelease orders by release date ascending. Products without a
// usable date go last, keeping their relative order.
func SortByRelease(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := ParseReleaseDate(sorted[i].ReleaseDate)
		tj, okJ := ParseReleaseDate(sorted[j].ReleaseDate)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return sorted
}

func onlyPreorders(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Preorder {
			out = append(out, p)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
