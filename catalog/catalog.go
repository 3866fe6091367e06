// Package catalog derives the visible page of a car listing from the full
// inventory and the user's filter, sort and page selections. It is a pure
// computation: no I/O, no hidden state, and the source slice is never
// modified.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
)

// PageSize is the fixed number of cars per catalog page.
const PageSize = 10

type SortKey string

const (
	// SortNewest orders by creation time, most recent first. This is the
	// canonical "newest" for every catalog view.
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// Params holds the user's current catalog selections. Use the Set methods
// when reacting to control changes: they reset the page so a stale page
// number never outlives a narrower result set.
type Params struct {
	SearchText   string
	BrandID      string
	BodyType     string
	FuelType     string
	Transmission string
	Sort         SortKey
	Page         int
}

func NewParams() Params {
	return Params{Sort: SortNewest, Page: 1}
}

func (p *Params) SetSearch(text string)    { p.SearchText = text; p.Page = 1 }
func (p *Params) SetBrand(id string)       { p.BrandID = id; p.Page = 1 }
func (p *Params) SetBodyType(v string)     { p.BodyType = v; p.Page = 1 }
func (p *Params) SetFuelType(v string)     { p.FuelType = v; p.Page = 1 }
func (p *Params) SetTransmission(v string) { p.Transmission = v; p.Page = 1 }
func (p *Params) SetSort(key SortKey)      { p.Sort = key; p.Page = 1 }
func (p *Params) SetPage(page int)         { p.Page = page }

// Clear drops every filter and returns to the default view.
func (p *Params) Clear() {
	*p = NewParams()
}

// Active reports whether any narrowing filter is set.
func (p Params) Active() bool {
	return p.SearchText != "" || p.BrandID != "" || p.BodyType != "" ||
		p.FuelType != "" || p.Transmission != ""
}

// Result is one renderable page of the catalog.
type Result struct {
	Cars       []models.Car
	TotalCount int
	TotalPages int
	Page       int
}

// Apply runs the filter/sort/paginate pipeline. Same inputs always produce
// the same output. A malformed numeric brand id filters nothing rather than
// failing.
func Apply(sourceCars []models.Car, params Params) Result {
	filtered := filter(sourceCars, params)
	sortCars(filtered, params.Sort)

	totalCount := len(filtered)
	totalPages := (totalCount + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Cars:       filtered[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}
}

func filter(sourceCars []models.Car, params Params) []models.Car {
	search := strings.ToLower(strings.TrimSpace(params.SearchText))
	brandID, brandSet := parseBrandID(params.BrandID)

	result := make([]models.Car, 0, len(sourceCars))
	for _, car := range sourceCars {
		if search != "" &&
			!strings.Contains(strings.ToLower(car.BrandName), search) &&
			!strings.Contains(strings.ToLower(car.Model), search) {
			continue
		}
		if brandSet && car.BrandID != brandID {
			continue
		}
		if params.BodyType != "" && !strEq(car.BodyType, params.BodyType) {
			continue
		}
		if params.FuelType != "" && !strEq(car.FuelType, params.FuelType) {
			continue
		}
		if params.Transmission != "" && !strEq(car.Transmission, params.Transmission) {
			continue
		}
		result = append(result, car)
	}
	return result
}

// parseBrandID reads a brand filter leniently: anything that is not a
// positive integer means "no restriction".
func parseBrandID(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func strEq(field *string, want string) bool {
	return field != nil && *field == want
}

// sortCars orders in place. The sort is stable: cars with equal keys keep
// their relative order from the source list.
func sortCars(cars []models.Car, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(cars, func(i, j int) bool {
			return cars[i].Year < cars[j].Year
		})
	case SortPriceLow:
		sort.SliceStable(cars, func(i, j int) bool {
			return cars[i].Price < cars[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(cars, func(i, j int) bool {
			return cars[i].Price > cars[j].Price
		})
	default: // SortNewest
		sort.SliceStable(cars, func(i, j int) bool {
			return cars[i].CreatedAt.After(cars[j].CreatedAt)
		})
	}
}
