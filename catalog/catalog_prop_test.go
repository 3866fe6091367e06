package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propBrands = []string{"Toyota", "Honda", "Mazda", "Nissan"}
	propModels = []string{"Corolla", "Civic", "Demio", "Hilux", "Fit"}
	propBodies = []string{"", "Sedan", "SUV", "Hatchback"}
	propFuels  = []string{"", "Petrol", "Diesel"}
)

// carFromSeed derives a car deterministically from one integer so gopter can
// shrink failing inputs.
func carFromSeed(id, seed int) models.Car {
	if seed < 0 {
		seed = -seed
	}
	brandIdx := seed % len(propBrands)
	car := models.Car{
		ID:        id,
		BrandID:   brandIdx + 1,
		BrandName: propBrands[brandIdx],
		Model:     propModels[(seed/7)%len(propModels)],
		Year:      2010 + (seed/11)%15,
		Price:     float64(3000 + (seed/13)%8*2500),
		Featured:  seed%5 == 0,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seed%1000) * time.Minute),
	}
	if body := propBodies[(seed/17)%len(propBodies)]; body != "" {
		car.BodyType = &body
	}
	if fuel := propFuels[(seed/19)%len(propFuels)]; fuel != "" {
		car.FuelType = &fuel
	}
	return car
}

func carsFromSeeds(seeds []int) []models.Car {
	cars := make([]models.Car, len(seeds))
	for i, seed := range seeds {
		cars[i] = carFromSeed(i+1, seed)
	}
	return cars
}

func genSeeds() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 1_000_000))
}

func genParams() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "co", "toyota", "x"),
		gen.OneConstOf("", "1", "2", "3", "not-a-number"),
		gen.OneConstOf("", "Sedan", "SUV", "Hatchback"),
		gen.OneConstOf("", "Petrol", "Diesel"),
		gen.OneConstOf(SortNewest, SortOldest, SortPriceLow, SortPriceHigh),
		gen.IntRange(1, 6),
	).Map(func(values []interface{}) Params {
		return Params{
			SearchText: values[0].(string),
			BrandID:    values[1].(string),
			BodyType:   values[2].(string),
			FuelType:   values[3].(string),
			Sort:       values[4].(SortKey),
			Page:       values[5].(int),
		}
	})
}

// matches re-states the filter contract independently of the pipeline.
func matches(car models.Car, params Params) bool {
	if params.SearchText != "" {
		needle := strings.ToLower(params.SearchText)
		if !strings.Contains(strings.ToLower(car.BrandName), needle) &&
			!strings.Contains(strings.ToLower(car.Model), needle) {
			return false
		}
	}
	if id, set := parseBrandID(params.BrandID); set && car.BrandID != id {
		return false
	}
	if params.BodyType != "" && (car.BodyType == nil || *car.BodyType != params.BodyType) {
		return false
	}
	if params.FuelType != "" && (car.FuelType == nil || *car.FuelType != params.FuelType) {
		return false
	}
	if params.Transmission != "" && (car.Transmission == nil || *car.Transmission != params.Transmission) {
		return false
	}
	return true
}

func TestOutputSatisfiesEveryActiveFilter(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every car on every page passes all active filters", prop.ForAll(
		func(seeds []int, params Params) bool {
			cars := carsFromSeeds(seeds)
			byID := map[int]bool{}
			for _, car := range cars {
				byID[car.ID] = true
			}
			result := Apply(cars, params)
			for _, car := range result.Cars {
				if !byID[car.ID] || !matches(car, params) {
					return false
				}
			}
			return true
		},
		genSeeds(),
		genParams(),
	))

	properties.TestingRun(t)
}

func TestPaginationPartitionsFilteredSet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("total count equals the manually filtered size", prop.ForAll(
		func(seeds []int, params Params) bool {
			cars := carsFromSeeds(seeds)
			expected := 0
			for _, car := range cars {
				if matches(car, params) {
					expected++
				}
			}
			return Apply(cars, params).TotalCount == expected
		},
		genSeeds(),
		genParams(),
	))

	properties.Property("page lengths across all pages sum to the total count", prop.ForAll(
		func(seeds []int, params Params) bool {
			cars := carsFromSeeds(seeds)
			first := Apply(cars, params)
			sum := 0
			for page := 1; page <= first.TotalPages; page++ {
				params.SetPage(page)
				got := Apply(cars, params)
				if len(got.Cars) > PageSize {
					return false
				}
				sum += len(got.Cars)
			}
			return sum == first.TotalCount
		},
		genSeeds(),
		genParams(),
	))

	properties.TestingRun(t)
}

func TestSortStability(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Cars with equal sort keys must keep their relative source order. Ids
	// are assigned in source order, so for tied keys ids must be ascending.
	properties.Property("ties preserve source order", prop.ForAll(
		func(seeds []int, sortKey SortKey) bool {
			cars := carsFromSeeds(seeds)
			result := Apply(cars, Params{Sort: sortKey, Page: 1})
			for i := 1; i < len(result.Cars); i++ {
				a, b := result.Cars[i-1], result.Cars[i]
				if sortEqual(a, b, sortKey) && a.ID > b.ID {
					return false
				}
			}
			return true
		},
		genSeeds(),
		gen.OneConstOf(SortNewest, SortOldest, SortPriceLow, SortPriceHigh),
	))

	properties.TestingRun(t)
}

func sortEqual(a, b models.Car, key SortKey) bool {
	switch key {
	case SortOldest:
		return a.Year == b.Year
	case SortPriceLow, SortPriceHigh:
		return a.Price == b.Price
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}
