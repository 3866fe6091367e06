package controller

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/database"
	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// GetFilters returns the facet aggregate used to build the catalog filter
// controls: all brands plus the distinct categorical values present in the
// current inventory.
func GetFilters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	brands, err := listBrands(ctx)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting filters"})
		return
	}

	filters := models.Filters{Brands: brands}

	fields := []struct {
		name string
		dst  *[]string
	}{
		{"body_type", &filters.BodyTypes},
		{"fuel_type", &filters.FuelTypes},
		{"transmission", &filters.Transmissions},
	}
	cars := database.Collection("cars")
	for _, field := range fields {
		values, err := distinctStrings(ctx, cars, field.name)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting filters"})
			return
		}
		*field.dst = values
	}

	c.JSON(http.StatusOK, filters)
}

// distinctStrings collects the non-null distinct values of one car field.
func distinctStrings(ctx context.Context, collection *mongo.Collection, field string) ([]string, error) {
	result := collection.Distinct(ctx, field, bson.M{field: bson.M{"$ne": nil}})

	var values []string
	if err := result.Decode(&values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	sort.Strings(values)
	return values, nil
}
