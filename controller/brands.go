package controller

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/database"
	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type brandRequest struct {
	Name string `json:"name" validate:"required"`
}

// listBrands returns all brands with their current car counts attached.
func listBrands(ctx context.Context) ([]models.Brand, error) {
	cursor, err := database.Collection("brands").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}

	cars := database.Collection("cars")
	for i := range brands {
		count, err := cars.CountDocuments(ctx, bson.M{"brand_id": brands[i].ID})
		if err != nil {
			return nil, err
		}
		brands[i].CarCount = int(count)
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	return brands, nil
}

func GetBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	brands, err := listBrands(ctx)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

func CreateBrand(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name required"})
		return
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	collection := database.Collection("brands")

	existing := &models.Brand{}
	if err := collection.FindOne(ctx, bson.M{"name": req.Name}).Decode(existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Brand already exists", "brand": existing})
		return
	}

	brand, err := insertBrand(ctx, req.Name)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating brand"})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func DeleteBrand(c *gin.Context) {
	brandID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Collection("brands").DeleteOne(ctx, bson.M{"brand_id": brandID})
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting brand"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}

// insertBrand creates a brand record with the next numeric id.
func insertBrand(ctx context.Context, name string) (*models.Brand, error) {
	id, err := database.NextSequence(ctx, "brands")
	if err != nil {
		return nil, err
	}
	brand := &models.Brand{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if _, err := database.Collection("brands").InsertOne(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// resolveBrand maps a submitted brand_id or brand_name to a brand, creating
// the brand on the fly when only an unknown name was given.
func resolveBrand(ctx context.Context, brandID int, brandName string) (*models.Brand, error) {
	collection := database.Collection("brands")

	if brandID > 0 {
		brand := &models.Brand{}
		if err := collection.FindOne(ctx, bson.M{"brand_id": brandID}).Decode(brand); err != nil {
			return nil, err
		}
		return brand, nil
	}

	brand := &models.Brand{}
	err := collection.FindOne(ctx, bson.M{"name": brandName}).Decode(brand)
	if err == nil {
		return brand, nil
	}
	return insertBrand(ctx, brandName)
}

// cleanupEmptyBrands removes brands that no longer have any cars. Runs after
// car deletes and brand reassignments, mirroring how the catalog keeps its
// filter facets free of dead entries.
func cleanupEmptyBrands(ctx context.Context) {
	brands, err := listBrands(ctx)
	if err != nil {
		log.Println("Brand cleanup error:", err)
		return
	}
	collection := database.Collection("brands")
	for _, brand := range brands {
		if brand.CarCount == 0 {
			if _, err := collection.DeleteOne(ctx, bson.M{"brand_id": brand.ID}); err != nil {
				log.Println("Brand cleanup error:", err)
			}
		}
	}
}
