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
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// carListFilter translates the query string into a Mongo filter. Absent or
// unparsable parameters add no restriction.
func carListFilter(c *gin.Context) bson.M {
	filter := bson.M{}

	if v, err := strconv.Atoi(c.Query("brand_id")); err == nil {
		filter["brand_id"] = v
	}
	if v := c.Query("body_type"); v != "" {
		filter["body_type"] = v
	}
	if v := c.Query("fuel_type"); v != "" {
		filter["fuel_type"] = v
	}
	if v := c.Query("transmission"); v != "" {
		filter["transmission"] = v
	}

	price := bson.M{}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		price["$gte"] = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		price["$lte"] = v
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if v, err := strconv.ParseBool(c.Query("featured")); err == nil && v {
		filter["featured"] = true
	}
	return filter
}

func GetCars(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := database.Collection("cars").Find(ctx, carListFilter(c), findOptions)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting cars"})
		return
	}
	defer cursor.Close(ctx)

	var cars []models.Car
	if err := cursor.All(ctx, &cars); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error parsing cars"})
		return
	}
	if cars == nil {
		cars = []models.Car{}
	}

	for i := range cars {
		images, err := loadImages(ctx, cars[i].ID)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting car images"})
			return
		}
		cars[i].Images = images
	}

	c.JSON(http.StatusOK, cars)
}

func GetCar(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	car := &models.Car{}
	err = database.Collection("cars").FindOne(ctx, bson.M{"car_id": carID}).Decode(car)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	images, err := loadImages(ctx, car.ID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting car images"})
		return
	}
	car.Images = images

	c.JSON(http.StatusOK, car)
}

func CreateCar(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	brandID, _ := strconv.Atoi(c.PostForm("brand_id"))
	brandName := c.PostForm("brand_name")
	if brandID <= 0 && brandName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand is required"})
		return
	}

	brand, err := resolveBrand(ctx, brandID, brandName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand is required"})
		return
	}

	model := c.PostForm("model")
	year, yearErr := strconv.Atoi(c.PostForm("year"))
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	if model == "" || yearErr != nil || priceErr != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model, year and price are required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	files := form.File["images"]
	if len(files) > MaxImagesPerCar {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A car can have at most 8 images"})
		return
	}

	id, err := database.NextSequence(ctx, "cars")
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating car"})
		return
	}

	car := &models.Car{
		ID:           id,
		BrandID:      brand.ID,
		BrandName:    brand.Name,
		Model:        model,
		Year:         year,
		Price:        price,
		Mileage:      formIntPtr(c, "mileage"),
		FuelType:     formStrPtr(c, "fuel_type"),
		Transmission: formStrPtr(c, "transmission"),
		BodyType:     formStrPtr(c, "body_type"),
		Color:        formStrPtr(c, "color"),
		Engine:       formStrPtr(c, "engine"),
		Description:  formStrPtr(c, "description"),
		Featured:     c.PostForm("featured") == "true",
		CreatedAt:    time.Now(),
	}

	if _, err := database.Collection("cars").InsertOne(ctx, car); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating car"})
		return
	}

	for i, file := range files {
		image, err := storeCarImage(ctx, car.ID, file, i == 0)
		if err != nil {
			log.Println("Image upload error:", err)
			continue
		}
		car.Images = append(car.Images, *image)
	}
	if car.Images == nil {
		car.Images = []models.CarImage{}
	}

	c.JSON(http.StatusCreated, car)
}

func UpdateCar(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	collection := database.Collection("cars")

	car := &models.Car{}
	if err := collection.FindOne(ctx, bson.M{"car_id": carID}).Decode(car); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	set := bson.M{}

	brandID, _ := strconv.Atoi(c.PostForm("brand_id"))
	brandName := c.PostForm("brand_name")
	if brandID > 0 || brandName != "" {
		brand, err := resolveBrand(ctx, brandID, brandName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown brand"})
			return
		}
		set["brand_id"] = brand.ID
		set["brand_name"] = brand.Name
	}

	if v := c.PostForm("model"); v != "" {
		set["model"] = v
	}
	if v, err := strconv.Atoi(c.PostForm("year")); err == nil {
		set["year"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("price"), 64); err == nil && v >= 0 {
		set["price"] = v
	}
	if v, err := strconv.Atoi(c.PostForm("mileage")); err == nil {
		set["mileage"] = v
	}
	for _, field := range []string{"fuel_type", "transmission", "body_type", "color", "engine", "description"} {
		if v := c.PostForm(field); v != "" {
			set[field] = v
		}
	}
	if v := c.PostForm("featured"); v != "" {
		set["featured"] = v == "true"
	}

	if len(set) > 0 {
		if _, err := collection.UpdateOne(ctx, bson.M{"car_id": carID}, bson.M{"$set": set}); err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating car"})
			return
		}
	}

	if form, err := c.MultipartForm(); err == nil {
		files := form.File["images"]
		if len(files) > MaxImagesPerCar {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A car can have at most 8 images"})
			return
		}
		for _, file := range files {
			// Appended images never displace the existing primary.
			if _, err := storeCarImage(ctx, carID, file, false); err != nil {
				log.Println("Image upload error:", err)
			}
		}
	}

	cleanupEmptyBrands(ctx)

	if err := collection.FindOne(ctx, bson.M{"car_id": carID}).Decode(car); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reloading car"})
		return
	}
	images, err := loadImages(ctx, carID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting car images"})
		return
	}
	car.Images = images

	c.JSON(http.StatusOK, car)
}

func DeleteCar(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	images, err := loadImages(ctx, carID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting car"})
		return
	}
	for _, image := range images {
		removeImageObject(ctx, image)
	}
	if _, err := database.Collection("car_images").DeleteMany(ctx, bson.M{"car_id": carID}); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting car"})
		return
	}

	result, err := database.Collection("cars").DeleteOne(ctx, bson.M{"car_id": carID})
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting car"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	cleanupEmptyBrands(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}

func DeleteCarImage(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car id"})
		return
	}
	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	collection := database.Collection("car_images")

	image := models.CarImage{}
	err = collection.FindOne(ctx, bson.M{"image_id": imageID, "car_id": carID}).Decode(&image)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	removeImageObject(ctx, image)

	if _, err := collection.DeleteOne(ctx, bson.M{"image_id": imageID}); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func formStrPtr(c *gin.Context, field string) *string {
	if v := c.PostForm(field); v != "" {
		return &v
	}
	return nil
}

func formIntPtr(c *gin.Context, field string) *int {
	if v, err := strconv.Atoi(c.PostForm(field)); err == nil {
		return &v
	}
	return nil
}
