package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Car is one vehicle listing. Brand name is denormalized into the document so
// list reads never need a join; brands are never renamed, only created and
// garbage-collected when empty.
type Car struct {
	OID          bson.ObjectID `json:"-" bson:"_id,omitempty"`
	ID           int           `json:"id" bson:"car_id"`
	BrandID      int           `json:"brand_id" bson:"brand_id"`
	BrandName    string        `json:"brand_name" bson:"brand_name"`
	Model        string        `json:"model" bson:"model"`
	Year         int           `json:"year" bson:"year"`
	Price        float64       `json:"price" bson:"price"`
	Mileage      *int          `json:"mileage" bson:"mileage,omitempty"`
	FuelType     *string       `json:"fuel_type" bson:"fuel_type,omitempty"`
	Transmission *string       `json:"transmission" bson:"transmission,omitempty"`
	BodyType     *string       `json:"body_type" bson:"body_type,omitempty"`
	Color        *string       `json:"color" bson:"color,omitempty"`
	Engine       *string       `json:"engine" bson:"engine,omitempty"`
	Description  *string       `json:"description" bson:"description,omitempty"`
	Featured     bool          `json:"featured" bson:"featured"`
	Images       []CarImage    `json:"images" bson:"-"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// PrimaryImage returns the image flagged primary, falling back to the first
// image when none is flagged. Nil when the car has no images.
func (c *Car) PrimaryImage() *CarImage {
	for i := range c.Images {
		if c.Images[i].IsPrimary {
			return &c.Images[i]
		}
	}
	if len(c.Images) > 0 {
		return &c.Images[0]
	}
	return nil
}

// CarImage is one image attached to a car. The object lives in S3 under S3Key;
// URL is the public location handed to clients.
type CarImage struct {
	OID       bson.ObjectID `json:"-" bson:"_id,omitempty"`
	ID        int           `json:"id" bson:"image_id"`
	CarID     int           `json:"car_id" bson:"car_id"`
	Filename  string        `json:"filename" bson:"filename"`
	S3Key     string        `json:"-" bson:"s3_key"`
	URL       string        `json:"url" bson:"url"`
	IsPrimary bool          `json:"is_primary" bson:"is_primary"`
}

type Brand struct {
	OID       bson.ObjectID `json:"-" bson:"_id,omitempty"`
	ID        int           `json:"id" bson:"brand_id"`
	Name      string        `json:"name" bson:"name"`
	CarCount  int           `json:"car_count" bson:"-"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Filters is the facet aggregate used to populate filter controls: every brand
// plus the distinct categorical values present across the catalog.
type Filters struct {
	Brands        []Brand  `json:"brands"`
	BodyTypes     []string `json:"body_types"`
	FuelTypes     []string `json:"fuel_types"`
	Transmissions []string `json:"transmissions"`
}

// CarQuery narrows a car listing. Zero-valued fields are not applied.
type CarQuery struct {
	BrandID      *int
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
}
