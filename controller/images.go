package controller

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brandonkhumalo/harare-wheels-showcase/database"
	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MaxImagesPerCar caps the number of images attached in a single car
// submission. Enforced here and again in the client before upload.
const MaxImagesPerCar = 8

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var s3Client *s3.Client

func InitS3Client() {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Println(err)
		return
	}
	s3Client = s3.NewFromConfig(cfg)
}

func allowedImage(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// storeCarImage uploads one file to S3 under an unguessable key and records
// the image document for the car.
func storeCarImage(ctx context.Context, carID int, file *multipart.FileHeader, primary bool) (*models.CarImage, error) {
	if !allowedImage(file.Filename) {
		return nil, fmt.Errorf("unsupported image type: %s", file.Filename)
	}

	content, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer content.Close()

	bucketName := os.Getenv("BUCKET_NAME")
	region := os.Getenv("AWS_REGION")
	s3Key := fmt.Sprintf("cars/%d/%s%s", carID, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(s3Key),
		Body:   content,
	})
	if err != nil {
		return nil, err
	}

	id, err := database.NextSequence(ctx, "car_images")
	if err != nil {
		return nil, err
	}

	image := &models.CarImage{
		ID:        id,
		CarID:     carID,
		Filename:  file.Filename,
		S3Key:     s3Key,
		URL:       fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, s3Key),
		IsPrimary: primary,
	}

	if _, err := database.Collection("car_images").InsertOne(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// removeImageObject deletes the S3 object backing an image. Failures are
// logged, not fatal: a dangling object must not block the catalog delete.
func removeImageObject(ctx context.Context, image models.CarImage) {
	bucketName := os.Getenv("BUCKET_NAME")
	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(image.S3Key),
	})
	if err != nil {
		log.Println("S3 delete error:", err)
	}
}

// loadImages fetches a car's images ordered primary first, then by id.
func loadImages(ctx context.Context, carID int) ([]models.CarImage, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "is_primary", Value: -1}, {Key: "image_id", Value: 1}})

	cursor, err := database.Collection("car_images").Find(ctx, bson.M{"car_id": carID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var images []models.CarImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.CarImage{}
	}
	return images, nil
}
