package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/Brandonkhumalo/harare-wheels-showcase/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SeedAdmin creates the initial operator account when the admins collection is
// empty, so a fresh deployment is reachable. Credentials come from ADMIN_USER /
// ADMIN_PASSWORD with development fallbacks.
func SeedAdmin(ctx context.Context) error {
	collection := Collection("admins")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USER")
	if username == "" {
		username = "admin@hararewheels"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "hararewheels@admin"
	}

	hashed, err := utils.HashPass(password)
	if err != nil {
		return err
	}

	id, err := NextSequence(ctx, "admins")
	if err != nil {
		return err
	}

	admin := models.Admin{
		ID:        id,
		Username:  username,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if _, err := collection.InsertOne(ctx, admin); err != nil {
		return err
	}

	log.Println("Default admin created:", username)
	return nil
}
