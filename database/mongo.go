package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const DBName = "harare_wheels"

var Client *mongo.Client

func Connect() error {
	mongoUri := os.Getenv("MONGO_URI")
	connectionString := options.Client().ApplyURI(mongoUri)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectionString)
	if err != nil {
		log.Println("Mongo Connect error:", err)
		return err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Println("Mongo Ping error:", err)
		return err
	}

	Client = client
	log.Println("MongoDB connected successfully")
	return nil
}

// Collection resolves a collection within the application database.
func Collection(name string) *mongo.Collection {
	return Client.Database(DBName).Collection(name)
}

// NextSequence hands out monotonically increasing integer ids per entity so the
// public API keeps numeric identifiers on top of Mongo documents.
func NextSequence(ctx context.Context, name string) (int, error) {
	counters := Collection("counters")

	var doc struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// EnsureIndexes creates the indexes the write and list paths rely on.
func EnsureIndexes(ctx context.Context) error {
	_, err := Collection("brands").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Collection("admins").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Collection("cars").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = Collection("car_images").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "car_id", Value: 1}},
	})
	return err
}
