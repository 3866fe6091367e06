package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/controller"
	"github.com/Brandonkhumalo/harare-wheels-showcase/database"
	"github.com/Brandonkhumalo/harare-wheels-showcase/route"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const maxRequestBody = 16 << 20 // multipart car submissions with images

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println(err)
	}

	controller.InitS3Client()

	// Initialize MongoDB connection
	if err := database.Connect(); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}
	if err := database.SeedAdmin(ctx); err != nil {
		log.Fatal("Failed to seed admin:", err)
	}

	router := gin.Default()
	router.MaxMultipartMemory = maxRequestBody
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "https://")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.Protected(router)
	route.Unprotected(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	router.Run(":" + port)
}
