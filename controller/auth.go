package controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Brandonkhumalo/harare-wheels-showcase/database"
	"github.com/Brandonkhumalo/harare-wheels-showcase/models"
	"github.com/Brandonkhumalo/harare-wheels-showcase/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func Login(c *gin.Context) {
	var login models.AdminLogin

	if err := c.ShouldBindJSON(&login); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	collection := database.Collection("admins")

	admin := &models.Admin{}
	err := collection.FindOne(ctx, bson.M{"username": login.Username}).Decode(admin)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := utils.ComparePass(login.Password, admin.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.SignedToken(admin.ID, admin.Username)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Admin: *admin})
}

// Logout exists so clients have a server call to pair with discarding their
// token. Tokens are self-expiring, nothing is tracked server-side.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
