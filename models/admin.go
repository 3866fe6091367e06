package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Admin struct {
	OID       bson.ObjectID `json:"-" bson:"_id,omitempty"`
	ID        int           `json:"id" bson:"admin_id"`
	Username  string        `json:"username" bson:"username" validate:"required"`
	Password  string        `json:"-" bson:"password"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

type AdminLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}
