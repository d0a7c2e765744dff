package models

import "time"

type User struct {
	ID             string    `json:"id" bson:"_id"`
	Email          string    `json:"email" bson:"email"`
	Username       string    `json:"username" bson:"username"`
	HashedPassword string    `json:"-" bson:"hashed_password"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

type UserCreate struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
