package models

// Session holds the single active token of a user.
type Session struct {
	UserID string `bson:"user_id" json:"user_id"`
	JWT    string `bson:"jwt" json:"jwt"`
}
