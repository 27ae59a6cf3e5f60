// Package models defines the records persisted by the user and session stores.
package models

// User is keyed by Email, which is unique and never changes once stored.
// Password is an opaque credential blob; it is not validated here.
type User struct {
	ID          string            `bson:"_id,omitempty" json:"-"`
	Email       string            `bson:"email" json:"email"`
	Name        string            `bson:"name" json:"name"`
	Password    string            `bson:"password" json:"-"`
	Preferences map[string]string `bson:"preferences,omitempty" json:"preferences,omitempty"`
}
