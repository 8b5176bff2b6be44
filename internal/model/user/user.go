// Package user defines the persisted account record and its public view.
package user

import "time"

// FullName mirrors the registration payload's nested name object.
type FullName struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

// User is the credential-store record. PasswordHash is never serialized to
// clients; handlers convert to Public before responding.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	FullName     FullName  `json:"fullName" bson:"fullName"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Public is the client-facing projection of a user.
type Public struct {
	ID       string   `json:"id"`
	FullName FullName `json:"fullName"`
	Email    string   `json:"email"`
}

// Public strips credential material from the record.
func (u User) Public() Public {
	return Public{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
