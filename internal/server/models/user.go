package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest; the
// plaintext password never reaches this type.
type User struct {
	ID           string    `db:"id" bson:"_id"`
	Name         string    `db:"name" bson:"name"`
	Email        string    `db:"email" bson:"email"`
	PasswordHash string    `db:"password_hash" bson:"password_hash"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at"`
}
