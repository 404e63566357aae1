package models

// User is the profile document created on a caller's first authenticated
// contact. The document id is the opaque uid issued by the identity gateway;
// users are never hard-deleted.
type User struct {
	ID    string `bson:"_id,omitempty" json:"-"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role" json:"role"`
}
