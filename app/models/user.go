package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles form a closed set; anything else is rejected at registration.
const (
	RolEstudiante = "estudiante"
	RolAdmin      = "admin"
)

// Preferencias is the optional taste/diet bundle used by the chatbot to
// build recommendation context.
type Preferencias struct {
	Sabores  []string `bson:"sabores,omitempty"  json:"sabores,omitempty"`
	Dieta    []string `bson:"dieta,omitempty"    json:"dieta,omitempty"`
	Alergias []string `bson:"alergias,omitempty" json:"alergias,omitempty"`
	Bebidas  []string `bson:"bebidas,omitempty"  json:"bebidas,omitempty"`
}

// Usuario is the account record. The password hash is never serialised.
type Usuario struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id"`
	Nombre       string             `bson:"nombre"                 json:"nombre"`
	Email        string             `bson:"email"                  json:"email"`
	Password     string             `bson:"password"               json:"-"`
	Rol          string             `bson:"rol"                    json:"rol"`
	Preferencias *Preferencias      `bson:"preferencias,omitempty" json:"preferencias,omitempty"`
}
