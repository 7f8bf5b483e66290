package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories form a closed set.
const (
	CategoriaBebida = "bebida"
	CategoriaComida = "comida"
	CategoriaSnack  = "snack"
	CategoriaMenu   = "menu"
)

// Categorias lists every valid product category.
var Categorias = []string{CategoriaBebida, CategoriaComida, CategoriaSnack, CategoriaMenu}

// ValidCategoria reports whether c is a known category.
func ValidCategoria(c string) bool {
	for _, v := range Categorias {
		if c == v {
			return true
		}
	}
	return false
}

// Producto is a catalog entry. Disponible gates visibility in public
// listings; Stock is advisory and never debited by order creation.
type Producto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Nombre      string             `bson:"nombre"              json:"nombre"`
	Descripcion string             `bson:"descripcion"         json:"descripcion"`
	Precio      float64            `bson:"precio"              json:"precio"`
	Imagen      string             `bson:"imagen,omitempty"    json:"imagen,omitempty"`
	Disponible  bool               `bson:"disponible"          json:"disponible"`
	Stock       int                `bson:"stock"               json:"stock"`
	Categoria   string             `bson:"categoria"           json:"categoria"`
	CreadoEn    time.Time          `bson:"creadoEn"            json:"creadoEn"`
	Sabores     []string           `bson:"sabores,omitempty"   json:"sabores,omitempty"`
	Dieta       []string           `bson:"dieta,omitempty"     json:"dieta,omitempty"`
	Alergias    []string           `bson:"alergias,omitempty"  json:"alergias,omitempty"`
}
