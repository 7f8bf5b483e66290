package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuDelDia is a daily menu entry, numbered sequentially at creation.
type MenuDelDia struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre"        json:"nombre"`
	Descripcion string             `bson:"descripcion"   json:"descripcion"`
	Precio      float64            `bson:"precio"        json:"precio"`
	CreadoEn    time.Time          `bson:"creadoEn"      json:"creadoEn"`
}
