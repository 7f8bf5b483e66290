package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatLog persists one chatbot exchange: the user's message and the
// generated reply, stored together.
type ChatLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	Usuario        primitive.ObjectID `bson:"usuario"        json:"usuario"`
	MensajeUsuario string             `bson:"mensajeUsuario" json:"mensajeUsuario"`
	RespuestaIA    string             `bson:"respuestaIA"    json:"respuestaIA"`
	Fecha          time.Time          `bson:"fecha"          json:"fecha"`
}
