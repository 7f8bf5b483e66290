package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/auth"
	"github.com/lacantina/backend/pkg/database"
)

func init() {
	Register("usuarios", SeedUsuarios)
}

var usuarios = []models.Usuario{
	{Nombre: "Felipe Berton", Email: "fberton@correo.um.edu.uy", Rol: models.RolAdmin},
	{Nombre: "Belen Ferreiro", Email: "bferreiro@correo.um.edu.uy", Rol: models.RolEstudiante},
}

// seedPassword is the development-only password for the seed accounts.
const seedPassword = "test1234"

// SeedUsuarios creates the development accounts, skipping existing
// emails.
func SeedUsuarios(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColUsuarios)

	for _, u := range usuarios {
		n, err := col.CountDocuments(ctx, bson.M{"email": u.Email})
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Printf("  ya existe: %s\n", u.Email)
			continue
		}

		hash, err := auth.HashPassword(seedPassword)
		if err != nil {
			return err
		}
		u.Password = hash
		if _, err := col.InsertOne(ctx, u); err != nil {
			return err
		}
		fmt.Printf("  creado: %s\n", u.Email)
	}
	return nil
}
