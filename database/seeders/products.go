package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

func init() {
	Register("productos", SeedProductos)
}

var productos = []models.Producto{
	{Nombre: "Hamburguesa Completa", Descripcion: "Con lechuga, tomate y mayonesa", Precio: 280, Categoria: models.CategoriaComida},
	{Nombre: "Pizza Muzzarella", Descripcion: "Porción individual de pizza con muzzarella", Precio: 250, Categoria: models.CategoriaComida},
	{Nombre: "Milanesa con Puré", Descripcion: "Milanesa de carne con puré de papas", Precio: 320, Categoria: models.CategoriaComida},
	{Nombre: "Sandwich de Pollo", Descripcion: "Con lechuga, tomate y aderezo especial", Precio: 260, Categoria: models.CategoriaComida},
	{Nombre: "Ensalada César", Descripcion: "Lechuga, pollo, croutones, queso y aderezo césar", Precio: 290, Categoria: models.CategoriaComida},
	{Nombre: "Tostado Jamón y Queso", Descripcion: "Sandwich caliente con jamón y queso", Precio: 220, Categoria: models.CategoriaComida},
	{Nombre: "Gaseosa 500ml", Descripcion: "Coca-Cola, Sprite o Fanta", Precio: 150, Categoria: models.CategoriaBebida},
	{Nombre: "Agua Mineral 500ml", Descripcion: "Con o sin gas", Precio: 120, Categoria: models.CategoriaBebida},
	{Nombre: "Café con Leche", Descripcion: "Café con leche y dos medialunas", Precio: 200, Categoria: models.CategoriaBebida},
	{Nombre: "Empanadas (2u)", Descripcion: "Carne o pollo", Precio: 240, Categoria: models.CategoriaComida},
	{Nombre: "Porción Papas Fritas", Descripcion: "Papas fritas con sal", Precio: 180, Categoria: models.CategoriaSnack},
	{Nombre: "Yogur con Granola", Descripcion: "Yogur natural con granola y miel", Precio: 210, Categoria: models.CategoriaSnack},
}

// SeedProductos inserts the base catalog, skipping entries that already
// exist by name.
func SeedProductos(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColProductos)

	for _, p := range productos {
		n, err := col.CountDocuments(ctx, bson.M{"nombre": p.Nombre})
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Printf("  ya existe: %s\n", p.Nombre)
			continue
		}

		p.Disponible = true
		p.CreadoEn = time.Now()
		if _, err := col.InsertOne(ctx, p); err != nil {
			return err
		}
		fmt.Printf("  creado: %s\n", p.Nombre)
	}
	return nil
}
