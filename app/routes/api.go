// Package routes wires every HTTP endpoint to its controller, with the
// auth and role checks declared next to the route they guard.
package routes

import (
	"net/http"

	"github.com/lacantina/backend/app/controllers"
	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/rbac"
	"github.com/lacantina/backend/pkg/router"
	"github.com/lacantina/backend/pkg/ws"
)

// RegisterAPI mounts the full API surface on r. The hub receives order
// events pushed from the order service.
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()
	orders := repositories.NewOrderRepository()
	store := repositories.NewStoreRepository()
	chats := repositories.NewChatRepository()
	menus := repositories.NewMenuRepository()

	storeService := services.NewStoreService(store)
	authController := controllers.NewAuthController(services.NewAuthService(users))
	userController := controllers.NewUserController(services.NewUserService(users))
	productController := controllers.NewProductController(services.NewCatalogService(products))
	orderController := controllers.NewOrderController(
		services.NewOrderService(orders, products, users, storeService, hub))
	storeController := controllers.NewStoreController(storeService)
	chatController := controllers.NewChatController(services.NewChatService(chats, users, products))
	menuController := controllers.NewMenuController(services.NewMenuService(menus))

	api := r.Group("/api")

	// Public surface.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Get("/store/status", "store.status", storeController.Status)
	api.Get("/productos", "productos.index", productController.Index)
	api.Get("/productos/{id}", "productos.show", productController.Show)
	api.Get("/menu", "menu.index", menuController.Index)

	// Any authenticated caller.
	auth := api.Group("", middleware.Auth)
	auth.Get("/usuario", "usuario.me", userController.Me)
	auth.Put("/usuario/preferencias", "usuario.preferencias", userController.UpdatePreferencias)
	auth.Post("/pedidos", "pedidos.create", orderController.Create)
	auth.Get("/pedidos/usuario", "pedidos.mine", orderController.MyOrders)
	auth.Get("/pedidos/{id}", "pedidos.show", orderController.Show)
	auth.Put("/pedidos/{id}/calificacion", "pedidos.calificacion", orderController.Calificacion)
	auth.Post("/chat", "chat.send", chatController.Send)
	auth.Get("/chat", "chat.history", chatController.History)

	// Privileged surface.
	admin := auth.Group("", rbac.Require(rbac.RolAdmin))
	admin.Get("/pedidos", "pedidos.index", orderController.Index)
	admin.Put("/pedidos/{id}/estado", "pedidos.estado", orderController.Estado)
	admin.Put("/pedidos/{id}/cancelar", "pedidos.cancelar", orderController.Cancelar)
	admin.Get("/admin/productos", "productos.all", productController.All)
	admin.Post("/productos", "productos.create", productController.Create)
	admin.Put("/productos/{id}", "productos.update", productController.Update)
	admin.Put("/productos/{id}/disponibilidad", "productos.disponibilidad", productController.Disponibilidad)
	admin.Put("/productos/{id}/imagen", "productos.imagen", productController.Imagen)
	admin.Delete("/productos/{id}", "productos.delete", productController.Delete)
	admin.Post("/menu", "menu.create", menuController.Create)
	admin.Get("/admin/store/status", "admin.store.status", storeController.AdminStatus)
	admin.Post("/admin/store/open", "admin.store.open", storeController.Open)
	admin.Post("/admin/store/close", "admin.store.close", storeController.Close)

	// Live order feed for the kitchen dashboard.
	feed := middleware.Auth(rbac.Require(rbac.RolAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, hub)
		})))
	r.HandleFunc("/api/ws/pedidos", feed.ServeHTTP)
}
