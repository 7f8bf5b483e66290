// Package kernel assembles the HTTP stack: global middleware in a fixed
// order, the metrics endpoint, the live order feed and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/lacantina/backend/app/routes"
	"github.com/lacantina/backend/pkg/metrics"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/reqid"
	"github.com/lacantina/backend/pkg/router"
	"github.com/lacantina/backend/pkg/ws"
)

type HTTPKernel struct {
	router *router.Router
	hub    *ws.Hub
}

// NewHTTPKernel builds the router with the global middleware chain,
// outermost first.
func NewHTTPKernel() *HTTPKernel {
	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	routes.RegisterAPI(r, hub)

	return &HTTPKernel{router: r, hub: hub}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the underlying router (used by route:list).
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

// Hub exposes the order event hub.
func (k *HTTPKernel) Hub() *ws.Hub {
	return k.hub
}
