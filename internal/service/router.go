package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tabsplit/internal/auth"
	"tabsplit/internal/middleware"
	"tabsplit/internal/storage"
)

// NewRouter assembles the HTTP API. The compute endpoint is public so the
// editing UI can recalculate without a session; bill and group endpoints
// require a valid token.
func NewRouter(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) http.Handler {
	bills := NewBillService(store)
	groups := NewGroupService(store)
	sessions := NewAuthService(authenticator, jwtManager)

	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", sessions.Register)
		r.Post("/auth/login", sessions.Login)

		r.Post("/compute", bills.Compute)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Post("/bills", bills.CreateBill)
			r.Get("/bills", bills.ListBills)
			r.Get("/bills/{billID}", bills.GetBill)
			r.Put("/bills/{billID}", bills.UpdateBill)
			r.Delete("/bills/{billID}", bills.DeleteBill)

			r.Post("/groups", groups.CreateGroup)
			r.Get("/groups/{groupID}", groups.GetGroup)
			r.Get("/groups/{groupID}/bills", groups.ListGroupBills)
		})
	})

	return r
}
