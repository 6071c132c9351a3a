package httpx

import (
	"log/slog"
	"net/http"

	"github.com/openlibms/libms/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Users        *service.UserService
	Books        *service.BookService
	Departs      *service.DepartService
	Borrows      *service.BorrowService
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
// Registration and login are public; everything else requires a session.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	registerAuthRoutes(mux, authHandlers, services.Auth)
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users}, services.Auth)
	registerBookRoutes(mux, &BookHandlers{Svc: services.Books}, services.Auth)
	registerDepartRoutes(mux, &DepartHandlers{Svc: services.Departs}, services.Auth)
	registerBorrowRoutes(mux, &BorrowHandlers{Svc: services.Borrows}, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Logging(logger)(Recover(logger)(CORS()(mux)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, authSvc AuthServiceInterface) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("POST /auth/register", http.HandlerFunc(h.Register))
	mux.Handle("POST /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /auth/logout", requireAuth(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/current", requireAuth(http.HandlerFunc(h.Current)))
	mux.Handle("POST /auth/change-password", requireAuth(http.HandlerFunc(h.ChangePassword)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, authSvc AuthServiceInterface) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("GET /users", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /users/page", requireAuth(http.HandlerFunc(h.Page)))
	mux.Handle("GET /users/{userid}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("POST /users", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /users/{userid}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /users/{userid}", requireAuth(http.HandlerFunc(h.Delete)))
}

func registerBookRoutes(mux *http.ServeMux, h *BookHandlers, authSvc AuthServiceInterface) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("GET /books", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /books/page", requireAuth(http.HandlerFunc(h.Page)))
	mux.Handle("GET /books/{bookid}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("POST /books", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /books/{bookid}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /books/{bookid}", requireAuth(http.HandlerFunc(h.Delete)))
}

func registerDepartRoutes(mux *http.ServeMux, h *DepartHandlers, authSvc AuthServiceInterface) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("GET /departs", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /departs/page", requireAuth(http.HandlerFunc(h.Page)))
	mux.Handle("GET /departs/{departid}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("POST /departs", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /departs/{departid}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /departs/{departid}", requireAuth(http.HandlerFunc(h.Delete)))
}

func registerBorrowRoutes(mux *http.ServeMux, h *BorrowHandlers, authSvc AuthServiceInterface) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("GET /borrows", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /borrows/page", requireAuth(http.HandlerFunc(h.Page)))
	mux.Handle("GET /borrows/{userid}/{bookid}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("POST /borrows", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /borrows/{userid}/{bookid}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /borrows/{userid}/{bookid}", requireAuth(http.HandlerFunc(h.Delete)))
}
