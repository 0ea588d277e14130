package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LocationUC  *usecase.LocationUseCase
	InventoryUC *inventory.UseCase
	JWTSecret   string
	SessionTTL  time.Duration
	Session     config.SessionConfig
	Logger      *logger.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log))
	requireSession := AuthMiddleware(deps.JWTSecret, deps.Session.CookieName)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session, deps.SessionTTL, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	// Locais de estoque (protegido)
	locationHandler := NewLocationHandler(deps.LocationUC, log)
	locations := api.Group("/locations", requireSession)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Patch("/", locationHandler.SetActive)
	locations.Delete("/", locationHandler.Remove)
	locations.Put("/:id", locationHandler.Update)

	// Produtos (protegido)
	productHandler := NewProductHandler(deps.InventoryUC, log)
	products := api.Group("/products", requireSession)
	products.Get("/", productHandler.List)
	products.Get("/stats", productHandler.Stats)
	products.Get("/report", productHandler.Report)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
