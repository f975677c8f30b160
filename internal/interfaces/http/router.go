package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	appsync "github.com/paulocell/paulocell-api/internal/application/sync"
	"github.com/paulocell/paulocell-api/internal/application/userdata"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	UserDataUC *userdata.UseCase
	SyncUC     *appsync.UseCase
}

// Router registra as rotas da API.
//
// CORS totalmente aberto: a API é consumida direto do navegador e a identidade
// vem do path, não de credenciais.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api")

	userDataHandler := NewUserDataHandler(deps.UserDataUC)
	syncHandler := NewSyncHandler(deps.SyncUC)

	data := api.Group("/user-data")
	data.Post("/:userId/sync", syncHandler.Apply)
	data.Get("/:userId/:store/:key", userDataHandler.Get)
	data.Put("/:userId/:store/:key", userDataHandler.Upsert)
	data.Post("/:userId/:store/:key", userDataHandler.Upsert)
	data.Delete("/:userId/:store/:key", userDataHandler.Delete)
	data.Get("/:userId/:store", userDataHandler.List)
}
