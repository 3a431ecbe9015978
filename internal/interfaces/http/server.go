package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string // separados por comas; vacío = cualquier origen
}

// NewApp crea la app Fiber con el manejo de errores y los middlewares comunes
// (log de peticiones, recover, CORS). Las rutas se registran con Router.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestLogger())
	app.Use(recover.New())

	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	return app
}
