package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lootopia-service/services"
)

// SetupRoutes registers one resource path per entity kind, verbs
// GET/POST/PUT/DELETE, selection by ?id= or foreign-key filters.
func SetupRoutes(app *fiber.App, cat *services.Catalog) {
	app.Post("/login", cat.Auth.Login)
	app.Post("/logout", cat.Auth.Logout)

	for _, svc := range cat.Entities {
		path := "/" + svc.Kind()
		app.Get(path, svc.Get)
		app.Post(path, svc.Create)
		if !svc.Immutable() {
			app.Put(path, svc.Update)
			app.Delete(path, svc.Delete)
		}
	}

	for _, svc := range cat.Associations {
		path := "/" + svc.Kind()
		app.Get(path, svc.Get)
		app.Post(path, svc.Create)
		app.Delete(path, svc.Delete)
		if svc.Updatable() {
			app.Put(path, svc.Update)
		}
	}
}
