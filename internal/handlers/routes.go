package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/readgroup-backend/internal/middleware"
	"github.com/noteduco342/readgroup-backend/internal/service"
)

type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Groups   *service.GroupService
	Reads    *service.ReadService
	Messages *service.MessageService
	Progress *service.ProgressService
}

// Register mounts every route on app.
func Register(app *fiber.App, s Services) {
	authHandler := NewAuthHandler(s.Auth)
	userHandler := NewUserHandler(s.Users)
	groupHandler := NewGroupHandler(s.Groups)
	readHandler := NewReadHandler(s.Reads)
	messageHandler := NewMessageHandler(s.Messages)
	progressHandler := NewProgressHandler(s.Progress)

	authRequired := middleware.AuthRequired(s.Auth)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Reading group backend is running",
		})
	})

	users := app.Group("/users")
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Post("/login", authHandler.Login)
	users.Post("/token", authHandler.Token)
	users.Post("/logout", authHandler.Logout)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	groups := app.Group("/groups")
	groups.Get("/", authRequired, groupHandler.GetMyGroups)
	groups.Post("/", authRequired, groupHandler.CreateGroup)
	groups.Get("/:id", groupHandler.GetGroup)
	groups.Put("/:id", middleware.AuthUnless(s.Auth, HasGroupPatch), groupHandler.UpdateOrJoin)
	groups.Delete("/:id", groupHandler.DeleteGroup)

	reads := app.Group("/reads")
	reads.Post("/", authRequired, readHandler.CreateRead)
	reads.Get("/group/:id", readHandler.ListGroupReads)
	reads.Get("/:id", readHandler.GetRead)
	reads.Delete("/:id", authRequired, readHandler.DeleteRead)
	reads.Put("/:id/content", authRequired, readHandler.PutContent)
	reads.Get("/:id/content", authRequired, readHandler.GetContent)

	messages := app.Group("/messages", authRequired)
	messages.Post("/", messageHandler.CreateMessage)
	messages.Get("/:id", messageHandler.GetMessages)
	messages.Delete("/:id", messageHandler.DeleteMessage)

	progress := app.Group("/progress", authRequired)
	progress.Get("/:id", progressHandler.GetProgress)
	progress.Post("/", progressHandler.UpsertProgress)
}
