package router

import (
	"conference-api/handlers"
	"conference-api/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, signingKey []byte) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(cors.New())

	api := app.Group("/", logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	auth := middleware.Authorize(signingKey)

	api.Get("/health", h.Health)

	//Accounts
	api.Post("/signup", h.Signup)
	api.Post("/login", h.Login)

	//Profile
	profile := api.Group("/profile", auth)
	profile.Get("/", h.GetProfile)
	profile.Post("/", h.SaveProfile)

	//Conference
	conference := api.Group("/conference")
	conference.Post("/", auth, h.CreateConference)
	conference.Get("/:confKey", h.GetConference)
	conference.Put("/:confKey", auth, h.UpdateConference)
	conference.Post("/:confKey/registration", auth, h.RegisterForConference)
	conference.Delete("/:confKey/registration", auth, h.UnregisterFromConference)
	conference.Post("/:confKey/sessions", auth, h.CreateSession)
	conference.Get("/:confKey/sessions", h.ConferenceSessions)
	conference.Get("/:confKey/sessions/type/:type", h.ConferenceSessions)
	conference.Get("/:confKey/speakers", h.ConferenceSpeakers)

	conferences := api.Group("/conferences")
	conferences.Post("/query", h.QueryConferences)
	conferences.Get("/created", auth, h.ConferencesCreated)
	conferences.Get("/attending", auth, h.ConferencesToAttend)

	//Sessions
	sessions := api.Group("/sessions")
	sessions.Get("/filter", h.FilterSessions)
	sessions.Get("/:sessionKey", h.GetSession)

	//Speakers
	speakers := api.Group("/speakers")
	speakers.Post("/", auth, h.AddSpeaker)
	speakers.Get("/", h.Speakers)
	speakers.Get("/:speakerKey/sessions", h.SessionsBySpeaker)

	//Wishlist
	wishlist := api.Group("/wishlist", auth)
	wishlist.Get("/", h.Wishlist)
	wishlist.Post("/:sessionKey", h.AddToWishlist)
	wishlist.Delete("/:sessionKey", h.DeleteFromWishlist)

	//Announcements
	api.Get("/announcement", h.GetAnnouncement)
	api.Get("/announcement/speaker", h.GetFeaturedSpeaker)
}
