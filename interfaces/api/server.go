// Package api exposes the daemon's liveness surface: the keep-alive root
// page hosting platforms poll, plus health and schedule introspection.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Manasess896/X-bot/pkg/scheduler"
)

// NewApp builds the fiber application with all routes registered.
func NewApp(sched *scheduler.Scheduler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "X-bot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString("<b>Hack The Planet</b>")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if !sched.IsRunning() {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":    status,
			"scheduler": sched.IsRunning(),
			"time":      time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/jobs", func(c *fiber.Ctx) error {
		return c.JSON(sched.ListJobs())
	})

	return app
}
