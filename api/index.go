package api

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed index.html
var indexPage []byte

// Index serves the simulation form and result charts.
func (s *SchedulerHandlerImpl) Index(ctx *fiber.Ctx) error {
	ctx.Type("html")
	return ctx.Send(indexPage)
}
