package components

import (
	"scooter-rental/internal/handler"
	"scooter-rental/internal/handler/api"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewEngine,
		api.NewOfferHandler,
		api.NewOrderHandler,
	),
	fx.Invoke(handler.NewRouter),
)

// NewEngine returns a bare engine; all middleware is installed by NewRouter.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	return engine
}
