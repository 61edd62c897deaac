package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/promotion"
)

type promotionApi struct {
	engine *promotion.Engine
	conf   *core.Config
}

func registerPromotionAPI(g *echo.Group, deps *Deps) {
	api := promotionApi{engine: deps.Promotion, conf: deps.Conf}
	g.POST("/promotions", api.run)
}

// run triggers the promotion check for the current year in the configured timezone.
// The year is never taken from the request: the check runs at most once per calendar year.
func (api *promotionApi) run(ctx echo.Context) error {
	out, err := api.engine.MaybePromote(ctx.Request().Context(), api.conf.Now().Year())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, out)
}
