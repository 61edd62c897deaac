package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/hagwon/core/timetable"
)

// weekResponse holds the slots per weekday (0=Monday) and the same week laid out as table rows.
type weekResponse struct {
	Days [timetable.DaysPerWeek][]timetable.Slot `json:"days"`
	Rows [][timetable.DaysPerWeek]string         `json:"rows"`
}

func newWeekResponse(week timetable.Week) weekResponse {
	resp := weekResponse{Rows: week.Rows()}
	for wd, day := range week {
		if day == nil {
			day = []timetable.Slot{}
		}
		resp.Days[wd] = day
	}
	return resp
}

type timetableApi struct {
	svc *timetable.Service
}

func registerTimetableAPI(g *echo.Group, deps *Deps) {
	api := timetableApi{svc: deps.Timetable}

	tg := g.Group("/timetable")
	tg.GET("", api.query)
	tg.POST("", api.create)
}

// Handlers

func (api *timetableApi) query(ctx echo.Context) error {
	classIDs, err := queryIDs(ctx, "class_id")
	if err != nil {
		return err
	}
	week, err := api.svc.WeeklyTimetable(ctx.Request().Context(), classIDs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newWeekResponse(week))
}

func (api *timetableApi) create(ctx echo.Context) error {
	var data timetable.NewSlot
	if err := bind(ctx, &data, "NewSlot"); err != nil {
		return err
	}
	slot, err := api.svc.AddSlot(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, slot)
}
