package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
)

type attendanceApi struct {
	svc  *attendance.Service
	conf *core.Config
}

func registerAttendanceAPI(g *echo.Group, deps *Deps) {
	api := attendanceApi{svc: deps.Attendance, conf: deps.Conf}

	g.POST("/attendance", api.create)
	g.GET("/students/:id/attendance/calendar", api.studentCalendar)
	g.GET("/classes/:id/attendance/calendar", api.classCalendar)
	g.POST("/classes/:id/attendance", api.createForClass)
}

// Handlers

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewEvent
	if err := bind(ctx, &data, "NewEvent"); err != nil {
		return err
	}
	ev, err := api.svc.Record(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *attendanceApi) createForClass(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data attendance.NewClassEvent
	if err := bind(ctx, &data, "NewClassEvent"); err != nil {
		return err
	}
	events, err := api.svc.RecordClass(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	if events == nil {
		events = []attendance.Event{}
	}
	return ctx.JSON(http.StatusCreated, events)
}

func (api *attendanceApi) studentCalendar(ctx echo.Context) error {
	return api.calendar(ctx, attendance.StudentScope)
}

func (api *attendanceApi) classCalendar(ctx echo.Context) error {
	return api.calendar(ctx, attendance.ClassScope)
}

func (api *attendanceApi) calendar(ctx echo.Context, scope func(int64) attendance.Scope) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	year, month, err := yearMonth(ctx, api.conf.Now())
	if err != nil {
		return err
	}
	cal, err := api.svc.MonthlyCalendar(ctx.Request().Context(), scope(id), year, month)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cal)
}
