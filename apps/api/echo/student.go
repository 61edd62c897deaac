package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
	"github.com/trezcool/hagwon/core/vocab"
)

type studentApi struct {
	svc          *student.Service
	timetableSvc *timetable.Service
	vocabSvc     *vocab.Service
}

func registerStudentAPI(g *echo.Group, deps *Deps) {
	api := studentApi{svc: deps.Students, timetableSvc: deps.Timetable, vocabSvc: deps.Vocab}

	sg := g.Group("/students")
	sg.GET("", api.query)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/timetable", api.retrieveTimetable)
	dg.GET("/vocab-sets", api.vocabSets)
	dg.POST("/vocab-sets/:set_id/quizzes", api.startQuiz)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	roster, err := api.svc.Roster(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	stu, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) retrieveTimetable(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	week, err := api.timetableSvc.StudentTimetable(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newWeekResponse(week))
}

func (api *studentApi) vocabSets(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	sets, err := api.vocabSvc.AssignedSets(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if sets == nil {
		sets = []vocab.Set{}
	}
	return ctx.JSON(http.StatusOK, sets)
}

type startQuizRequest struct {
	NumQuestions int `json:"num_questions"`
}

func (api *studentApi) startQuiz(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	setID, err := paramID(ctx, "set_id")
	if err != nil {
		return err
	}
	var data startQuizRequest
	if ctx.Request().ContentLength != 0 {
		if err := bind(ctx, &data, "startQuizRequest"); err != nil {
			return err
		}
	}

	quiz, err := api.vocabSvc.StartQuiz(ctx.Request().Context(), setID, id, data.NumQuestions)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, quiz)
}
