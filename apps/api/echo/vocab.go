package echoapi

import (
	"io"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/vocab"
)

// maxBulkSize caps the size of bulk import bodies.
const maxBulkSize = 1 << 20

type vocabApi struct {
	svc *vocab.Service
}

func registerVocabAPI(g *echo.Group, deps *Deps) {
	api := vocabApi{svc: deps.Vocab}

	vg := g.Group("/vocab-sets")
	vg.GET("", api.query)
	vg.POST("", api.create)
	vg.PATCH("/:id", api.update)
	vg.GET("/:id/results", api.results)
	vg.POST("/:id/items/bulk", api.importBulk)
	vg.POST("/:id/assignments", api.assign)

	g.POST("/quizzes/:quiz_id/answers", api.submitQuiz)
}

// Handlers

func (api *vocabApi) query(ctx echo.Context) error {
	var activeOnly bool
	if v := ctx.QueryParam("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "active", Error: "must be a boolean"})
		}
		activeOnly = b
	}
	sets, err := api.svc.Sets(ctx.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	if sets == nil {
		sets = []vocab.Set{}
	}
	return ctx.JSON(http.StatusOK, sets)
}

func (api *vocabApi) create(ctx echo.Context) error {
	var data vocab.NewSet
	if err := bind(ctx, &data, "NewSet"); err != nil {
		return err
	}
	set, err := api.svc.CreateSet(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, set)
}

type setUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}

func (api *vocabApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data setUpdateRequest
	if err := bind(ctx, &data, "setUpdateRequest"); err != nil {
		return err
	}
	if data.IsActive == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "is_active", Error: "this field is required"})
	}
	set, err := api.svc.SetActive(ctx.Request().Context(), id, *data.IsActive)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, set)
}

func (api *vocabApi) results(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	results, err := api.svc.Results(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if results == nil {
		results = []vocab.Result{}
	}
	return ctx.JSON(http.StatusOK, results)
}

type importResponse struct {
	Imported int `json:"imported"`
}

// importBulk reads the raw request body: one "word<TAB>meaning" (or "word / meaning") per line.
func (api *vocabApi) importBulk(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	body, err := ioutil.ReadAll(io.LimitReader(ctx.Request().Body, maxBulkSize))
	if err != nil {
		return errors.Wrap(err, "reading bulk body")
	}
	n, err := api.svc.ImportBulk(ctx.Request().Context(), id, string(body))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, importResponse{Imported: n})
}

type assignRequest struct {
	ClassID    *int64 `json:"class_id"`
	StudentID  *int64 `json:"student_id"`
	AssignedBy string `json:"assigned_by"`
}

func (api *vocabApi) assign(ctx echo.Context) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var data assignRequest
	if err := bind(ctx, &data, "assignRequest"); err != nil {
		return err
	}
	a, err := api.svc.Assign(ctx.Request().Context(), vocab.NewAssignment{
		SetID:      id,
		ClassID:    data.ClassID,
		StudentID:  data.StudentID,
		AssignedBy: data.AssignedBy,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

type answersRequest struct {
	Answers []string `json:"answers"`
}

func (api *vocabApi) submitQuiz(ctx echo.Context) error {
	var data answersRequest
	if err := bind(ctx, &data, "answersRequest"); err != nil {
		return err
	}
	res, err := api.svc.SubmitQuiz(ctx.Request().Context(), ctx.Param("quiz_id"), data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}
