package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
)

const errNotPositiveInt = "must be a positive integer"

func paramID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: errNotPositiveInt})
	}
	return id, nil
}

func queryInt(ctx echo.Context, name string, def int) (int, error) {
	v := ctx.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return n, nil
}

func queryIDs(ctx echo.Context, name string) ([]int64, error) {
	values := ctx.QueryParams()[name]
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: errNotPositiveInt})
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// yearMonth reads ?year=&month=, defaulting to the current month.
func yearMonth(ctx echo.Context, now time.Time) (int, time.Month, error) {
	year, err := queryInt(ctx, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}
	month, err := queryInt(ctx, "month", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}

func bind(ctx echo.Context, data interface{}, name string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to "+name)
	}
	return nil
}
