package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/vocab"
)

// notFoundErrors are the sentinel errors answered with a 404.
var notFoundErrors = []error{
	student.ErrNotFound,
	student.ErrClassNotFound,
	vocab.ErrSetNotFound,
	vocab.ErrQuizNotFound,
}

func isNotFound(err error) bool {
	for _, e := range notFoundErrors {
		if err == e {
			return true
		}
	}
	return false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = fieldErrorsMap(core.TranslateValidationErrors(origErr, translator))
		case *core.ValidationError:
			code = http.StatusBadRequest
			if origErr.Fields != nil {
				message = fieldErrorsMap(origErr.Fields)
			} else {
				message = origErr.Error()
			}
		case *core.ArgumentError:
			code = http.StatusBadRequest
			message = origErr.Error()
		default:
			if isNotFound(cause) {
				code = http.StatusNotFound
				message = cause.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
				"method": ctx.Request().Method,
				"path":   ctx.Path(),
			})
			if ctx.Echo().Debug {
				message = err.Error()
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func fieldErrorsMap(fields []core.FieldError) map[string]string {
	fldErrs := make(map[string]string, len(fields))
	for _, fErr := range fields {
		fldErrs[fErr.Field] = fErr.Error
	}
	return fldErrs
}
