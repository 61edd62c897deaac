package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/hagwon/apps/api/echo"
	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
	"github.com/trezcool/hagwon/core/promotion"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
	"github.com/trezcool/hagwon/core/vocab"
	inmemdb "github.com/trezcool/hagwon/storage/database/inmem"
	testutil "github.com/trezcool/hagwon/tests"
)

type studentStore interface {
	student.Repository
	CreateStudent(ctx context.Context, stu student.Student) (student.Student, error)
	CreateClass(ctx context.Context, cls student.ClassGroup) (student.ClassGroup, error)
	AddClassMember(ctx context.Context, classID, studentID int64) error
}

type fixture struct {
	conf        *core.Config
	app         *Server
	students    studentStore
	attendances attendance.Repository
	vocabs      vocab.Repository
	markers     promotion.MarkerRepository
}

func setup(t *testing.T) fixture {
	conf := testutil.NewConfig()
	conf.Server.DisableReqLogs = true
	logger := testutil.Logger{T: t}
	validate, translator := core.NewValidator()

	db := inmemdb.Open()
	students := inmemdb.NewStudentRepository(db)
	attendances := inmemdb.NewAttendanceRepository(db)
	vocabs := inmemdb.NewVocabRepository(db)
	markers := inmemdb.NewSettingsRepository(db)

	app := NewServer(&Deps{
		Conf:       conf,
		Logger:     logger,
		Translator: translator,
		Students:   student.NewService(students),
		Attendance: attendance.NewService(attendances, students, validate, conf),
		Timetable:  timetable.NewService(inmemdb.NewTimetableRepository(db), students, validate),
		Vocab:      vocab.NewService(vocabs, students, inmemdb.NewQuizStore(time.Hour), validate, conf),
		Promotion:  promotion.NewEngine(students, markers, logger),
	})
	return fixture{conf: conf, app: app, students: students, attendances: attendances, vocabs: vocabs, markers: markers}
}

type httpErr struct {
	Error string `json:"error"`
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

// do sends the request and decodes the JSON response into out (if not nil).
func (f fixture) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var data []byte
	switch b := body.(type) {
	case nil:
	case string:
		data = []byte(b)
	default:
		var err error
		data, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req, rec := newRequest(method, path, data)
	f.app.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}
