package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/hagwon/apps/api/echo"
	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
	"github.com/trezcool/hagwon/core/promotion"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
	"github.com/trezcool/hagwon/core/vocab"
	emailsvc "github.com/trezcool/hagwon/services/email"
	logsvc "github.com/trezcool/hagwon/services/logger"
	schedulersvc "github.com/trezcool/hagwon/services/scheduler"
	"github.com/trezcool/hagwon/storage/database"
	inmemdb "github.com/trezcool/hagwon/storage/database/inmem"
	sqlxrepos "github.com/trezcool/hagwon/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type CronLoggerParam struct {
	dig.In
	Logger core.Logger `name:"cronLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newCronLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "CRON : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newValidator() (*validator.Validate, ut.Translator) {
	return core.NewValidator()
}

func newQuizStore(conf *core.Config) (vocab.QuizStore, schedulersvc.QuizPurger) {
	store := inmemdb.NewQuizStore(conf.QuizTTL)
	return store, store
}

func newScheduler(
	conf *core.Config,
	engine *promotion.Engine,
	quizzes schedulersvc.QuizPurger,
	email core.EmailService,
	loggerParam CronLoggerParam,
) *schedulersvc.Scheduler {
	return schedulersvc.New(conf, engine, quizzes, email, loggerParam.Logger)
}

type serverParams struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Translator ut.Translator
	Students   *student.Service
	Attendance *attendance.Service
	Timetable  *timetable.Service
	Vocab      *vocab.Service
	Promotion  *promotion.Engine
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Deps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Translator: p.Translator,
		Students:   p.Students,
		Attendance: p.Attendance,
		Timetable:  p.Timetable,
		Vocab:      p.Vocab,
		Promotion:  p.Promotion,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	// config & ambient services
	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newCronLogger, dig.Name("cronLogger")))
	must(c.Provide(newDB))
	must(c.Provide(emailsvc.NewService))
	must(c.Provide(newValidator))

	// repositories
	must(c.Provide(sqlxrepos.NewStudentRepository, dig.As(new(student.Repository))))
	must(c.Provide(sqlxrepos.NewAttendanceRepository, dig.As(new(attendance.Repository))))
	must(c.Provide(sqlxrepos.NewTimetableRepository, dig.As(new(timetable.Repository))))
	must(c.Provide(sqlxrepos.NewVocabRepository, dig.As(new(vocab.Repository))))
	must(c.Provide(sqlxrepos.NewSettingsRepository, dig.As(new(promotion.MarkerRepository))))
	must(c.Provide(newQuizStore))

	// domain services
	must(c.Provide(student.NewService))
	must(c.Provide(attendance.NewService))
	must(c.Provide(timetable.NewService))
	must(c.Provide(vocab.NewService))
	must(c.Provide(promotion.NewEngine))
	must(c.Provide(newScheduler))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
