package schedulersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/promotion"
)

const (
	purgeSchedule = "@hourly"
	jobTimeout    = 4 * time.Minute
)

var nowFunc = time.Now // mockable

// QuizPurger drops expired pending quizzes and returns how many were removed.
type QuizPurger interface {
	Purge() int
}

// Scheduler runs the recurring jobs: the yearly grade promotion check and the pending quiz purge.
type Scheduler struct {
	conf    *core.Config
	engine  *promotion.Engine
	quizzes QuizPurger
	email   core.EmailService
	logger  core.Logger
	cron    *cron.Cron
}

func New(
	conf *core.Config,
	engine *promotion.Engine,
	quizzes QuizPurger,
	email core.EmailService,
	logger core.Logger,
) *Scheduler {
	cl := cronLogger{logger}
	return &Scheduler{
		conf:    conf,
		engine:  engine,
		quizzes: quizzes,
		email:   email,
		logger:  logger,
		cron: cron.New(
			cron.WithLocation(conf.Location()),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start runs the promotion check once, then schedules the recurring jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.RunPromotion(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("scheduler: %v", err), err)
	}

	if _, err := s.cron.AddFunc(s.conf.PromotionSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := s.RunPromotion(ctx); err != nil {
			s.logger.Error(fmt.Sprintf("scheduler: %v", err), err)
		}
	}); err != nil {
		return errors.Wrapf(err, "scheduling promotion (%q)", s.conf.PromotionSchedule)
	}
	if s.quizzes != nil {
		if _, err := s.cron.AddFunc(purgeSchedule, func() { s.PurgeQuizzes() }); err != nil {
			return errors.Wrap(err, "scheduling quiz purge")
		}
	}

	s.cron.Start()
	s.logger.Info(fmt.Sprintf("scheduler: started (promotion=%q, tz=%s)", s.conf.PromotionSchedule, s.conf.Location()))
	return nil
}

// Stop stops scheduling and waits (up to ctx) for running jobs.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "stopping scheduler")
	}
}

// RunPromotion checks the promotion for the current year in the configured timezone, and reports to
// the admins when students were promoted.
func (s *Scheduler) RunPromotion(ctx context.Context) (promotion.Outcome, error) {
	out, err := s.engine.MaybePromote(ctx, nowFunc().In(s.conf.Location()).Year())
	if err != nil {
		return out, errors.Wrap(err, "promotion check")
	}
	if out.Kind == promotion.Promoted && out.Promoted > 0 && len(s.conf.AdminEmails) > 0 {
		s.email.SendMessages(&core.EmailMessage{
			To:           s.conf.AdminEmails,
			Subject:      fmt.Sprintf("Grade promotion %d", out.Year),
			TemplateName: "promotion_report",
			TemplateData: map[string]interface{}{"Year": out.Year, "Promoted": out.Promoted},
		})
	}
	return out, nil
}

func (s *Scheduler) PurgeQuizzes() int {
	n := s.quizzes.Purge()
	if n > 0 {
		s.logger.Info(fmt.Sprintf("scheduler: purged %d expired quizzes", n))
	}
	return n
}

// cronLogger adapts core.Logger to cron.Logger.
type cronLogger struct {
	logger core.Logger
}

var _ cron.Logger = cronLogger{} // interface compliance check

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValuesToMap(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, err, keysAndValuesToMap(keysAndValues))
}

func keysAndValuesToMap(kv []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return m
}
