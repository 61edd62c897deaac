package main

import (
	"log"
	"os"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/promotion"
	"github.com/trezcool/hagwon/core/vocab"
	logsvc "github.com/trezcool/hagwon/services/logger"
	"github.com/trezcool/hagwon/storage/database"
	inmemdb "github.com/trezcool/hagwon/storage/database/inmem"
	sqlxrepos "github.com/trezcool/hagwon/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)

	// set up services
	validate, _ := core.NewValidator()
	students := sqlxrepos.NewStudentRepository(db)
	vocabSvc := vocab.NewService(
		sqlxrepos.NewVocabRepository(db),
		students,
		inmemdb.NewQuizStore(conf.QuizTTL), // quizzes are not used by the CLI
		validate,
		conf,
	)

	// start CLI
	cli := commandLine{
		db:       db.DB,
		conf:     conf,
		promoter: promotion.NewEngine(students, sqlxrepos.NewSettingsRepository(db), logger),
		importer: vocabSvc,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("command failed: "+err.Error(), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
