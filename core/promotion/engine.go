package promotion

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
)

// MarkerKey is the settings key holding the year of the last promotion.
const MarkerKey = "last_grade_promotion_year"

type (
	Marker struct {
		Key       string    `json:"key" db:"key"`
		Value     string    `json:"value" db:"value"` // raw, may not be a number
		UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	}

	MarkerRepository interface {
		// ReadPromotionMarker returns nil when no marker was ever written.
		ReadPromotionMarker(ctx context.Context) (*Marker, error)
		WritePromotionMarker(ctx context.Context, year int) error
	}

	Kind string

	Outcome struct {
		Kind     Kind `json:"kind"`
		Year     int  `json:"year"`
		Promoted int  `json:"promoted"`
	}

	Engine struct {
		students student.Repository
		markers  MarkerRepository
		logger   core.Logger
	}
)

const (
	Initialized Kind = "initialized"
	Skipped     Kind = "skipped"
	Promoted    Kind = "promoted"
)

func (o Outcome) String() string {
	if o.Kind == Promoted {
		return fmt.Sprintf("%s %d student(s) for %d", o.Kind, o.Promoted, o.Year)
	}
	return fmt.Sprintf("%s for %d", o.Kind, o.Year)
}

func NewEngine(students student.Repository, markers MarkerRepository, logger core.Logger) *Engine {
	return &Engine{students: students, markers: markers, logger: logger}
}

// markerYear returns the year stored in the marker. Unreadable values count as the current year.
func markerYear(m *Marker, currentYear int) int {
	year, err := strconv.Atoi(strings.TrimSpace(m.Value))
	if err != nil {
		return currentYear
	}
	return year
}

// MaybePromote moves every student up one grade, at most once per calendar year.
//
// The very first run only records currentYear, so that installing the app mid-year does not
// promote anybody. Concurrent runs are not guarded against.
func (e *Engine) MaybePromote(ctx context.Context, currentYear int) (Outcome, error) {
	if currentYear <= 0 {
		return Outcome{}, core.NewArgumentError(fmt.Sprintf("invalid promotion year %d", currentYear))
	}
	marker, err := e.markers.ReadPromotionMarker(ctx)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "reading promotion marker")
	}

	if marker == nil {
		if err := e.markers.WritePromotionMarker(ctx, currentYear); err != nil {
			return Outcome{}, errors.Wrap(err, "writing promotion marker")
		}
		return Outcome{Kind: Initialized, Year: currentYear}, nil
	}

	last := markerYear(marker, currentYear)
	if last >= currentYear {
		return Outcome{Kind: Skipped, Year: currentYear}, nil
	}

	roster, err := e.students.FetchRoster(ctx)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "fetching roster")
	}

	var promoted int
	for _, stu := range roster {
		next := PromoteOneStep(stu.Grade)
		if next == stu.Grade {
			continue
		}
		if err := e.students.WriteStudentGrade(ctx, stu.ID, next); err != nil {
			// the marker is left untouched so the whole batch runs again next time
			return Outcome{}, errors.Wrapf(err, "writing grade of student %d", stu.ID)
		}
		promoted++
	}

	if err := e.markers.WritePromotionMarker(ctx, currentYear); err != nil {
		return Outcome{}, errors.Wrap(err, "writing promotion marker")
	}
	e.logger.Info(fmt.Sprintf("promoted %d student(s) from %d to %d", promoted, last, currentYear))
	return Outcome{Kind: Promoted, Year: currentYear, Promoted: promoted}, nil
}
