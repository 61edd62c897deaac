package inmemdb

import (
	"sync"

	"github.com/trezcool/hagwon/core/attendance"
	"github.com/trezcool/hagwon/core/promotion"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
	"github.com/trezcool/hagwon/core/vocab"
)

type (
	DB struct {
		student    *studentTable
		attendance *attendanceTable
		timetable  *timetableTable
		vocab      *vocabTable
		settings   *settingsTable
	}

	studentTable struct {
		pk      int64
		classPK int64
		table   map[int64]*student.Student
		classes map[int64]*student.ClassGroup
		members map[int64][]int64 // class ID -> student IDs, in insertion order
		mutex   sync.RWMutex
	}

	attendanceTable struct {
		pk    int64
		table []attendance.Event
		mutex sync.RWMutex
	}

	timetableTable struct {
		pk    int64
		table []timetable.Slot
		mutex sync.RWMutex
	}

	vocabTable struct {
		setPK, itemPK, assignmentPK, resultPK int64

		sets        map[int64]*vocab.Set
		items       []vocab.Item
		assignments []vocab.Assignment
		results     []vocab.Result
		mutex       sync.RWMutex
	}

	settingsTable struct {
		table map[string]promotion.Marker
		mutex sync.RWMutex
	}
)

// Open returns a new, empty database. Nothing is shared between two databases.
func Open() *DB {
	return &DB{
		student: &studentTable{
			table:   make(map[int64]*student.Student),
			classes: make(map[int64]*student.ClassGroup),
			members: make(map[int64][]int64),
		},
		attendance: &attendanceTable{},
		timetable:  &timetableTable{},
		vocab:      &vocabTable{sets: make(map[int64]*vocab.Set)},
		settings:   &settingsTable{table: make(map[string]promotion.Marker)},
	}
}
