// Package memory implements the repository contracts on process memory.
// It backs the "memory" storage backend and the HTTP tests; constraint
// violations are reported with the same apperrors the Postgres repositories
// return.
package memory

import (
	"sync"

	"github.com/yigit/admissions/internal/app/models"
)

// tables is the shared state of one Store. Users, courses and completed
// courses reference each other, so they live behind one lock.
type tables struct {
	mu sync.RWMutex

	nextUserID      int64
	nextRoleID      int64
	nextCourseID    int64
	nextCompletedID int64

	users     map[int64]*models.User
	emails    map[string]int64
	roles     map[models.RoleName]*models.Role
	userRoles map[int64]map[int64]struct{}
	courses   map[int64]*models.Course
	completed map[int64]*models.CompletedCourse
}

// Store groups the memory repositories, mirroring repositories.Repositories
type Store struct {
	Users            *UserStore
	Courses          *CourseStore
	CompletedCourses *CompletedCourseStore
	StudentProfiles  *RecordStore[models.StudentProfile, *models.StudentProfile]
	SchoolRecords    *RecordStore[models.SchoolRecord, *models.SchoolRecord]
	CollegeRecords   *RecordStore[models.CollegeRecord, *models.CollegeRecord]
	ExamRecords      *RecordStore[models.ExamRecord, *models.ExamRecord]
}

// New creates an empty Store
func New() *Store {
	t := &tables{
		users:     make(map[int64]*models.User),
		emails:    make(map[string]int64),
		roles:     make(map[models.RoleName]*models.Role),
		userRoles: make(map[int64]map[int64]struct{}),
		courses:   make(map[int64]*models.Course),
		completed: make(map[int64]*models.CompletedCourse),
	}
	return &Store{
		Users:            &UserStore{t: t},
		Courses:          &CourseStore{t: t},
		CompletedCourses: &CompletedCourseStore{t: t},
		StudentProfiles:  NewRecordStore[models.StudentProfile](models.KindStudentProfile),
		SchoolRecords:    NewRecordStore[models.SchoolRecord](models.KindSchoolRecord),
		CollegeRecords:   NewRecordStore[models.CollegeRecord](models.KindCollegeRecord),
		ExamRecords:      NewRecordStore[models.ExamRecord](models.KindExamRecord),
	}
}
