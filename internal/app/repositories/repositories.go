package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
)

// Repositories holds all the Postgres-backed repository instances
type Repositories struct {
	UserRepository            *UserRepository
	CourseRepository          *CourseRepository
	CompletedCourseRepository *CompletedCourseRepository
	StudentProfileRepository  *RecordRepository[*models.StudentProfile]
	SchoolRecordRepository    *RecordRepository[*models.SchoolRecord]
	CollegeRecordRepository   *RecordRepository[*models.CollegeRecord]
	ExamRecordRepository      *RecordRepository[*models.ExamRecord]
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(pool),
		CourseRepository:          NewCourseRepository(pool),
		CompletedCourseRepository: NewCompletedCourseRepository(pool),
		StudentProfileRepository:  NewStudentProfileRepository(pool),
		SchoolRecordRepository:    NewSchoolRecordRepository(pool),
		CollegeRecordRepository:   NewCollegeRecordRepository(pool),
		ExamRecordRepository:      NewExamRecordRepository(pool),
	}
}
