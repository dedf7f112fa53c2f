package models

// Course defines a catalog entry based on the 'courses' table.
// Name and Code are each unique across the catalog.
type Course struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Code         *string `json:"code" db:"code"`
	PreRequisite *string `json:"pre_requisite" db:"pre_requisite"`
	Level        *string `json:"level" db:"level"`
}

// CompletedCourse records that a user finished a catalog course.
// At most one row exists per (UserID, CourseID).
type CompletedCourse struct {
	ID               int64   `json:"id" db:"id"`
	UserID           int64   `json:"user_id" db:"user_id"`
	CourseID         int64   `json:"course_id" db:"course_id"`
	Marks            *int    `json:"marks" db:"marks"`
	TermOfCompletion *string `json:"term_of_completion" db:"term_of_completion"`
	// CourseName is joined from the catalog on reads
	CourseName string `json:"name" db:"-"`
}
