package dto

// TargetUser selects the user an admin operates on
type TargetUser struct {
	UserID int64 `form:"user_id" json:"user_id"`
}

// CourseKey selects a catalog course in the query or body
type CourseKey struct {
	ID int64 `form:"id" json:"id"`
}

// CompletedCourseKey selects one completion of the scoped user
type CompletedCourseKey struct {
	CourseID int64 `form:"course_id" json:"course_id" binding:"required,gt=0"`
}
