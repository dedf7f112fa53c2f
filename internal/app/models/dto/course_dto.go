package dto

import "github.com/yigit/admissions/internal/app/models"

// CreateCourseRequest adds a catalog course
type CreateCourseRequest struct {
	Name         *Scalar `json:"name" binding:"required,notblank"`
	Code         *Scalar `json:"code" binding:"required,notblank"`
	PreRequisite *Scalar `json:"pre_requisite"`
	Level        *Scalar `json:"level"`
}

// ToModel converts the request into a course
func (r *CreateCourseRequest) ToModel() *models.Course {
	return &models.Course{
		Name:         r.Name.String(),
		Code:         r.Code.Text(),
		PreRequisite: r.PreRequisite.Text(),
		Level:        r.Level.Text(),
	}
}

// UpdateCourseRequest replaces every field of a course. ID may come from
// the path or query instead of the body.
type UpdateCourseRequest struct {
	ID           int64   `json:"id"`
	Name         *Scalar `json:"name" binding:"required,notblank"`
	Code         *Scalar `json:"code"`
	PreRequisite *Scalar `json:"pre_requisite"`
	Level        *Scalar `json:"level"`
}

// ToModel converts the request into a course with id
func (r *UpdateCourseRequest) ToModel(id int64) *models.Course {
	return &models.Course{
		ID:           id,
		Name:         r.Name.String(),
		Code:         r.Code.Text(),
		PreRequisite: r.PreRequisite.Text(),
		Level:        r.Level.Text(),
	}
}

// CourseResponse is a catalog course as returned to clients
type CourseResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	PreRequisite *string `json:"pre_requisite"`
	Level        *string `json:"level"`
}

// FromCourse converts a course to its response
func FromCourse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		PreRequisite: c.PreRequisite,
		Level:        c.Level,
	}
}

// FromCourses converts a page of courses
func FromCourses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, FromCourse(c))
	}
	return out
}

// CompletedCourseRequest records or replaces a completion
type CompletedCourseRequest struct {
	CourseID         int64   `json:"course_id" binding:"required,gt=0"`
	Marks            *int    `json:"marks" binding:"omitempty,min=0,max=100"`
	TermOfCompletion *Scalar `json:"term_of_completion"`
}

// ToModel converts the request into a completion owned by userID
func (r *CompletedCourseRequest) ToModel(userID int64) *models.CompletedCourse {
	return &models.CompletedCourse{
		UserID:           userID,
		CourseID:         r.CourseID,
		Marks:            r.Marks,
		TermOfCompletion: r.TermOfCompletion.Text(),
	}
}

// CompletedCourseResponse is one completion joined with its course name
type CompletedCourseResponse struct {
	ID               int64   `json:"id"`
	CourseID         int64   `json:"course_id"`
	Marks            *int    `json:"marks"`
	TermOfCompletion *string `json:"term_of_completion"`
	Name             string  `json:"name"`
}

// FromCompletedCourses converts completions in order
func FromCompletedCourses(list []*models.CompletedCourse) []CompletedCourseResponse {
	out := make([]CompletedCourseResponse, 0, len(list))
	for _, cc := range list {
		out = append(out, CompletedCourseResponse{
			ID:               cc.ID,
			CourseID:         cc.CourseID,
			Marks:            cc.Marks,
			TermOfCompletion: cc.TermOfCompletion,
			Name:             cc.CourseName,
		})
	}
	return out
}
