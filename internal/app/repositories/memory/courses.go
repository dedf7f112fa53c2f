package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// CourseStore keeps the course catalog
type CourseStore struct {
	t *tables
}

// clash reports whether a course other than excludeID uses name or code.
// Callers hold the lock.
func (s *CourseStore) clash(name string, code *string, excludeID int64) bool {
	for id, c := range s.t.courses {
		if id == excludeID {
			continue
		}
		if c.Name == name {
			return true
		}
		if code != nil && c.Code != nil && *c.Code == *code {
			return true
		}
	}
	return false
}

// CreateCourse creates a new course
func (s *CourseStore) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if s.clash(course.Name, course.Code, 0) {
		return 0, apperrors.ErrCourseAlreadyExists
	}
	s.t.nextCourseID++
	course.ID = s.t.nextCourseID
	cp := *course
	s.t.courses[course.ID] = &cp
	return course.ID, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	course, ok := s.t.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *course
	return &cp, nil
}

// ListCourses returns one page ordered by name, then id
func (s *CourseStore) ListCourses(_ context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	all := make([]*models.Course, 0, len(s.t.courses))
	for _, c := range s.t.courses {
		cp := *c
		all = append(all, &cp)
	}
	slices.SortFunc(all, func(a, b *models.Course) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Course{}, total, nil
	}
	end := min(int(offset)+limit, len(all))
	return all[offset:end], total, nil
}

// UpdateCourse replaces every field of an existing course
func (s *CourseStore) UpdateCourse(_ context.Context, course *models.Course) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, ok := s.t.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if s.clash(course.Name, course.Code, course.ID) {
		return apperrors.ErrCourseAlreadyExists
	}
	cp := *course
	s.t.courses[course.ID] = &cp
	return nil
}

// DeleteCourse deletes a course that no completed course references
func (s *CourseStore) DeleteCourse(_ context.Context, id int64) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, ok := s.t.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, cc := range s.t.completed {
		if cc.CourseID == id {
			return apperrors.ErrCourseInUse
		}
	}
	delete(s.t.courses, id)
	return nil
}

// CourseExistsByNameOrCode reports whether a course other than excludeID uses name or code
func (s *CourseStore) CourseExistsByNameOrCode(_ context.Context, name string, code *string, excludeID int64) (bool, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	return s.clash(name, code, excludeID), nil
}

// CourseExists reports whether a course with id exists
func (s *CourseStore) CourseExists(_ context.Context, id int64) (bool, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()
	_, ok := s.t.courses[id]
	return ok, nil
}
