package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// CompletedCourseStore keeps user to course completion links
type CompletedCourseStore struct {
	t *tables
}

func (s *CompletedCourseStore) find(userID, courseID int64) *models.CompletedCourse {
	for _, cc := range s.t.completed {
		if cc.UserID == userID && cc.CourseID == courseID {
			return cc
		}
	}
	return nil
}

// ListByOwner returns the user's completions joined with course names, in insertion order
func (s *CompletedCourseStore) ListByOwner(_ context.Context, userID int64) ([]*models.CompletedCourse, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	out := []*models.CompletedCourse{}
	for _, cc := range s.t.completed {
		if cc.UserID != userID {
			continue
		}
		cp := *cc
		if course, ok := s.t.courses[cc.CourseID]; ok {
			cp.CourseName = course.Name
		}
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.CompletedCourse) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Insert records a completion
func (s *CompletedCourseStore) Insert(_ context.Context, cc *models.CompletedCourse) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, ok := s.t.courses[cc.CourseID]; !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	if _, ok := s.t.users[cc.UserID]; !ok {
		return 0, apperrors.ErrUserNotFound
	}
	if s.find(cc.UserID, cc.CourseID) != nil {
		return 0, apperrors.ErrCompletedCourseExists
	}

	s.t.nextCompletedID++
	cc.ID = s.t.nextCompletedID
	cp := *cc
	cp.CourseName = ""
	s.t.completed[cc.ID] = &cp
	return cc.ID, nil
}

// Update replaces marks and term of the (user, course) completion
func (s *CompletedCourseStore) Update(_ context.Context, cc *models.CompletedCourse) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	existing := s.find(cc.UserID, cc.CourseID)
	if existing == nil {
		return apperrors.ErrCompletedCourseNotFound
	}
	existing.Marks = cc.Marks
	existing.TermOfCompletion = cc.TermOfCompletion
	cc.ID = existing.ID
	return nil
}

// Delete removes the (user, course) completion
func (s *CompletedCourseStore) Delete(_ context.Context, userID, courseID int64) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	existing := s.find(userID, courseID)
	if existing == nil {
		return apperrors.ErrCompletedCourseNotFound
	}
	delete(s.t.completed, existing.ID)
	return nil
}
