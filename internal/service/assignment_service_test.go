package service

import (
	"testing"
	"time"

	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssignmentRepo struct {
	assignments map[string]*model.Assignment
	submissions map[string]*model.AssignmentSubmission // keyed by assignmentID + "/" + studentID
}

func newFakeAssignmentRepo(assignments ...*model.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{
		assignments: make(map[string]*model.Assignment),
		submissions: make(map[string]*model.AssignmentSubmission),
	}
	for _, a := range assignments {
		repo.assignments[a.ID] = a
	}
	return repo
}

func (f *fakeAssignmentRepo) put(sub *model.AssignmentSubmission) {
	f.submissions[sub.AssignmentID+"/"+sub.StudentID] = sub
}

func (f *fakeAssignmentRepo) Create(a *model.Assignment) error {
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentRepo) FindByID(id string) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Assignment, int64, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		for _, id := range courseIDs {
			if a.CourseID == id && (courseID == "" || a.CourseID == courseID) {
				out = append(out, *a)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssignmentRepo) Delete(id string) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) CreateSubmission(sub *model.AssignmentSubmission) error {
	f.put(sub)
	return nil
}

func (f *fakeAssignmentRepo) UpdateSubmission(sub *model.AssignmentSubmission) error {
	f.put(sub)
	return nil
}

func (f *fakeAssignmentRepo) FindSubmission(assignmentID, studentID string) (*model.AssignmentSubmission, error) {
	sub, ok := f.submissions[assignmentID+"/"+studentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeAssignmentRepo) FindSubmissionByID(id string) (*model.AssignmentSubmission, error) {
	for _, sub := range f.submissions {
		if sub.ID == id {
			if a, ok := f.assignments[sub.AssignmentID]; ok {
				sub.Assignment = *a
			}
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) FindSubmissionsByAssignment(assignmentID string) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	for _, sub := range f.submissions {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

func weekAssignment() *model.Assignment {
	return &model.Assignment{
		ID:         "hw-1",
		CourseID:   "course-1",
		TeacherID:  "teacher-1",
		Title:      "Problem set 1",
		DueDate:    baseTime.Add(7 * 24 * time.Hour),
		TotalScore: 100,
	}
}

func newAssignmentServiceAt(t *testing.T, assignment *model.Assignment, now time.Time) (*assignmentService, *fakeAssignmentRepo) {
	t.Helper()
	repo := newFakeAssignmentRepo(assignment)
	courseRepo := newFakeCourseRepo()
	courseRepo.Create(&model.Course{ID: "course-1", Title: "Algorithms", TeacherID: "teacher-1"})
	courseRepo.enroll("course-1", "student-1")

	svc := NewAssignmentService(repo, courseRepo).(*assignmentService)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestDeriveAssignmentStatus(t *testing.T) {
	assignment := weekAssignment()
	submitted := &model.AssignmentSubmission{Status: model.AssignmentStatusSubmitted}
	graded := &model.AssignmentSubmission{Status: model.AssignmentStatusGraded}

	cases := []struct {
		name       string
		submission *model.AssignmentSubmission
		now        time.Time
		want       string
	}{
		{"open and unsubmitted", nil, baseTime, dto.AssignmentStatusPending},
		{"past due and unsubmitted", nil, assignment.DueDate.Add(time.Hour), dto.AssignmentStatusOverdue},
		{"submitted", submitted, baseTime, dto.AssignmentStatusSubmitted},
		{"submitted stays submitted past due", submitted, assignment.DueDate.Add(time.Hour), dto.AssignmentStatusSubmitted},
		{"graded", graded, baseTime, dto.AssignmentStatusGraded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveAssignmentStatus(assignment, tc.submission, tc.now))
		})
	}
}

func TestSubmitAssignment(t *testing.T) {
	assignment := weekAssignment()

	t.Run("creates a submission", func(t *testing.T) {
		svc, repo := newAssignmentServiceAt(t, assignment, baseTime)

		resp, err := svc.SubmitAssignment("student-1", "hw-1", dto.AssignmentSubmitRequest{Content: "my answer"})
		require.NoError(t, err)
		assert.Equal(t, model.AssignmentStatusSubmitted, resp.Status)
		assert.Equal(t, baseTime, resp.SubmittedAt)
		require.Len(t, repo.submissions, 1)
	})

	t.Run("resubmission overwrites before the deadline", func(t *testing.T) {
		svc, repo := newAssignmentServiceAt(t, assignment, baseTime)

		first, err := svc.SubmitAssignment("student-1", "hw-1", dto.AssignmentSubmitRequest{Content: "draft"})
		require.NoError(t, err)
		second, err := svc.SubmitAssignment("student-1", "hw-1", dto.AssignmentSubmitRequest{Content: "final"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		require.Len(t, repo.submissions, 1)
		assert.Equal(t, "final", repo.submissions["hw-1/student-1"].Content)
	})

	t.Run("rejected past the deadline", func(t *testing.T) {
		svc, _ := newAssignmentServiceAt(t, assignment, assignment.DueDate.Add(time.Minute))
		_, err := svc.SubmitAssignment("student-1", "hw-1", dto.AssignmentSubmitRequest{Content: "late"})
		assert.True(t, apperr.IsKind(err, apperr.KindEnded))
	})

	t.Run("rejected once graded", func(t *testing.T) {
		svc, repo := newAssignmentServiceAt(t, assignment, baseTime)
		repo.put(&model.AssignmentSubmission{
			ID: "as-1", AssignmentID: "hw-1", StudentID: "student-1",
			SubmittedAt: baseTime, Status: model.AssignmentStatusGraded,
		})

		_, err := svc.SubmitAssignment("student-1", "hw-1", dto.AssignmentSubmitRequest{Content: "again"})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
	})

	t.Run("rejected when not enrolled", func(t *testing.T) {
		svc, _ := newAssignmentServiceAt(t, assignment, baseTime)
		_, err := svc.SubmitAssignment("student-2", "hw-1", dto.AssignmentSubmitRequest{Content: "x"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotEnrolled))
	})

	t.Run("unknown assignment", func(t *testing.T) {
		svc, _ := newAssignmentServiceAt(t, assignment, baseTime)
		_, err := svc.SubmitAssignment("student-1", "missing", dto.AssignmentSubmitRequest{Content: "x"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestGradeAssignmentSubmission(t *testing.T) {
	assignment := weekAssignment()

	t.Run("grades and locks the submission", func(t *testing.T) {
		svc, repo := newAssignmentServiceAt(t, assignment, baseTime)
		repo.put(&model.AssignmentSubmission{
			ID: "as-1", AssignmentID: "hw-1", StudentID: "student-1",
			SubmittedAt: baseTime, Status: model.AssignmentStatusSubmitted,
		})

		feedback := "good work"
		err := svc.GradeSubmission("teacher-1", "as-1", dto.AssignmentGradeRequest{Score: 88, Feedback: &feedback})
		require.NoError(t, err)

		stored := repo.submissions["hw-1/student-1"]
		assert.Equal(t, model.AssignmentStatusGraded, stored.Status)
		require.NotNil(t, stored.Score)
		assert.Equal(t, 88.0, *stored.Score)
	})

	t.Run("only the assignment's teacher may grade", func(t *testing.T) {
		svc, repo := newAssignmentServiceAt(t, assignment, baseTime)
		repo.put(&model.AssignmentSubmission{
			ID: "as-1", AssignmentID: "hw-1", StudentID: "student-1",
			SubmittedAt: baseTime, Status: model.AssignmentStatusSubmitted,
		})

		err := svc.GradeSubmission("teacher-2", "as-1", dto.AssignmentGradeRequest{Score: 88})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown submission", func(t *testing.T) {
		svc, _ := newAssignmentServiceAt(t, assignment, baseTime)
		err := svc.GradeSubmission("teacher-1", "missing", dto.AssignmentGradeRequest{Score: 88})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}
