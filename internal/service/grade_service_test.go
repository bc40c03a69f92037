package service

import (
	"testing"

	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGradeRepo struct {
	grades []*model.Grade
}

func (f *fakeGradeRepo) Create(grade *model.Grade) error {
	for _, g := range f.grades {
		if g.StudentID == grade.StudentID && g.CourseID == grade.CourseID && g.Semester == grade.Semester {
			return repository.ErrDuplicateGrade
		}
	}
	f.grades = append(f.grades, grade)
	return nil
}

func (f *fakeGradeRepo) Update(grade *model.Grade) error {
	for i, g := range f.grades {
		if g.ID == grade.ID {
			f.grades[i] = grade
		}
	}
	return nil
}

func (f *fakeGradeRepo) FindByStudentAndCourse(studentID, courseID string) (*model.Grade, error) {
	for _, g := range f.grades {
		if g.StudentID == studentID && g.CourseID == courseID {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGradeRepo) FindByStudentCourseSemester(studentID, courseID, semester string) (*model.Grade, error) {
	for _, g := range f.grades {
		if g.StudentID == studentID && g.CourseID == courseID && g.Semester == semester {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGradeRepo) FindAllByStudent(studentID, semester string) ([]model.Grade, error) {
	var grades []model.Grade
	for _, g := range f.grades {
		if g.StudentID == studentID && (semester == "" || g.Semester == semester) {
			grades = append(grades, *g)
		}
	}
	return grades, nil
}

func fptr(v float64) *float64 { return &v }

func dtoGradeUpsert(studentID, courseID, semester string, total float64) dto.GradeUpsertRequest {
	return dto.GradeUpsertRequest{
		StudentID:  studentID,
		CourseID:   courseID,
		Semester:   semester,
		ClassScore: fptr(total),
		RainScore:  fptr(total),
		ExamScore:  fptr(total),
		TotalScore: fptr(total),
	}
}

func newGradeServiceWith(grades ...*model.Grade) (GradeService, *fakeGradeRepo, *fakeCourseRepo) {
	gradeRepo := &fakeGradeRepo{grades: grades}
	courseRepo := newFakeCourseRepo()
	courseRepo.Create(&model.Course{
		ID: "course-1", Title: "Algorithms", TeacherID: "teacher-1",
		Teacher: model.User{ID: "teacher-1", Name: "Prof. Chen"},
	})
	courseRepo.enroll("course-1", "student-1")
	return NewGradeService(gradeRepo, courseRepo), gradeRepo, courseRepo
}

func TestGetCourseGradeComposition(t *testing.T) {
	svc, _, _ := newGradeServiceWith(&model.Grade{
		ID: "g1", StudentID: "student-1", CourseID: "course-1", Semester: "2025-1",
		ClassScore: fptr(80), RainScore: fptr(90), ExamScore: fptr(70), TotalScore: fptr(77),
	})

	resp, err := svc.GetCourseGrade("student-1", "course-1")
	require.NoError(t, err)

	require.Len(t, resp.Composition, 3)
	assert.Equal(t, 30, resp.Composition[0].Percentage)
	assert.Equal(t, 20, resp.Composition[1].Percentage)
	assert.Equal(t, 50, resp.Composition[2].Percentage)
	assert.Equal(t, 80.0, resp.Composition[0].Score)
	assert.Equal(t, 90.0, resp.Composition[1].Score)
	assert.Equal(t, 70.0, resp.Composition[2].Score)
	// The stored total is returned as is, not recomputed from the weights.
	assert.Equal(t, 77.0, resp.FinalScore)
}

func TestGetCourseGradeWithoutGradeRow(t *testing.T) {
	svc, _, _ := newGradeServiceWith()

	resp, err := svc.GetCourseGrade("student-1", "course-1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.FinalScore)
	require.Len(t, resp.Composition, 3)
	for _, comp := range resp.Composition {
		assert.Equal(t, 0.0, comp.Score)
	}
}

func TestGetCourseGradeRequiresEnrollment(t *testing.T) {
	svc, _, _ := newGradeServiceWith()

	_, err := svc.GetCourseGrade("student-2", "course-1")
	assert.True(t, apperr.IsKind(err, apperr.KindNotEnrolled))
}

func TestGetOverview(t *testing.T) {
	t.Run("no grades yields all zeros", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith()
		resp, err := svc.GetOverview("student-1")
		require.NoError(t, err)
		assert.Equal(t, 0, resp.TotalCourses)
		assert.Equal(t, 0.0, resp.AverageScore)
	})

	t.Run("averages only non-null totals", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith(
			&model.Grade{ID: "g1", StudentID: "student-1", CourseID: "course-1", Semester: "2025-1", TotalScore: fptr(85)},
			&model.Grade{ID: "g2", StudentID: "student-1", CourseID: "course-2", Semester: "2025-1", TotalScore: fptr(92)},
			&model.Grade{ID: "g3", StudentID: "student-1", CourseID: "course-3", Semester: "2025-1", TotalScore: nil},
		)

		resp, err := svc.GetOverview("student-1")
		require.NoError(t, err)
		// The null total is excluded from the average but its row still counts.
		assert.Equal(t, 3, resp.TotalCourses)
		assert.Equal(t, 88.5, resp.AverageScore)
		assert.Equal(t, 92.0, resp.HighestScore)
		assert.Equal(t, 85.0, resp.LowestScore)
	})

	t.Run("a zero total is a real score", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith(
			&model.Grade{ID: "g1", StudentID: "student-1", CourseID: "course-1", Semester: "2025-1", TotalScore: fptr(0)},
			&model.Grade{ID: "g2", StudentID: "student-1", CourseID: "course-2", Semester: "2025-1", TotalScore: fptr(90)},
		)

		resp, err := svc.GetOverview("student-1")
		require.NoError(t, err)
		assert.Equal(t, 45.0, resp.AverageScore)
		assert.Equal(t, 0.0, resp.LowestScore)
	})

	t.Run("average is rounded to one decimal", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith(
			&model.Grade{ID: "g1", StudentID: "student-1", CourseID: "course-1", Semester: "2025-1", TotalScore: fptr(80)},
			&model.Grade{ID: "g2", StudentID: "student-1", CourseID: "course-2", Semester: "2025-1", TotalScore: fptr(85)},
			&model.Grade{ID: "g3", StudentID: "student-1", CourseID: "course-3", Semester: "2025-1", TotalScore: fptr(91)},
		)

		resp, err := svc.GetOverview("student-1")
		require.NoError(t, err)
		// mean is 85.333...
		assert.Equal(t, 85.3, resp.AverageScore)
	})
}

func TestRoundHalfUp(t *testing.T) {
	// exact binary halves round away from zero, not to even
	assert.Equal(t, 0.3, roundHalfUp(0.25))
	assert.Equal(t, 0.8, roundHalfUp(0.75))
	assert.Equal(t, 2.3, roundHalfUp(2.25))
	assert.Equal(t, 0.2, roundHalfUp(0.21))
	assert.Equal(t, 85.3, roundHalfUp(256.0/3.0))
}

func TestUpsertGrade(t *testing.T) {
	t.Run("creates then updates the same row", func(t *testing.T) {
		svc, gradeRepo, _ := newGradeServiceWith()

		req := dtoGradeUpsert("student-1", "course-1", "2025-1", 60)
		require.NoError(t, svc.UpsertGrade("teacher-1", req))
		require.Len(t, gradeRepo.grades, 1)

		req.TotalScore = fptr(75)
		require.NoError(t, svc.UpsertGrade("teacher-1", req))
		require.Len(t, gradeRepo.grades, 1)
		assert.Equal(t, 75.0, *gradeRepo.grades[0].TotalScore)
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith()
		err := svc.UpsertGrade("teacher-2", dtoGradeUpsert("student-1", "course-1", "2025-1", 60))
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("rejects an unenrolled student", func(t *testing.T) {
		svc, _, _ := newGradeServiceWith()
		err := svc.UpsertGrade("teacher-1", dtoGradeUpsert("student-9", "course-1", "2025-1", 60))
		assert.True(t, apperr.IsKind(err, apperr.KindNotEnrolled))
	})
}
