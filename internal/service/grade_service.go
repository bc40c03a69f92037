package service

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Fixed grade composition. The stored total is authoritative and is never
// recomputed from these weights.
const (
	classWeight = 30
	rainWeight  = 20
	examWeight  = 50
)

type GradeService interface {
	GetCourseGrade(studentID, courseID string) (*dto.CourseGradeResponse, error)
	GetOverview(studentID string) (*dto.GradeOverviewResponse, error)
	ListGrades(studentID, semester string) ([]dto.GradeDetailItem, error)
	UpsertGrade(teacherID string, req dto.GradeUpsertRequest) error
}

type gradeService struct {
	gradeRepo  repository.GradeRepository
	courseRepo repository.CourseRepository
}

func NewGradeService(gradeRepo repository.GradeRepository, courseRepo repository.CourseRepository) GradeService {
	return &gradeService{gradeRepo: gradeRepo, courseRepo: courseRepo}
}

func composition(classScore, rainScore, examScore float64) []dto.GradeComponent {
	return []dto.GradeComponent{
		{Name: "Class performance", Score: classScore, Percentage: classWeight},
		{Name: "Rain classroom", Score: rainScore, Percentage: rainWeight},
		{Name: "Final exam", Score: examScore, Percentage: examWeight},
	}
}

func scoreOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// roundHalfUp rounds to one decimal place, halves away from zero.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func (s *gradeService) GetCourseGrade(studentID, courseID string) (*dto.CourseGradeResponse, error) {
	enrolled, err := s.courseRepo.IsStudentEnrolled(courseID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.NotEnrolled("you are not enrolled in this course")
	}

	course, err := s.courseRepo.FindByIDWithTeacher(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}

	resp := &dto.CourseGradeResponse{
		CourseID:    courseID,
		CourseName:  course.Title,
		TeacherName: course.Teacher.Name,
	}

	grade, err := s.gradeRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No grade yet is a valid state, not an error.
			resp.Composition = composition(0, 0, 0)
			return resp, nil
		}
		return nil, err
	}

	resp.Composition = composition(
		scoreOrZero(grade.ClassScore),
		scoreOrZero(grade.RainScore),
		scoreOrZero(grade.ExamScore),
	)
	resp.FinalScore = scoreOrZero(grade.TotalScore)
	resp.Comment = grade.Comment
	return resp, nil
}

func (s *gradeService) GetOverview(studentID string) (*dto.GradeOverviewResponse, error) {
	grades, err := s.gradeRepo.FindAllByStudent(studentID, "")
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Msg("GetOverview: failed to load grades")
		return nil, err
	}
	if len(grades) == 0 {
		return &dto.GradeOverviewResponse{}, nil
	}

	var scores []float64
	for _, grade := range grades {
		if grade.TotalScore != nil {
			scores = append(scores, *grade.TotalScore)
		}
	}

	overview := &dto.GradeOverviewResponse{TotalCourses: len(grades)}
	if len(scores) == 0 {
		return overview, nil
	}

	sum := 0.0
	highest := scores[0]
	lowest := scores[0]
	for _, score := range scores {
		sum += score
		if score > highest {
			highest = score
		}
		if score < lowest {
			lowest = score
		}
	}
	overview.AverageScore = roundHalfUp(sum / float64(len(scores)))
	overview.HighestScore = highest
	overview.LowestScore = lowest
	return overview, nil
}

func (s *gradeService) ListGrades(studentID, semester string) ([]dto.GradeDetailItem, error) {
	grades, err := s.gradeRepo.FindAllByStudent(studentID, semester)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GradeDetailItem, 0, len(grades))
	for _, grade := range grades {
		items = append(items, dto.GradeDetailItem{
			CourseID:   grade.CourseID,
			CourseName: grade.Course.Title,
			Semester:   grade.Semester,
			Composition: composition(
				scoreOrZero(grade.ClassScore),
				scoreOrZero(grade.RainScore),
				scoreOrZero(grade.ExamScore),
			),
			FinalScore: scoreOrZero(grade.TotalScore),
		})
	}
	return items, nil
}

func (s *gradeService) UpsertGrade(teacherID string, req dto.GradeUpsertRequest) error {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("course not found")
		}
		return err
	}
	if course.TeacherID != teacherID {
		return apperr.Forbidden("only the course teacher can enter grades")
	}

	enrolled, err := s.courseRepo.IsStudentEnrolled(req.CourseID, req.StudentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.NotEnrolled("the student is not enrolled in this course")
	}

	grade, err := s.gradeRepo.FindByStudentCourseSemester(req.StudentID, req.CourseID, req.Semester)
	switch {
	case err == nil:
		grade.ClassScore = req.ClassScore
		grade.RainScore = req.RainScore
		grade.ExamScore = req.ExamScore
		grade.TotalScore = req.TotalScore
		grade.Comment = req.Comment
		return s.gradeRepo.Update(grade)
	case errors.Is(err, gorm.ErrRecordNotFound):
		grade = &model.Grade{
			ID:         uuid.NewString(),
			StudentID:  req.StudentID,
			CourseID:   req.CourseID,
			Semester:   req.Semester,
			ClassScore: req.ClassScore,
			RainScore:  req.RainScore,
			ExamScore:  req.ExamScore,
			TotalScore: req.TotalScore,
			Comment:    req.Comment,
		}
		if err := s.gradeRepo.Create(grade); err != nil {
			if errors.Is(err, repository.ErrDuplicateGrade) {
				return apperr.AlreadyExists("a grade for this student, course and semester already exists")
			}
			return err
		}
		return nil
	default:
		return err
	}
}
