package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CourseService interface {
	CreateCourse(teacherID string, req dto.CourseCreateRequest) (*dto.CourseResponse, error)
	UpdateCourse(teacherID, courseID string, req dto.CourseUpdateRequest) (*dto.CourseResponse, error)
	DeleteCourse(teacherID, courseID string) error
	GetCourse(courseID string) (*dto.CourseResponse, error)
	ListTeacherCourses(teacherID string) ([]dto.CourseResponse, error)
	ListStudentCourses(studentID string) ([]dto.CourseResponse, error)
	EnrollStudent(teacherID, courseID, studentID string) error
	UnenrollStudent(teacherID, courseID, studentID string) error
	ListStudents(courseID string) ([]dto.UserResponse, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
}

func NewCourseService(courseRepo repository.CourseRepository, userRepo repository.UserRepository) CourseService {
	return &courseService{courseRepo: courseRepo, userRepo: userRepo}
}

func courseToResponse(course *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		TeacherID:   course.TeacherID,
		TeacherName: course.Teacher.Name,
		Semester:    course.Semester,
		CreatedAt:   course.CreatedAt,
	}
}

func (s *courseService) CreateCourse(teacherID string, req dto.CourseCreateRequest) (*dto.CourseResponse, error) {
	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
		Semester:    req.Semester,
	}
	if err := s.courseRepo.Create(course); err != nil {
		log.Error().Err(err).Str("teacherID", teacherID).Msg("CreateCourse: failed to create course")
		return nil, err
	}
	resp := courseToResponse(course)
	return &resp, nil
}

func (s *courseService) UpdateCourse(teacherID, courseID string, req dto.CourseUpdateRequest) (*dto.CourseResponse, error) {
	course, err := s.findOwnedCourse(teacherID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.Semester != "" {
		course.Semester = req.Semester
	}
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	resp := courseToResponse(course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(teacherID, courseID string) error {
	if _, err := s.findOwnedCourse(teacherID, courseID); err != nil {
		return err
	}
	return s.courseRepo.Delete(courseID)
}

func (s *courseService) GetCourse(courseID string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByIDWithTeacher(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	resp := courseToResponse(course)
	return &resp, nil
}

func (s *courseService) ListTeacherCourses(teacherID string) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAllByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	return coursesToResponses(courses), nil
}

func (s *courseService) ListStudentCourses(studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAllForStudent(studentID)
	if err != nil {
		return nil, err
	}
	return coursesToResponses(courses), nil
}

func (s *courseService) EnrollStudent(teacherID, courseID, studentID string) error {
	if _, err := s.findOwnedCourse(teacherID, courseID); err != nil {
		return err
	}

	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("student not found")
		}
		return err
	}
	if student.Role != model.RoleStudent {
		return apperr.Invalid("only students can be enrolled in a course")
	}

	enrollment := &model.CourseStudent{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		StudentID: studentID,
	}
	if err := s.courseRepo.Enroll(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.AlreadyExists("the student is already enrolled in this course")
		}
		return err
	}
	return nil
}

func (s *courseService) UnenrollStudent(teacherID, courseID, studentID string) error {
	if _, err := s.findOwnedCourse(teacherID, courseID); err != nil {
		return err
	}
	return s.courseRepo.Unenroll(courseID, studentID)
}

func (s *courseService) ListStudents(courseID string) ([]dto.UserResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}

	students, err := s.courseRepo.FindStudents(courseID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.UserResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.UserResponse{
			ID:        student.ID,
			Username:  student.Username,
			Email:     student.Email,
			Name:      student.Name,
			Role:      student.Role,
			Avatar:    student.Avatar,
			CreatedAt: student.CreatedAt,
		})
	}
	return responses, nil
}

func (s *courseService) findOwnedCourse(teacherID, courseID string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, apperr.Forbidden("you do not own this course")
	}
	return course, nil
}

func coursesToResponses(courses []model.Course) []dto.CourseResponse {
	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, courseToResponse(&courses[i]))
	}
	return responses
}
