package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AssignmentService interface {
	CreateAssignment(teacherID string, req dto.AssignmentCreateRequest) (*dto.AssignmentListItem, error)
	ListAssignments(studentID, courseID, status string, page, limit int) (*dto.PagedResponse, error)
	SubmitAssignment(studentID, assignmentID string, req dto.AssignmentSubmitRequest) (*dto.AssignmentSubmissionResponse, error)
	GetOwnSubmission(studentID, assignmentID string) (*dto.AssignmentSubmissionResponse, error)
	ListSubmissions(teacherID, assignmentID string) ([]dto.AssignmentSubmissionResponse, error)
	GradeSubmission(teacherID, submissionID string, req dto.AssignmentGradeRequest) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	courseRepo     repository.CourseRepository
	now            func() time.Time
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, courseRepo repository.CourseRepository) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		now:            time.Now,
	}
}

// deriveAssignmentStatus mirrors the exam engine's lazy evaluation: the
// status is computed from the clock and the submission on every read.
func deriveAssignmentStatus(assignment *model.Assignment, submission *model.AssignmentSubmission, now time.Time) string {
	if submission != nil {
		if submission.Status == model.AssignmentStatusGraded {
			return dto.AssignmentStatusGraded
		}
		return dto.AssignmentStatusSubmitted
	}
	if now.After(assignment.DueDate) {
		return dto.AssignmentStatusOverdue
	}
	return dto.AssignmentStatusPending
}

func (s *assignmentService) CreateAssignment(teacherID string, req dto.AssignmentCreateRequest) (*dto.AssignmentListItem, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, apperr.Forbidden("you do not own this course")
	}

	assignment := &model.Assignment{
		ID:          uuid.NewString(),
		CourseID:    req.CourseID,
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TotalScore:  req.TotalScore,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		log.Error().Err(err).Str("courseID", req.CourseID).Msg("CreateAssignment: failed to create assignment")
		return nil, err
	}

	return &dto.AssignmentListItem{
		ID:          assignment.ID,
		Title:       assignment.Title,
		Description: assignment.Description,
		CourseID:    assignment.CourseID,
		CourseName:  course.Title,
		DueDate:     assignment.DueDate,
		TotalScore:  assignment.TotalScore,
		Status:      dto.AssignmentStatusPending,
	}, nil
}

func (s *assignmentService) ListAssignments(studentID, courseID, status string, page, limit int) (*dto.PagedResponse, error) {
	courseIDs, err := s.courseRepo.EnrolledCourseIDs(studentID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		resp := dto.NewPagedResponse([]dto.AssignmentListItem{}, 0, page, limit)
		return &resp, nil
	}

	assignments, _, err := s.assignmentRepo.FindAllByCourseIDs(courseIDs, courseID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]dto.AssignmentListItem, 0, len(assignments))
	for i := range assignments {
		assignment := &assignments[i]
		submission, err := s.findSubmission(assignment.ID, studentID)
		if err != nil {
			return nil, err
		}

		derived := deriveAssignmentStatus(assignment, submission, now)
		if status != "" && status != derived {
			continue
		}

		item := dto.AssignmentListItem{
			ID:          assignment.ID,
			Title:       assignment.Title,
			Description: assignment.Description,
			CourseID:    assignment.CourseID,
			CourseName:  assignment.Course.Title,
			DueDate:     assignment.DueDate,
			TotalScore:  assignment.TotalScore,
			Status:      derived,
		}
		if submission != nil {
			item.SubmissionID = &submission.ID
			submittedAt := submission.SubmittedAt
			item.SubmittedAt = &submittedAt
			item.Score = submission.Score
		}
		items = append(items, item)
	}

	resp := dto.NewPagedResponse(items, int64(len(items)), page, limit)
	return &resp, nil
}

func (s *assignmentService) SubmitAssignment(studentID, assignmentID string, req dto.AssignmentSubmitRequest) (*dto.AssignmentSubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, err
	}

	now := s.now()
	if now.After(assignment.DueDate) {
		return nil, apperr.Ended("the assignment deadline has passed")
	}

	enrolled, err := s.courseRepo.IsStudentEnrolled(assignment.CourseID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.NotEnrolled("you are not enrolled in this course")
	}

	submission, err := s.findSubmission(assignmentID, studentID)
	if err != nil {
		return nil, err
	}
	if submission != nil {
		if submission.Status == model.AssignmentStatusGraded {
			return nil, apperr.Invalid("the submission has already been graded")
		}
		// Resubmission before the deadline overwrites.
		submission.Content = req.Content
		submission.SubmittedAt = now
		if err := s.assignmentRepo.UpdateSubmission(submission); err != nil {
			return nil, err
		}
	} else {
		submission = &model.AssignmentSubmission{
			ID:           uuid.NewString(),
			AssignmentID: assignmentID,
			StudentID:    studentID,
			Content:      req.Content,
			SubmittedAt:  now,
			Status:       model.AssignmentStatusSubmitted,
		}
		if err := s.assignmentRepo.CreateSubmission(submission); err != nil {
			return nil, err
		}
	}

	return assignmentSubmissionToResponse(submission), nil
}

func (s *assignmentService) GetOwnSubmission(studentID, assignmentID string) (*dto.AssignmentSubmissionResponse, error) {
	submission, err := s.assignmentRepo.FindSubmission(assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission not found")
		}
		return nil, err
	}
	return assignmentSubmissionToResponse(submission), nil
}

func (s *assignmentService) ListSubmissions(teacherID, assignmentID string) ([]dto.AssignmentSubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment not found")
		}
		return nil, err
	}
	if assignment.TeacherID != teacherID {
		return nil, apperr.Forbidden("you do not own this assignment")
	}

	submissions, err := s.assignmentRepo.FindSubmissionsByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AssignmentSubmissionResponse, 0, len(submissions))
	for i := range submissions {
		resp := assignmentSubmissionToResponse(&submissions[i])
		resp.StudentName = submissions[i].Student.Name
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *assignmentService) GradeSubmission(teacherID, submissionID string, req dto.AssignmentGradeRequest) error {
	// Ownership is checked against the parent assignment's teacher.
	submission, err := s.assignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("submission not found")
		}
		return err
	}
	if submission.Assignment.TeacherID != teacherID {
		return apperr.Forbidden("you do not own this assignment")
	}

	submission.Score = &req.Score
	submission.Feedback = req.Feedback
	submission.Status = model.AssignmentStatusGraded
	return s.assignmentRepo.UpdateSubmission(submission)
}

func (s *assignmentService) findSubmission(assignmentID, studentID string) (*model.AssignmentSubmission, error) {
	submission, err := s.assignmentRepo.FindSubmission(assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return submission, nil
}

func assignmentSubmissionToResponse(submission *model.AssignmentSubmission) *dto.AssignmentSubmissionResponse {
	return &dto.AssignmentSubmissionResponse{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		Content:      submission.Content,
		SubmittedAt:  submission.SubmittedAt,
		Score:        submission.Score,
		Feedback:     submission.Feedback,
		Status:       submission.Status,
	}
}
