package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamAdminService is the teacher side of exams: authoring and grading.
// Grading is the only path from submitted to graded.
type ExamAdminService interface {
	CreateExam(teacherID string, req dto.ExamCreateRequest) (*dto.ExamSessionResponse, error)
	ListSubmissions(teacherID, examID string) ([]dto.SubmissionSummary, error)
	GetSubmission(teacherID, submissionID string) (*dto.SubmissionDetailResponse, error)
	GradeAnswer(teacherID, answerID string, req dto.GradeAnswerRequest) error
	FinalizeGrading(teacherID, submissionID string) (*dto.SubmissionDetailResponse, error)
}

type examAdminService struct {
	examRepo   repository.ExamRepository
	subRepo    repository.ExamSubmissionRepository
	courseRepo repository.CourseRepository
}

func NewExamAdminService(
	examRepo repository.ExamRepository,
	subRepo repository.ExamSubmissionRepository,
	courseRepo repository.CourseRepository,
) ExamAdminService {
	return &examAdminService{examRepo: examRepo, subRepo: subRepo, courseRepo: courseRepo}
}

func (s *examAdminService) CreateExam(teacherID string, req dto.ExamCreateRequest) (*dto.ExamSessionResponse, error) {
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

	if req.EndTime.Before(req.StartTime) {
		return nil, apperr.Invalid("end time must not be before start time")
	}

	seenOrders := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if seenOrders[q.Order] {
			return nil, apperr.Invalid(fmt.Sprintf("duplicate question order %d", q.Order))
		}
		seenOrders[q.Order] = true
		if q.Type != model.QuestionTypeEssay && len(q.Options) == 0 && q.Type != model.QuestionTypeBoolean {
			return nil, apperr.Invalid(fmt.Sprintf("question %d of type %s requires options", q.Order, q.Type))
		}
	}

	exam := &model.Exam{
		ID:          uuid.NewString(),
		CourseID:    req.CourseID,
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		TotalScore:  req.TotalScore,
	}
	for _, q := range req.Questions {
		exam.Questions = append(exam.Questions, model.ExamQuestion{
			ID:            uuid.NewString(),
			ExamID:        exam.ID,
			Type:          q.Type,
			Content:       q.Content,
			Options:       encodeOptions(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Score:         q.Score,
			Order:         q.Order,
		})
	}

	if err := s.examRepo.CreateWithQuestions(exam); err != nil {
		log.Error().Err(err).Str("courseID", req.CourseID).Msg("CreateExam: failed to create exam")
		return nil, err
	}
	log.Info().Str("examID", exam.ID).Int("questions", len(exam.Questions)).Msg("Exam created")

	questions := make([]dto.ExamSessionQuestion, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		questions = append(questions, dto.ExamSessionQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Content: q.Content,
			Options: decodeOptions(q.Options),
			Score:   q.Score,
			Order:   q.Order,
		})
	}
	return &dto.ExamSessionResponse{
		ExamID:      exam.ID,
		Title:       exam.Title,
		Description: exam.Description,
		Duration:    exam.Duration,
		Questions:   questions,
	}, nil
}

func (s *examAdminService) ListSubmissions(teacherID, examID string) ([]dto.SubmissionSummary, error) {
	if _, err := s.findOwnedExam(teacherID, examID); err != nil {
		return nil, err
	}

	submissions, err := s.subRepo.FindAllByExam(examID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.SubmissionSummary, 0, len(submissions))
	for _, sub := range submissions {
		summaries = append(summaries, dto.SubmissionSummary{
			ID:          sub.ID,
			StudentID:   sub.StudentID,
			StudentName: sub.Student.Name,
			StartTime:   sub.StartTime,
			SubmitTime:  sub.SubmitTime,
			Status:      sub.Status,
			TotalScore:  sub.TotalScore,
		})
	}
	return summaries, nil
}

func (s *examAdminService) GetSubmission(teacherID, submissionID string) (*dto.SubmissionDetailResponse, error) {
	submission, err := s.subRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission not found")
		}
		return nil, err
	}
	if _, err := s.findOwnedExam(teacherID, submission.ExamID); err != nil {
		return nil, err
	}
	return submissionToDetail(submission), nil
}

func (s *examAdminService) GradeAnswer(teacherID, answerID string, req dto.GradeAnswerRequest) error {
	answer, err := s.subRepo.FindAnswerWithSubmission(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("answer not found")
		}
		return err
	}
	if _, err := s.findOwnedExam(teacherID, answer.Submission.ExamID); err != nil {
		return err
	}
	if answer.Submission.Status == model.SubmissionStatusOngoing {
		return apperr.Invalid("the submission has not been handed in yet")
	}
	return s.subRepo.UpdateAnswerGrade(answerID, req.Score, req.IsCorrect)
}

// FinalizeGrading sums the per-answer scores into the submission total and
// moves it to graded, the terminal state.
func (s *examAdminService) FinalizeGrading(teacherID, submissionID string) (*dto.SubmissionDetailResponse, error) {
	submission, err := s.subRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("submission not found")
		}
		return nil, err
	}
	if _, err := s.findOwnedExam(teacherID, submission.ExamID); err != nil {
		return nil, err
	}
	if submission.Status == model.SubmissionStatusOngoing {
		return nil, apperr.Invalid("the submission has not been handed in yet")
	}

	total := 0.0
	for _, answer := range submission.Answers {
		if answer.Score != nil {
			total += *answer.Score
		}
	}
	submission.TotalScore = &total
	submission.Status = model.SubmissionStatusGraded
	if err := s.subRepo.Update(submission); err != nil {
		log.Error().Err(err).Str("submissionID", submissionID).Msg("FinalizeGrading: failed to update submission")
		return nil, err
	}
	return submissionToDetail(submission), nil
}

func (s *examAdminService) findOwnedExam(teacherID, examID string) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("exam not found")
		}
		return nil, err
	}
	if exam.TeacherID != teacherID {
		return nil, apperr.Forbidden("you do not own this exam")
	}
	return exam, nil
}

func submissionToDetail(submission *model.ExamSubmission) *dto.SubmissionDetailResponse {
	answers := make([]dto.SubmissionAnswerDetail, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		answers = append(answers, dto.SubmissionAnswerDetail{
			ID:            answer.ID,
			QuestionID:    answer.QuestionID,
			Type:          answer.Question.Type,
			Content:       answer.Question.Content,
			Options:       decodeOptions(answer.Question.Options),
			CorrectAnswer: answer.Question.CorrectAnswer,
			MaxScore:      answer.Question.Score,
			Answer:        answer.Answer,
			Score:         answer.Score,
			IsCorrect:     answer.IsCorrect,
		})
	}
	return &dto.SubmissionDetailResponse{
		ID:          submission.ID,
		ExamID:      submission.ExamID,
		StudentID:   submission.StudentID,
		StudentName: submission.Student.Name,
		StartTime:   submission.StartTime,
		SubmitTime:  submission.SubmitTime,
		Status:      submission.Status,
		TotalScore:  submission.TotalScore,
		Answers:     answers,
	}
}
