package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamService is the student-facing exam lifecycle engine: it decides what
// status an exam presents for a given student and which actions are legal.
type ExamService interface {
	ListExams(studentID, courseID, status string, page, limit int) (*dto.PagedResponse, error)
	StartExam(studentID, examID string) (*dto.ExamSessionResponse, error)
	SaveAnswer(studentID, answerID string, answer *string) (*dto.SaveAnswerResponse, error)
	SubmitExam(studentID, examID string) (*dto.SubmitExamResponse, error)
}

type examService struct {
	examRepo   repository.ExamRepository
	subRepo    repository.ExamSubmissionRepository
	courseRepo repository.CourseRepository
	now        func() time.Time
}

func NewExamService(
	examRepo repository.ExamRepository,
	subRepo repository.ExamSubmissionRepository,
	courseRepo repository.CourseRepository,
) ExamService {
	return &examService{
		examRepo:   examRepo,
		subRepo:    subRepo,
		courseRepo: courseRepo,
		now:        time.Now,
	}
}

// DeriveExamStatus computes the status presented to one student. The
// submission record wins over the clock: an ongoing submission keeps the exam
// ongoing, a submitted or graded one means the student is done.
func DeriveExamStatus(exam *model.Exam, submission *model.ExamSubmission, now time.Time) string {
	if submission != nil {
		if submission.Status == model.SubmissionStatusOngoing {
			return dto.ExamStatusOngoing
		}
		return dto.ExamStatusEnded
	}
	switch {
	case now.Before(exam.StartTime):
		return dto.ExamStatusNotStarted
	case now.After(exam.EndTime):
		return dto.ExamStatusEnded
	default:
		return dto.ExamStatusOngoing
	}
}

// submissionDeadline is the instant the submission must stop accepting
// answers: its own start plus the exam duration, never past the exam's
// global end time. A student who starts late does not get extra time.
func submissionDeadline(exam *model.Exam, submission *model.ExamSubmission) time.Time {
	deadline := submission.StartTime.Add(time.Duration(exam.Duration) * time.Minute)
	if deadline.After(exam.EndTime) {
		return exam.EndTime
	}
	return deadline
}

func (s *examService) ListExams(studentID, courseID, status string, page, limit int) (*dto.PagedResponse, error) {
	courseIDs, err := s.courseRepo.EnrolledCourseIDs(studentID)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Msg("ListExams: failed to load enrollments")
		return nil, err
	}
	if len(courseIDs) == 0 {
		resp := dto.NewPagedResponse([]dto.ExamListItem{}, 0, page, limit)
		return &resp, nil
	}

	exams, _, err := s.examRepo.FindAllByCourseIDs(courseIDs, courseID, limit, (page-1)*limit)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Msg("ListExams: failed to load exams")
		return nil, err
	}

	now := s.now()
	items := make([]dto.ExamListItem, 0, len(exams))
	for i := range exams {
		exam := &exams[i]
		submission, err := s.findSubmission(exam.ID, studentID)
		if err != nil {
			return nil, err
		}

		derived := DeriveExamStatus(exam, submission, now)
		if status != "" && status != derived {
			continue
		}

		item := dto.ExamListItem{
			ID:          exam.ID,
			Title:       exam.Title,
			Description: exam.Description,
			CourseID:    exam.CourseID,
			CourseName:  exam.Course.Title,
			StartTime:   exam.StartTime,
			EndTime:     exam.EndTime,
			Duration:    exam.Duration,
			TotalScore:  exam.TotalScore,
			Status:      derived,
		}
		if submission != nil {
			item.SubmissionID = &submission.ID
			item.SubmitTime = submission.SubmitTime
			item.Score = submission.TotalScore
		}
		items = append(items, item)
	}

	resp := dto.NewPagedResponse(items, int64(len(items)), page, limit)
	return &resp, nil
}

// StartExam starts a new submission or resumes the existing one. Creation of
// the submission plus its blank answers is atomic; a lost creation race is
// recovered by re-reading the winner, so starting twice always yields the
// same submission.
func (s *examService) StartExam(studentID, examID string) (*dto.ExamSessionResponse, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("exam not found")
		}
		return nil, err
	}

	now := s.now()
	if now.Before(exam.StartTime) {
		return nil, apperr.NotStarted("exam has not started yet")
	}
	if now.After(exam.EndTime) {
		return nil, apperr.Ended("exam has ended")
	}

	enrolled, err := s.courseRepo.IsStudentEnrolled(exam.CourseID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.NotEnrolled("you are not enrolled in this course")
	}

	submission, err := s.subRepo.FindByExamAndStudentWithAnswers(examID, studentID)
	switch {
	case err == nil:
		// resume
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission, err = s.createSubmission(exam, studentID, now)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	remaining := int(submissionDeadline(exam, submission).Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	// Hard stop: an expired submission flips to submitted the moment it is
	// touched, even if the student never called submit.
	if remaining == 0 && submission.Status == model.SubmissionStatusOngoing {
		submission.Status = model.SubmissionStatusSubmitted
		submission.SubmitTime = &now
		if err := s.subRepo.Update(submission); err != nil {
			log.Error().Err(err).Str("submissionID", submission.ID).Msg("StartExam: failed to auto-submit expired submission")
			return nil, err
		}
		log.Info().Str("submissionID", submission.ID).Msg("StartExam: expired submission auto-submitted")
	}

	return s.buildSession(exam, submission, remaining), nil
}

func (s *examService) createSubmission(exam *model.Exam, studentID string, now time.Time) (*model.ExamSubmission, error) {
	submission := &model.ExamSubmission{
		ID:        uuid.NewString(),
		ExamID:    exam.ID,
		StudentID: studentID,
		StartTime: now,
		Status:    model.SubmissionStatusOngoing,
	}
	answers := make([]model.ExamAnswer, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		answers = append(answers, model.ExamAnswer{
			ID:         uuid.NewString(),
			QuestionID: q.ID,
		})
	}

	err := s.subRepo.CreateWithAnswers(submission, answers)
	if err == nil {
		submission.Answers = answers
		return submission, nil
	}
	if errors.Is(err, repository.ErrDuplicateSubmission) {
		// A concurrent start won the insert. Reuse its submission.
		log.Info().Str("examID", exam.ID).Str("studentID", studentID).Msg("StartExam: lost creation race, reusing existing submission")
		return s.subRepo.FindByExamAndStudentWithAnswers(exam.ID, studentID)
	}
	return nil, err
}

func (s *examService) buildSession(exam *model.Exam, submission *model.ExamSubmission, remaining int) *dto.ExamSessionResponse {
	answersByQuestion := make(map[string]*model.ExamAnswer, len(submission.Answers))
	for i := range submission.Answers {
		answersByQuestion[submission.Answers[i].QuestionID] = &submission.Answers[i]
	}

	questions := make([]dto.ExamSessionQuestion, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		item := dto.ExamSessionQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Content: q.Content,
			Options: decodeOptions(q.Options),
			Score:   q.Score,
			Order:   q.Order,
		}
		if answer, ok := answersByQuestion[q.ID]; ok {
			item.AnswerID = answer.ID
			item.UserAnswer = answer.Answer
		}
		questions = append(questions, item)
	}

	return &dto.ExamSessionResponse{
		ExamID:           exam.ID,
		Title:            exam.Title,
		Description:      exam.Description,
		SubmissionID:     submission.ID,
		Status:           submission.Status,
		StartTime:        submission.StartTime,
		Deadline:         submissionDeadline(exam, submission),
		Duration:         exam.Duration,
		RemainingSeconds: remaining,
		Questions:        questions,
	}
}

// SaveAnswer overwrites the answer text of one answer row. Score and
// correctness are grading concerns and are never touched here.
func (s *examService) SaveAnswer(studentID, answerID string, answer *string) (*dto.SaveAnswerResponse, error) {
	examAnswer, err := s.subRepo.FindAnswerWithSubmission(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("answer not found")
		}
		return nil, err
	}

	if examAnswer.Submission.StudentID != studentID {
		return nil, apperr.Forbidden("you cannot modify this answer")
	}
	if examAnswer.Submission.Status != model.SubmissionStatusOngoing {
		return nil, apperr.ExamClosed("the exam is closed, answers can no longer be changed")
	}

	if err := s.subRepo.UpdateAnswerText(answerID, answer); err != nil {
		log.Error().Err(err).Str("answerID", answerID).Msg("SaveAnswer: failed to update answer")
		return nil, err
	}
	return &dto.SaveAnswerResponse{ID: answerID, Answer: answer}, nil
}

func (s *examService) SubmitExam(studentID, examID string) (*dto.SubmitExamResponse, error) {
	submission, err := s.subRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("exam submission not found")
		}
		return nil, err
	}

	if submission.Status != model.SubmissionStatusOngoing {
		return nil, apperr.AlreadySubmitted("the exam has already been submitted")
	}

	now := s.now()
	submission.Status = model.SubmissionStatusSubmitted
	submission.SubmitTime = &now
	if err := s.subRepo.Update(submission); err != nil {
		log.Error().Err(err).Str("submissionID", submission.ID).Msg("SubmitExam: failed to update submission")
		return nil, err
	}

	return &dto.SubmitExamResponse{
		ID:         submission.ID,
		ExamID:     examID,
		Status:     submission.Status,
		SubmitTime: submission.SubmitTime,
	}, nil
}

func (s *examService) findSubmission(examID, studentID string) (*model.ExamSubmission, error) {
	submission, err := s.subRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return submission, nil
}

func decodeOptions(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		log.Warn().Err(err).Msg("decodeOptions: malformed options JSON")
		return nil
	}
	return options
}

func encodeOptions(options []string) datatypes.JSON {
	if len(options) == 0 {
		return nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
