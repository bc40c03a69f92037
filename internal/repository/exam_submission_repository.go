package repository

import (
	"errors"

	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateSubmission is returned when the (exam_id, student_id) unique
// index rejects a second submission row. Callers recover by re-fetching the
// winner; the error never reaches a user.
var ErrDuplicateSubmission = errors.New("submission already exists for this exam and student")

type ExamSubmissionRepository interface {
	// CreateWithAnswers inserts the submission and one blank answer per
	// question atomically. Either all rows exist afterwards or none do.
	CreateWithAnswers(submission *model.ExamSubmission, answers []model.ExamAnswer) error
	FindByExamAndStudent(examID, studentID string) (*model.ExamSubmission, error)
	FindByExamAndStudentWithAnswers(examID, studentID string) (*model.ExamSubmission, error)
	FindByIDWithAnswers(id string) (*model.ExamSubmission, error)
	FindAllByExam(examID string) ([]model.ExamSubmission, error)
	Update(submission *model.ExamSubmission) error

	FindAnswerWithSubmission(answerID string) (*model.ExamAnswer, error)
	UpdateAnswerText(answerID string, answer *string) error
	UpdateAnswerGrade(answerID string, score float64, isCorrect *bool) error
}

type examSubmissionRepository struct {
	db *gorm.DB
}

func NewExamSubmissionRepository(db *gorm.DB) ExamSubmissionRepository {
	return &examSubmissionRepository{db: db}
}

func (r *examSubmissionRepository) CreateWithAnswers(submission *model.ExamSubmission, answers []model.ExamAnswer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].SubmissionID = submission.ID
		}
		return tx.Create(&answers).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSubmission
	}
	return err
}

func (r *examSubmissionRepository) FindByExamAndStudent(examID, studentID string) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := r.db.
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *examSubmissionRepository) FindByExamAndStudentWithAnswers(examID, studentID string) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := r.db.
		Preload("Answers.Question").
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *examSubmissionRepository) FindByIDWithAnswers(id string) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := r.db.
		Preload("Answers.Question").
		Preload("Student").
		First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *examSubmissionRepository) FindAllByExam(examID string) ([]model.ExamSubmission, error) {
	var submissions []model.ExamSubmission
	err := r.db.
		Preload("Student").
		Where("exam_id = ?", examID).
		Order("start_time ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *examSubmissionRepository) Update(submission *model.ExamSubmission) error {
	return r.db.Model(&model.ExamSubmission{}).
		Where("id = ?", submission.ID).
		Updates(map[string]interface{}{
			"status":      submission.Status,
			"submit_time": submission.SubmitTime,
			"total_score": submission.TotalScore,
		}).Error
}

func (r *examSubmissionRepository) FindAnswerWithSubmission(answerID string) (*model.ExamAnswer, error) {
	var answer model.ExamAnswer
	err := r.db.
		Preload("Submission").
		First(&answer, "id = ?", answerID).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *examSubmissionRepository) UpdateAnswerText(answerID string, answer *string) error {
	// Only the answer column; score and is_correct belong to grading.
	return r.db.Model(&model.ExamAnswer{}).
		Where("id = ?", answerID).
		Update("answer", answer).Error
}

func (r *examSubmissionRepository) UpdateAnswerGrade(answerID string, score float64, isCorrect *bool) error {
	return r.db.Model(&model.ExamAnswer{}).
		Where("id = ?", answerID).
		Updates(map[string]interface{}{"score": score, "is_correct": isCorrect}).Error
}
