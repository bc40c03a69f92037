package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	// CreateWithQuestions persists the exam and its questions in one
	// transaction so a half-created exam is never visible.
	CreateWithQuestions(exam *model.Exam) error
	FindByID(id string) (*model.Exam, error)
	FindByIDWithQuestions(id string) (*model.Exam, error)
	FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Exam, int64, error)
	FindAllByTeacher(teacherID string) ([]model.Exam, error)
	FindQuestionsByExamID(examID string) ([]model.ExamQuestion, error)
	Delete(id string) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) CreateWithQuestions(exam *model.Exam) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(exam).Error
	})
}

func (r *examRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.Preload("Course").First(&exam, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("exam_questions.display_order ASC")
	}).Preload("Course").First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.db.Model(&model.Exam{}).Where("course_id IN ?", courseIDs)
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Course").
		Order("start_time DESC").
		Limit(limit).Offset(offset).
		Find(&exams).Error
	if err != nil {
		return nil, 0, err
	}
	return exams, total, nil
}

func (r *examRepository) FindAllByTeacher(teacherID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("teacher_id = ?", teacherID).
		Preload("Course").
		Order("start_time DESC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindQuestionsByExamID(examID string) ([]model.ExamQuestion, error) {
	var questions []model.ExamQuestion
	err := r.db.Where("exam_id = ?", examID).
		Order("display_order ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *examRepository) Delete(id string) error {
	return r.db.Delete(&model.Exam{}, "id = ?", id).Error
}
