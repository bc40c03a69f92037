package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id string) (*model.Assignment, error)
	FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Assignment, int64, error)
	Delete(id string) error

	CreateSubmission(submission *model.AssignmentSubmission) error
	UpdateSubmission(submission *model.AssignmentSubmission) error
	FindSubmission(assignmentID, studentID string) (*model.AssignmentSubmission, error)
	FindSubmissionByID(id string) (*model.AssignmentSubmission, error)
	FindSubmissionsByAssignment(assignmentID string) ([]model.AssignmentSubmission, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.Preload("Course").First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Assignment, int64, error) {
	var assignments []model.Assignment
	var total int64

	query := r.db.Model(&model.Assignment{}).Where("course_id IN ?", courseIDs)
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Course").
		Order("due_date DESC").
		Limit(limit).Offset(offset).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

func (r *assignmentRepository) Delete(id string) error {
	return r.db.Delete(&model.Assignment{}, "id = ?", id).Error
}

func (r *assignmentRepository) CreateSubmission(submission *model.AssignmentSubmission) error {
	return r.db.Create(submission).Error
}

func (r *assignmentRepository) UpdateSubmission(submission *model.AssignmentSubmission) error {
	return r.db.Save(submission).Error
}

func (r *assignmentRepository) FindSubmission(assignmentID, studentID string) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.db.
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepository) FindSubmissionByID(id string) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	if err := r.db.Preload("Assignment").First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepository) FindSubmissionsByAssignment(assignmentID string) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.db.
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
