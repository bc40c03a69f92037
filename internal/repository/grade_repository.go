package repository

import (
	"errors"

	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

var ErrDuplicateGrade = errors.New("grade already exists for this student, course and semester")

type GradeRepository interface {
	Create(grade *model.Grade) error
	Update(grade *model.Grade) error
	FindByStudentAndCourse(studentID, courseID string) (*model.Grade, error)
	FindByStudentCourseSemester(studentID, courseID, semester string) (*model.Grade, error)
	FindAllByStudent(studentID, semester string) ([]model.Grade, error)
}

type gradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(grade *model.Grade) error {
	err := r.db.Create(grade).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateGrade
	}
	return err
}

func (r *gradeRepository) Update(grade *model.Grade) error {
	return r.db.Save(grade).Error
}

func (r *gradeRepository) FindByStudentAndCourse(studentID, courseID string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.
		Preload("Course.Teacher").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("semester DESC").
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindByStudentCourseSemester(studentID, courseID, semester string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.
		Where("student_id = ? AND course_id = ? AND semester = ?", studentID, courseID, semester).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindAllByStudent(studentID, semester string) ([]model.Grade, error) {
	var grades []model.Grade
	query := r.db.Preload("Course").Where("student_id = ?", studentID)
	if semester != "" {
		query = query.Where("semester = ?", semester)
	}
	if err := query.Order("semester DESC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}
