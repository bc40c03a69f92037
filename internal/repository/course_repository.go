package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	Update(course *model.Course) error
	Delete(id string) error
	FindByID(id string) (*model.Course, error)
	FindByIDWithTeacher(id string) (*model.Course, error)
	FindAllByTeacher(teacherID string) ([]model.Course, error)
	FindAllForStudent(studentID string) ([]model.Course, error)

	Enroll(enrollment *model.CourseStudent) error
	Unenroll(courseID, studentID string) error
	IsStudentEnrolled(courseID, studentID string) (bool, error)
	EnrolledCourseIDs(studentID string) ([]string, error)
	FindStudents(courseID string) ([]model.User, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id string) error {
	return r.db.Delete(&model.Course{}, "id = ?", id).Error
}

func (r *courseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithTeacher(id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Teacher").First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAllByTeacher(teacherID string) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindAllForStudent(studentID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.student_id = ?", studentID).
		Preload("Teacher").
		Order("courses.created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Enroll(enrollment *model.CourseStudent) error {
	return r.db.Create(enrollment).Error
}

func (r *courseRepository) Unenroll(courseID, studentID string) error {
	return r.db.
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&model.CourseStudent{}).Error
}

func (r *courseRepository) IsStudentEnrolled(courseID, studentID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CourseStudent{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepository) EnrolledCourseIDs(studentID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.CourseStudent{}).
		Where("student_id = ?", studentID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *courseRepository) FindStudents(courseID string) ([]model.User, error) {
	var students []model.User
	err := r.db.
		Joins("JOIN course_students ON course_students.student_id = users.id").
		Where("course_students.course_id = ?", courseID).
		Order("users.name ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}
