package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(resource *model.Resource) error
	FindByID(id string) (*model.Resource, error)
	FindAllByCourse(courseID string) ([]model.Resource, error)
	Delete(id string) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *model.Resource) error {
	return r.db.Create(resource).Error
}

func (r *resourceRepository) FindByID(id string) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.Preload("Uploader").First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) FindAllByCourse(courseID string) ([]model.Resource, error) {
	var resources []model.Resource
	err := r.db.Preload("Uploader").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Delete(id string) error {
	return r.db.Delete(&model.Resource{}, "id = ?", id).Error
}
