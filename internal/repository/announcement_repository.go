package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	FindByID(id string) (*model.Announcement, error)
	FindAllByCourse(courseID string) ([]model.Announcement, error)
	FindAllByCourseIDs(courseIDs []string) ([]model.Announcement, error)
	Delete(id string) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	return r.db.Create(announcement).Error
}

func (r *announcementRepository) FindByID(id string) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := r.db.Preload("Creator").First(&announcement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) FindAllByCourse(courseID string) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.Preload("Creator").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) FindAllByCourseIDs(courseIDs []string) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.Preload("Creator").Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepository) Delete(id string) error {
	return r.db.Delete(&model.Announcement{}, "id = ?", id).Error
}
