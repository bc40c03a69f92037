package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"gorm.io/gorm"
)

type ResourceService interface {
	AddResource(teacherID, courseID string, req dto.ResourceCreateRequest) (*dto.ResourceResponse, error)
	ListCourseResources(userID, role, courseID string) ([]dto.ResourceResponse, error)
	DeleteResource(teacherID, resourceID string) error
}

type resourceService struct {
	resourceRepo repository.ResourceRepository
	courseRepo   repository.CourseRepository
}

func NewResourceService(resourceRepo repository.ResourceRepository, courseRepo repository.CourseRepository) ResourceService {
	return &resourceService{resourceRepo: resourceRepo, courseRepo: courseRepo}
}

func (s *resourceService) AddResource(teacherID, courseID string, req dto.ResourceCreateRequest) (*dto.ResourceResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, apperr.Forbidden("you do not own this course")
	}

	resource := &model.Resource{
		ID:         uuid.NewString(),
		CourseID:   courseID,
		UploaderID: teacherID,
		Name:       req.Name,
		URL:        req.URL,
		MimeType:   req.MimeType,
		Size:       req.Size,
	}
	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, err
	}
	resp := resourceToResponse(resource)
	return &resp, nil
}

func (s *resourceService) ListCourseResources(userID, role, courseID string) ([]dto.ResourceResponse, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}

	// Students must be enrolled; the owning teacher always has access.
	if role == model.RoleStudent {
		enrolled, err := s.courseRepo.IsStudentEnrolled(courseID, userID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, apperr.NotEnrolled("you are not enrolled in this course")
		}
	} else if course.TeacherID != userID && role != model.RoleAdmin {
		return nil, apperr.Forbidden("you do not own this course")
	}

	resources, err := s.resourceRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		responses = append(responses, resourceToResponse(&resources[i]))
	}
	return responses, nil
}

func (s *resourceService) DeleteResource(teacherID, resourceID string) error {
	resource, err := s.resourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("resource not found")
		}
		return err
	}
	if resource.UploaderID != teacherID {
		return apperr.Forbidden("you did not upload this resource")
	}
	return s.resourceRepo.Delete(resourceID)
}

func resourceToResponse(resource *model.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:           resource.ID,
		CourseID:     resource.CourseID,
		UploaderID:   resource.UploaderID,
		UploaderName: resource.Uploader.Name,
		Name:         resource.Name,
		URL:          resource.URL,
		MimeType:     resource.MimeType,
		Size:         resource.Size,
		CreatedAt:    resource.CreatedAt,
	}
}
