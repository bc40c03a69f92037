package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	CreateAnnouncement(teacherID, courseID string, req dto.AnnouncementCreateRequest) (*dto.AnnouncementResponse, error)
	ListCourseAnnouncements(courseID string) ([]dto.AnnouncementResponse, error)
	ListFeed(studentID string) ([]dto.AnnouncementResponse, error)
	DeleteAnnouncement(teacherID, announcementID string) error
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	courseRepo       repository.CourseRepository
	notificationRepo repository.NotificationRepository
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	courseRepo repository.CourseRepository,
	notificationRepo repository.NotificationRepository,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		courseRepo:       courseRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *announcementService) CreateAnnouncement(teacherID, courseID string, req dto.AnnouncementCreateRequest) (*dto.AnnouncementResponse, error) {
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

	announcement := &model.Announcement{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		CreatorID: teacherID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("CreateAnnouncement: failed to create announcement")
		return nil, err
	}

	s.fanOut(course, announcement)

	return &dto.AnnouncementResponse{
		ID:        announcement.ID,
		CourseID:  announcement.CourseID,
		CreatorID: announcement.CreatorID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		CreatedAt: announcement.CreatedAt,
	}, nil
}

// fanOut creates one notification per enrolled student. Failures are
// logged and swallowed so the announcement itself still succeeds.
func (s *announcementService) fanOut(course *model.Course, announcement *model.Announcement) {
	students, err := s.courseRepo.FindStudents(course.ID)
	if err != nil {
		log.Error().Err(err).Str("courseID", course.ID).Msg("fanOut: failed to list students")
		return
	}
	for _, student := range students {
		notification := &model.Notification{
			ID:      uuid.NewString(),
			UserID:  student.ID,
			Type:    model.NotificationTypeAnnouncement,
			Title:   course.Title + ": " + announcement.Title,
			Content: announcement.Content,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			log.Error().Err(err).Str("studentID", student.ID).Msg("fanOut: failed to create notification")
		}
	}
}

func (s *announcementService) ListCourseAnnouncements(courseID string) ([]dto.AnnouncementResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}

	announcements, err := s.announcementRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return announcementsToResponses(announcements), nil
}

func (s *announcementService) ListFeed(studentID string) ([]dto.AnnouncementResponse, error) {
	courseIDs, err := s.courseRepo.EnrolledCourseIDs(studentID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []dto.AnnouncementResponse{}, nil
	}

	announcements, err := s.announcementRepo.FindAllByCourseIDs(courseIDs)
	if err != nil {
		return nil, err
	}
	return announcementsToResponses(announcements), nil
}

func (s *announcementService) DeleteAnnouncement(teacherID, announcementID string) error {
	announcement, err := s.announcementRepo.FindByID(announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("announcement not found")
		}
		return err
	}
	if announcement.CreatorID != teacherID {
		return apperr.Forbidden("you did not create this announcement")
	}
	return s.announcementRepo.Delete(announcementID)
}

func announcementsToResponses(announcements []model.Announcement) []dto.AnnouncementResponse {
	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, dto.AnnouncementResponse{
			ID:          a.ID,
			CourseID:    a.CourseID,
			CourseName:  a.Course.Title,
			CreatorID:   a.CreatorID,
			CreatorName: a.Creator.Name,
			Title:       a.Title,
			Content:     a.Content,
			CreatedAt:   a.CreatedAt,
		})
	}
	return responses
}
