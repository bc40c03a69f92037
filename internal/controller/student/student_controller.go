package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/classhub/internal/controller"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/service"
	"github.com/rs/zerolog/log"
)

// StudentController serves the student-facing surface: courses, exams,
// assignments, grades and the announcement feed.
type StudentController struct {
	courseSvc       service.CourseService
	examSvc         service.ExamService
	assignmentSvc   service.AssignmentService
	gradeSvc        service.GradeService
	announcementSvc service.AnnouncementService
	resourceSvc     service.ResourceService
}

func NewStudentController(
	courseSvc service.CourseService,
	examSvc service.ExamService,
	assignmentSvc service.AssignmentService,
	gradeSvc service.GradeService,
	announcementSvc service.AnnouncementService,
	resourceSvc service.ResourceService,
) *StudentController {
	return &StudentController{
		courseSvc:       courseSvc,
		examSvc:         examSvc,
		assignmentSvc:   assignmentSvc,
		gradeSvc:        gradeSvc,
		announcementSvc: announcementSvc,
		resourceSvc:     resourceSvc,
	}
}

// ListCourses godoc
// @Summary List enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseResponse
// @Router /student/courses [get]
func (ctrl *StudentController) ListCourses(c *gin.Context) {
	courses, err := ctrl.courseSvc.ListStudentCourses(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// ListExams godoc
// @Summary List exams across enrolled courses
// @Description Each row carries the status derived for this student right now.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param course_id query string false "Filter by course"
// @Param status query string false "Filter by derived status" Enums(not_started, ongoing, ended)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PagedResponse
// @Router /student/exams [get]
func (ctrl *StudentController) ListExams(c *gin.Context) {
	page, limit := controller.Pagination(c)
	resp, err := ctrl.examSvc.ListExams(controller.UserID(c), c.Query("course_id"), c.Query("status"), page, limit)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartExam godoc
// @Summary Start or resume an exam session
// @Description Idempotent. The first call creates the submission with blank answers; later calls return the same session with the remaining time.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.ExamSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Exam has not started or has ended"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /student/exams/{exam_id}/session [post]
func (ctrl *StudentController) StartExam(c *gin.Context) {
	session, err := ctrl.examSvc.StartExam(controller.UserID(c), c.Param("exam_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SaveAnswer godoc
// @Summary Save an answer during an ongoing exam
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param answer_id path string true "Answer ID"
// @Param answer body dto.SaveAnswerRequest true "Answer text, null clears it"
// @Success 200 {object} dto.SaveAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Submission is no longer ongoing"
// @Failure 403 {object} dto.ErrorResponse "Answer belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /student/answers/{answer_id} [put]
func (ctrl *StudentController) SaveAnswer(c *gin.Context) {
	var req dto.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveAnswerRequest")
		controller.BindError(c, err)
		return
	}

	resp, err := ctrl.examSvc.SaveAnswer(controller.UserID(c), c.Param("answer_id"), req.Answer)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitExam godoc
// @Summary Hand in an ongoing exam
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.SubmitExamResponse
// @Failure 400 {object} dto.ErrorResponse "Already submitted"
// @Failure 404 {object} dto.ErrorResponse "No session for this exam"
// @Router /student/exams/{exam_id}/submit [post]
func (ctrl *StudentController) SubmitExam(c *gin.Context) {
	resp, err := ctrl.examSvc.SubmitExam(controller.UserID(c), c.Param("exam_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAssignments godoc
// @Summary List assignments across enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param course_id query string false "Filter by course"
// @Param status query string false "Filter by derived status" Enums(pending, submitted, graded, overdue)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PagedResponse
// @Router /student/assignments [get]
func (ctrl *StudentController) ListAssignments(c *gin.Context) {
	page, limit := controller.Pagination(c)
	resp, err := ctrl.assignmentSvc.ListAssignments(controller.UserID(c), c.Query("course_id"), c.Query("status"), page, limit)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitAssignment godoc
// @Summary Submit or resubmit an assignment
// @Description Resubmitting before the deadline overwrites the previous submission. Graded submissions are locked.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Param submission body dto.AssignmentSubmitRequest true "Submission content"
// @Success 200 {object} dto.AssignmentSubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Deadline has passed or submission is graded"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /student/assignments/{assignment_id}/submission [put]
func (ctrl *StudentController) SubmitAssignment(c *gin.Context) {
	var req dto.AssignmentSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	resp, err := ctrl.assignmentSvc.SubmitAssignment(controller.UserID(c), c.Param("assignment_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAssignmentSubmission godoc
// @Summary Get own submission for an assignment
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentSubmissionResponse
// @Failure 404 {object} dto.ErrorResponse "No submission yet"
// @Router /student/assignments/{assignment_id}/submission [get]
func (ctrl *StudentController) GetAssignmentSubmission(c *gin.Context) {
	resp, err := ctrl.assignmentSvc.GetOwnSubmission(controller.UserID(c), c.Param("assignment_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCourseGrade godoc
// @Summary Get the grade breakdown for one course
// @Description A course without a grade row returns an all-zero composition, which is a valid state.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 200 {object} dto.CourseGradeResponse
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /student/courses/{course_id}/grade [get]
func (ctrl *StudentController) GetCourseGrade(c *gin.Context) {
	resp, err := ctrl.gradeSvc.GetCourseGrade(controller.UserID(c), c.Param("course_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetGradeOverview godoc
// @Summary Get the aggregate grade overview
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.GradeOverviewResponse
// @Router /student/grades/overview [get]
func (ctrl *StudentController) GetGradeOverview(c *gin.Context) {
	resp, err := ctrl.gradeSvc.GetOverview(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListGrades godoc
// @Summary List per-course grades
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param semester query string false "Filter by semester"
// @Success 200 {array} dto.GradeDetailItem
// @Router /student/grades [get]
func (ctrl *StudentController) ListGrades(c *gin.Context) {
	items, err := ctrl.gradeSvc.ListGrades(controller.UserID(c), c.Query("semester"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AnnouncementFeed godoc
// @Summary Announcement feed across enrolled courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AnnouncementResponse
// @Router /student/announcements [get]
func (ctrl *StudentController) AnnouncementFeed(c *gin.Context) {
	items, err := ctrl.announcementSvc.ListFeed(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListCourseResources godoc
// @Summary List resources of an enrolled course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.ResourceResponse
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /student/courses/{course_id}/resources [get]
func (ctrl *StudentController) ListCourseResources(c *gin.Context) {
	items, err := ctrl.resourceSvc.ListCourseResources(controller.UserID(c), controller.Role(c), c.Param("course_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
