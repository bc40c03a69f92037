package teacher

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/classhub/internal/controller"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/service"
	"github.com/rs/zerolog/log"
)

// TeacherController serves course administration: course CRUD, enrollment,
// exam authoring and grading, assignments, announcements, resources, grades.
type TeacherController struct {
	courseSvc       service.CourseService
	examAdminSvc    service.ExamAdminService
	assignmentSvc   service.AssignmentService
	gradeSvc        service.GradeService
	announcementSvc service.AnnouncementService
	resourceSvc     service.ResourceService
}

func NewTeacherController(
	courseSvc service.CourseService,
	examAdminSvc service.ExamAdminService,
	assignmentSvc service.AssignmentService,
	gradeSvc service.GradeService,
	announcementSvc service.AnnouncementService,
	resourceSvc service.ResourceService,
) *TeacherController {
	return &TeacherController{
		courseSvc:       courseSvc,
		examAdminSvc:    examAdminSvc,
		assignmentSvc:   assignmentSvc,
		gradeSvc:        gradeSvc,
		announcementSvc: announcementSvc,
		resourceSvc:     resourceSvc,
	}
}

// --- Courses ---

// CreateCourse godoc
// @Summary Create a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CourseCreateRequest true "Course data"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /teacher/courses [post]
func (ctrl *TeacherController) CreateCourse(c *gin.Context) {
	var req dto.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CourseCreateRequest")
		controller.BindError(c, err)
		return
	}

	course, err := ctrl.courseSvc.CreateCourse(controller.UserID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary List own courses
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseResponse
// @Router /teacher/courses [get]
func (ctrl *TeacherController) ListCourses(c *gin.Context) {
	courses, err := ctrl.courseSvc.ListTeacherCourses(controller.UserID(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Param course body dto.CourseUpdateRequest true "Fields to update"
// @Success 200 {object} dto.CourseResponse
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id} [put]
func (ctrl *TeacherController) UpdateCourse(c *gin.Context) {
	var req dto.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	course, err := ctrl.courseSvc.UpdateCourse(controller.UserID(c), c.Param("course_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags teacher
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id} [delete]
func (ctrl *TeacherController) DeleteCourse(c *gin.Context) {
	if err := ctrl.courseSvc.DeleteCourse(controller.UserID(c), c.Param("course_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EnrollStudent godoc
// @Summary Enroll a student in a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Param enrollment body dto.EnrollRequest true "Student to enroll"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /teacher/courses/{course_id}/students [post]
func (ctrl *TeacherController) EnrollStudent(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	if err := ctrl.courseSvc.EnrollStudent(controller.UserID(c), c.Param("course_id"), req.StudentID); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnenrollStudent godoc
// @Summary Remove a student from a course
// @Tags teacher
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Param student_id path string true "Student ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/students/{student_id} [delete]
func (ctrl *TeacherController) UnenrollStudent(c *gin.Context) {
	if err := ctrl.courseSvc.UnenrollStudent(controller.UserID(c), c.Param("course_id"), c.Param("student_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStudents godoc
// @Summary List students of a course
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/students [get]
func (ctrl *TeacherController) ListStudents(c *gin.Context) {
	students, err := ctrl.courseSvc.ListStudents(c.Param("course_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// --- Exams ---

// CreateExam godoc
// @Summary Create an exam with its questions
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body dto.ExamCreateRequest true "Exam data including questions"
// @Success 201 {object} dto.ExamSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid window, duplicate order or missing options"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/exams [post]
func (ctrl *TeacherController) CreateExam(c *gin.Context) {
	var req dto.ExamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ExamCreateRequest")
		controller.BindError(c, err)
		return
	}

	exam, err := ctrl.examAdminSvc.CreateExam(controller.UserID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exam)
}

// ListExamSubmissions godoc
// @Summary List submissions of an exam
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param exam_id path string true "Exam ID"
// @Success 200 {array} dto.SubmissionSummary
// @Failure 403 {object} dto.ErrorResponse "Not the exam owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /teacher/exams/{exam_id}/submissions [get]
func (ctrl *TeacherController) ListExamSubmissions(c *gin.Context) {
	summaries, err := ctrl.examAdminSvc.ListSubmissions(controller.UserID(c), c.Param("exam_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetExamSubmission godoc
// @Summary Get one submission with answers and correct answers
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param submission_id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailResponse
// @Failure 403 {object} dto.ErrorResponse "Not the exam owner"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /teacher/submissions/{submission_id} [get]
func (ctrl *TeacherController) GetExamSubmission(c *gin.Context) {
	detail, err := ctrl.examAdminSvc.GetSubmission(controller.UserID(c), c.Param("submission_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GradeExamAnswer godoc
// @Summary Score one answer of a handed-in submission
// @Tags teacher
// @Accept json
// @Security BearerAuth
// @Param answer_id path string true "Answer ID"
// @Param grade body dto.GradeAnswerRequest true "Score and optional correctness flag"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Submission still ongoing"
// @Failure 403 {object} dto.ErrorResponse "Not the exam owner"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /teacher/answers/{answer_id}/grade [put]
func (ctrl *TeacherController) GradeExamAnswer(c *gin.Context) {
	var req dto.GradeAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	if err := ctrl.examAdminSvc.GradeAnswer(controller.UserID(c), c.Param("answer_id"), req); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FinalizeExamGrading godoc
// @Summary Finalize grading of a submission
// @Description Sums per-answer scores into the total and moves the submission to graded.
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param submission_id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Submission still ongoing"
// @Failure 403 {object} dto.ErrorResponse "Not the exam owner"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /teacher/submissions/{submission_id}/finalize [post]
func (ctrl *TeacherController) FinalizeExamGrading(c *gin.Context) {
	detail, err := ctrl.examAdminSvc.FinalizeGrading(controller.UserID(c), c.Param("submission_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// --- Assignments ---

// CreateAssignment godoc
// @Summary Create an assignment
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.AssignmentCreateRequest true "Assignment data"
// @Success 201 {object} dto.AssignmentListItem
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/assignments [post]
func (ctrl *TeacherController) CreateAssignment(c *gin.Context) {
	var req dto.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	item, err := ctrl.assignmentSvc.CreateAssignment(controller.UserID(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListAssignmentSubmissions godoc
// @Summary List submissions of an assignment
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {array} dto.AssignmentSubmissionResponse
// @Failure 403 {object} dto.ErrorResponse "Not the assignment owner"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /teacher/assignments/{assignment_id}/submissions [get]
func (ctrl *TeacherController) ListAssignmentSubmissions(c *gin.Context) {
	submissions, err := ctrl.assignmentSvc.ListSubmissions(controller.UserID(c), c.Param("assignment_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// GradeAssignmentSubmission godoc
// @Summary Grade an assignment submission
// @Tags teacher
// @Accept json
// @Security BearerAuth
// @Param submission_id path string true "Submission ID"
// @Param grade body dto.AssignmentGradeRequest true "Score and feedback"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the assignment owner"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /teacher/assignment-submissions/{submission_id}/grade [put]
func (ctrl *TeacherController) GradeAssignmentSubmission(c *gin.Context) {
	var req dto.AssignmentGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	if err := ctrl.assignmentSvc.GradeSubmission(controller.UserID(c), c.Param("submission_id"), req); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Grades ---

// UpsertGrade godoc
// @Summary Enter or update a course grade
// @Description One grade row per student, course and semester. The total score is stored as given, never recomputed.
// @Tags teacher
// @Accept json
// @Security BearerAuth
// @Param grade body dto.GradeUpsertRequest true "Grade data"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner or student not enrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/grades [put]
func (ctrl *TeacherController) UpsertGrade(c *gin.Context) {
	var req dto.GradeUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	if err := ctrl.gradeSvc.UpsertGrade(controller.UserID(c), req); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Announcements ---

// CreateAnnouncement godoc
// @Summary Post an announcement to a course
// @Description Also fans out a notification to every enrolled student.
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Param announcement body dto.AnnouncementCreateRequest true "Announcement data"
// @Success 201 {object} dto.AnnouncementResponse
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/announcements [post]
func (ctrl *TeacherController) CreateAnnouncement(c *gin.Context) {
	var req dto.AnnouncementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	announcement, err := ctrl.announcementSvc.CreateAnnouncement(controller.UserID(c), c.Param("course_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

// ListCourseAnnouncements godoc
// @Summary List announcements of a course
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.AnnouncementResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/announcements [get]
func (ctrl *TeacherController) ListCourseAnnouncements(c *gin.Context) {
	items, err := ctrl.announcementSvc.ListCourseAnnouncements(c.Param("course_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags teacher
// @Security BearerAuth
// @Param announcement_id path string true "Announcement ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /teacher/announcements/{announcement_id} [delete]
func (ctrl *TeacherController) DeleteAnnouncement(c *gin.Context) {
	if err := ctrl.announcementSvc.DeleteAnnouncement(controller.UserID(c), c.Param("announcement_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Resources ---

// AddResource godoc
// @Summary Attach a resource to a course
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Param resource body dto.ResourceCreateRequest true "Resource metadata"
// @Success 201 {object} dto.ResourceResponse
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/resources [post]
func (ctrl *TeacherController) AddResource(c *gin.Context) {
	var req dto.ResourceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.BindError(c, err)
		return
	}

	resource, err := ctrl.resourceSvc.AddResource(controller.UserID(c), c.Param("course_id"), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// ListCourseResources godoc
// @Summary List resources of an owned course
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.ResourceResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /teacher/courses/{course_id}/resources [get]
func (ctrl *TeacherController) ListCourseResources(c *gin.Context) {
	items, err := ctrl.resourceSvc.ListCourseResources(controller.UserID(c), controller.Role(c), c.Param("course_id"))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteResource godoc
// @Summary Delete a resource
// @Tags teacher
// @Security BearerAuth
// @Param resource_id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /teacher/resources/{resource_id} [delete]
func (ctrl *TeacherController) DeleteResource(c *gin.Context) {
	if err := ctrl.resourceSvc.DeleteResource(controller.UserID(c), c.Param("resource_id")); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
