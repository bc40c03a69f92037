package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minhanle/classhub/config"
	"github.com/minhanle/classhub/database"
	"github.com/minhanle/classhub/internal/auth"
	authctrl "github.com/minhanle/classhub/internal/controller/auth"
	studentctrl "github.com/minhanle/classhub/internal/controller/student"
	teacherctrl "github.com/minhanle/classhub/internal/controller/teacher"
	userctrl "github.com/minhanle/classhub/internal/controller/user"
	"github.com/minhanle/classhub/internal/logger"
	"github.com/minhanle/classhub/internal/middleware"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/minhanle/classhub/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ClassHub API
// @version 1.0
// @description Learning management backend: courses, timed exams, assignments, grades, announcements, messaging and an AI study assistant.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			auth.NewTokenManager,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewExamRepository,
			repository.NewExamSubmissionRepository,
			repository.NewGradeRepository,
			repository.NewAssignmentRepository,
			repository.NewAnnouncementRepository,
			repository.NewMessageRepository,
			repository.NewNotificationRepository,
			repository.NewResourceRepository,
			repository.NewAssistantRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewCourseService,
			service.NewExamService,
			service.NewExamAdminService,
			service.NewGradeService,
			service.NewAssignmentService,
			service.NewAnnouncementService,
			service.NewMessageService,
			service.NewNotificationService,
			service.NewResourceService,
			service.NewGeminiLLMService,
			service.NewAssistantService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			studentctrl.NewStudentController,
			teacherctrl.NewTeacherController,
			userctrl.NewUserController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the route tree and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens *auth.TokenManager,
	authController *authctrl.AuthController,
	studentController *studentctrl.StudentController,
	teacherController *teacherctrl.TeacherController,
	userController *userctrl.UserController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.GET("/profile", middleware.Authenticate(tokens), authController.Profile)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(tokens))
	{
		messages := authed.Group("/messages")
		messages.POST("", userController.SendMessage)
		messages.GET("/unread-count", userController.UnreadMessageCount)
		messages.GET("/:user_id", userController.GetConversation)

		notifications := authed.Group("/notifications")
		notifications.GET("", userController.ListNotifications)
		notifications.PUT("/read-all", userController.MarkAllNotificationsRead)
		notifications.PUT("/:notification_id/read", userController.MarkNotificationRead)

		assistant := authed.Group("/assistant/chats")
		assistant.POST("", userController.CreateChat)
		assistant.GET("", userController.ListChats)
		assistant.GET("/:chat_id", userController.GetChat)
		assistant.DELETE("/:chat_id", userController.DeleteChat)
		assistant.POST("/:chat_id/messages", userController.SendChatMessage)
	}

	student := api.Group("/student")
	student.Use(middleware.Authenticate(tokens), middleware.RequireRole(model.RoleStudent))
	{
		student.GET("/courses", studentController.ListCourses)
		student.GET("/courses/:course_id/grade", studentController.GetCourseGrade)
		student.GET("/courses/:course_id/resources", studentController.ListCourseResources)

		student.GET("/exams", studentController.ListExams)
		student.POST("/exams/:exam_id/session", studentController.StartExam)
		student.POST("/exams/:exam_id/submit", studentController.SubmitExam)
		student.PUT("/answers/:answer_id", studentController.SaveAnswer)

		student.GET("/assignments", studentController.ListAssignments)
		student.PUT("/assignments/:assignment_id/submission", studentController.SubmitAssignment)
		student.GET("/assignments/:assignment_id/submission", studentController.GetAssignmentSubmission)

		student.GET("/grades", studentController.ListGrades)
		student.GET("/grades/overview", studentController.GetGradeOverview)

		student.GET("/announcements", studentController.AnnouncementFeed)
	}

	teacher := api.Group("/teacher")
	teacher.Use(middleware.Authenticate(tokens), middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	{
		teacher.POST("/courses", teacherController.CreateCourse)
		teacher.GET("/courses", teacherController.ListCourses)
		teacher.PUT("/courses/:course_id", teacherController.UpdateCourse)
		teacher.DELETE("/courses/:course_id", teacherController.DeleteCourse)
		teacher.GET("/courses/:course_id/students", teacherController.ListStudents)
		teacher.POST("/courses/:course_id/students", teacherController.EnrollStudent)
		teacher.DELETE("/courses/:course_id/students/:student_id", teacherController.UnenrollStudent)

		teacher.POST("/exams", teacherController.CreateExam)
		teacher.GET("/exams/:exam_id/submissions", teacherController.ListExamSubmissions)
		teacher.GET("/submissions/:submission_id", teacherController.GetExamSubmission)
		teacher.POST("/submissions/:submission_id/finalize", teacherController.FinalizeExamGrading)
		teacher.PUT("/answers/:answer_id/grade", teacherController.GradeExamAnswer)

		teacher.POST("/assignments", teacherController.CreateAssignment)
		teacher.GET("/assignments/:assignment_id/submissions", teacherController.ListAssignmentSubmissions)
		teacher.PUT("/assignment-submissions/:submission_id/grade", teacherController.GradeAssignmentSubmission)

		teacher.PUT("/grades", teacherController.UpsertGrade)

		teacher.POST("/courses/:course_id/announcements", teacherController.CreateAnnouncement)
		teacher.GET("/courses/:course_id/announcements", teacherController.ListCourseAnnouncements)
		teacher.DELETE("/announcements/:announcement_id", teacherController.DeleteAnnouncement)

		teacher.POST("/courses/:course_id/resources", teacherController.AddResource)
		teacher.GET("/courses/:course_id/resources", teacherController.ListCourseResources)
		teacher.DELETE("/resources/:resource_id", teacherController.DeleteResource)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ClassHub API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseStudent{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamSubmission{},
		&model.ExamAnswer{},
		&model.Grade{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Announcement{},
		&model.Message{},
		&model.Notification{},
		&model.Resource{},
		&model.AssistantChat{},
		&model.AssistantMessage{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
