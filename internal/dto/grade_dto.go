package dto

// GradeComponent is one channel of the fixed grade composition.
type GradeComponent struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Percentage int     `json:"percentage"`
}

type CourseGradeResponse struct {
	CourseID    string           `json:"course_id"`
	CourseName  string           `json:"course_name,omitempty"`
	TeacherName string           `json:"teacher_name,omitempty"`
	Composition []GradeComponent `json:"composition"`
	FinalScore  float64          `json:"final_score"`
	Comment     *string          `json:"comment,omitempty"`
}

type GradeDetailItem struct {
	CourseID    string           `json:"course_id"`
	CourseName  string           `json:"course_name,omitempty"`
	Semester    string           `json:"semester"`
	Composition []GradeComponent `json:"composition"`
	FinalScore  float64          `json:"final_score"`
}

type GradeOverviewResponse struct {
	AverageScore float64 `json:"average_score"`
	HighestScore float64 `json:"highest_score"`
	LowestScore  float64 `json:"lowest_score"`
	TotalCourses int     `json:"total_courses"`
}

type GradeUpsertRequest struct {
	StudentID  string   `json:"student_id" binding:"required,uuid"`
	CourseID   string   `json:"course_id" binding:"required,uuid"`
	Semester   string   `json:"semester" binding:"required"`
	ClassScore *float64 `json:"class_score"`
	RainScore  *float64 `json:"rain_score"`
	ExamScore  *float64 `json:"exam_score"`
	TotalScore *float64 `json:"total_score"`
	Comment    *string  `json:"comment"`
}
