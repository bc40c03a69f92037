package service

import (
	"testing"
	"time"

	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeExamRepo struct {
	exams map[string]*model.Exam
}

func newFakeExamRepo(exams ...*model.Exam) *fakeExamRepo {
	repo := &fakeExamRepo{exams: make(map[string]*model.Exam)}
	for _, exam := range exams {
		repo.exams[exam.ID] = exam
	}
	return repo
}

func (f *fakeExamRepo) CreateWithQuestions(exam *model.Exam) error {
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamRepo) FindByID(id string) (*model.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (f *fakeExamRepo) FindByIDWithQuestions(id string) (*model.Exam, error) {
	return f.FindByID(id)
}

func (f *fakeExamRepo) FindAllByCourseIDs(courseIDs []string, courseID string, limit, offset int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	for _, exam := range f.exams {
		for _, id := range courseIDs {
			if exam.CourseID == id && (courseID == "" || exam.CourseID == courseID) {
				exams = append(exams, *exam)
			}
		}
	}
	return exams, int64(len(exams)), nil
}

func (f *fakeExamRepo) FindAllByTeacher(teacherID string) ([]model.Exam, error) { return nil, nil }

func (f *fakeExamRepo) FindQuestionsByExamID(examID string) ([]model.ExamQuestion, error) {
	if exam, ok := f.exams[examID]; ok {
		return exam.Questions, nil
	}
	return nil, nil
}

func (f *fakeExamRepo) Delete(id string) error {
	delete(f.exams, id)
	return nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*model.ExamSubmission // keyed by examID + "/" + studentID
	answers     map[string]*model.ExamAnswer
	failCreates int // next N creates fail with ErrDuplicateSubmission
	hideFinds   int // next N lookups miss, to simulate a racing writer
	updateCount int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		submissions: make(map[string]*model.ExamSubmission),
		answers:     make(map[string]*model.ExamAnswer),
	}
}

func subKey(examID, studentID string) string { return examID + "/" + studentID }

func (f *fakeSubmissionRepo) put(sub *model.ExamSubmission) {
	f.submissions[subKey(sub.ExamID, sub.StudentID)] = sub
	for i := range sub.Answers {
		answer := &sub.Answers[i]
		answer.SubmissionID = sub.ID
		f.answers[answer.ID] = answer
	}
}

func (f *fakeSubmissionRepo) CreateWithAnswers(sub *model.ExamSubmission, answers []model.ExamAnswer) error {
	if f.failCreates > 0 {
		f.failCreates--
		return repository.ErrDuplicateSubmission
	}
	if _, exists := f.submissions[subKey(sub.ExamID, sub.StudentID)]; exists {
		return repository.ErrDuplicateSubmission
	}
	sub.Answers = answers
	f.put(sub)
	return nil
}

func (f *fakeSubmissionRepo) FindByExamAndStudent(examID, studentID string) (*model.ExamSubmission, error) {
	if f.hideFinds > 0 {
		f.hideFinds--
		return nil, gorm.ErrRecordNotFound
	}
	sub, ok := f.submissions[subKey(examID, studentID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionRepo) FindByExamAndStudentWithAnswers(examID, studentID string) (*model.ExamSubmission, error) {
	return f.FindByExamAndStudent(examID, studentID)
}

func (f *fakeSubmissionRepo) FindByIDWithAnswers(id string) (*model.ExamSubmission, error) {
	for _, sub := range f.submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) FindAllByExam(examID string) ([]model.ExamSubmission, error) {
	var subs []model.ExamSubmission
	for _, sub := range f.submissions {
		if sub.ExamID == examID {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

func (f *fakeSubmissionRepo) Update(sub *model.ExamSubmission) error {
	f.updateCount++
	f.submissions[subKey(sub.ExamID, sub.StudentID)] = sub
	return nil
}

func (f *fakeSubmissionRepo) FindAnswerWithSubmission(answerID string) (*model.ExamAnswer, error) {
	answer, ok := f.answers[answerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, sub := range f.submissions {
		if sub.ID == answer.SubmissionID {
			answer.Submission = *sub
		}
	}
	return answer, nil
}

func (f *fakeSubmissionRepo) UpdateAnswerText(answerID string, answer *string) error {
	f.answers[answerID].Answer = answer
	return nil
}

func (f *fakeSubmissionRepo) UpdateAnswerGrade(answerID string, score float64, isCorrect *bool) error {
	f.answers[answerID].Score = &score
	f.answers[answerID].IsCorrect = isCorrect
	return nil
}

type fakeCourseRepo struct {
	courses     map[string]*model.Course
	enrollments map[string]bool // courseID + "/" + studentID
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     make(map[string]*model.Course),
		enrollments: make(map[string]bool),
	}
}

func (f *fakeCourseRepo) enroll(courseID, studentID string) {
	f.enrollments[courseID+"/"+studentID] = true
}

func (f *fakeCourseRepo) Create(course *model.Course) error { f.courses[course.ID] = course; return nil }
func (f *fakeCourseRepo) Update(course *model.Course) error { f.courses[course.ID] = course; return nil }
func (f *fakeCourseRepo) Delete(id string) error            { delete(f.courses, id); return nil }

func (f *fakeCourseRepo) FindByID(id string) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeCourseRepo) FindByIDWithTeacher(id string) (*model.Course, error) {
	return f.FindByID(id)
}

func (f *fakeCourseRepo) FindAllByTeacher(string) ([]model.Course, error)  { return nil, nil }
func (f *fakeCourseRepo) FindAllForStudent(string) ([]model.Course, error) { return nil, nil }
func (f *fakeCourseRepo) Enroll(e *model.CourseStudent) error              { f.enroll(e.CourseID, e.StudentID); return nil }
func (f *fakeCourseRepo) Unenroll(courseID, studentID string) error        { return nil }
func (f *fakeCourseRepo) FindStudents(string) ([]model.User, error)        { return nil, nil }

func (f *fakeCourseRepo) IsStudentEnrolled(courseID, studentID string) (bool, error) {
	return f.enrollments[courseID+"/"+studentID], nil
}

func (f *fakeCourseRepo) EnrolledCourseIDs(studentID string) ([]string, error) {
	var ids []string
	for key, enrolled := range f.enrollments {
		if !enrolled {
			continue
		}
		for i := 0; i < len(key); i++ {
			if key[i] == '/' && key[i+1:] == studentID {
				ids = append(ids, key[:i])
			}
		}
	}
	return ids, nil
}

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func twoHourExam() *model.Exam {
	return &model.Exam{
		ID:        "exam-1",
		CourseID:  "course-1",
		Title:     "Midterm",
		StartTime: baseTime,
		EndTime:   baseTime.Add(2 * time.Hour),
		Duration:  60,
		Questions: []model.ExamQuestion{
			{ID: "q1", Type: model.QuestionTypeSingle, Content: "1+1?", Score: 50, Order: 1},
			{ID: "q2", Type: model.QuestionTypeEssay, Content: "Explain.", Score: 50, Order: 2},
		},
	}
}

func newExamServiceAt(t *testing.T, exam *model.Exam, now time.Time) (*examService, *fakeSubmissionRepo, *fakeCourseRepo) {
	t.Helper()
	subRepo := newFakeSubmissionRepo()
	courseRepo := newFakeCourseRepo()
	courseRepo.enroll(exam.CourseID, "student-1")

	svc := NewExamService(newFakeExamRepo(exam), subRepo, courseRepo).(*examService)
	svc.now = func() time.Time { return now }
	return svc, subRepo, courseRepo
}

func TestDeriveExamStatus(t *testing.T) {
	exam := twoHourExam()
	ongoing := &model.ExamSubmission{Status: model.SubmissionStatusOngoing}
	submitted := &model.ExamSubmission{Status: model.SubmissionStatusSubmitted}
	graded := &model.ExamSubmission{Status: model.SubmissionStatusGraded}

	cases := []struct {
		name       string
		submission *model.ExamSubmission
		now        time.Time
		want       string
	}{
		{"before window", nil, baseTime.Add(-time.Minute), dto.ExamStatusNotStarted},
		{"inside window", nil, baseTime.Add(time.Minute), dto.ExamStatusOngoing},
		{"at start", nil, baseTime, dto.ExamStatusOngoing},
		{"after window", nil, baseTime.Add(3 * time.Hour), dto.ExamStatusEnded},
		{"ongoing submission wins over late clock", ongoing, baseTime.Add(3 * time.Hour), dto.ExamStatusOngoing},
		{"submitted wins over early clock", submitted, baseTime.Add(-time.Minute), dto.ExamStatusEnded},
		{"graded is ended", graded, baseTime.Add(time.Minute), dto.ExamStatusEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveExamStatus(exam, tc.submission, tc.now))
		})
	}
}

func TestStartExamCreatesSessionWithBlankAnswers(t *testing.T) {
	exam := twoHourExam()
	svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(10*time.Minute))

	session, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionStatusOngoing, session.Status)
	assert.Equal(t, 3600, session.RemainingSeconds)
	require.Len(t, session.Questions, 2)
	for _, q := range session.Questions {
		assert.NotEmpty(t, q.AnswerID)
		assert.Nil(t, q.UserAnswer)
	}
}

func TestStartExamIsIdempotent(t *testing.T) {
	exam := twoHourExam()
	svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(10*time.Minute))

	first, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)
	second, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)

	assert.Equal(t, first.SubmissionID, second.SubmissionID)
	assert.Equal(t, first.Deadline, second.Deadline)
}

func TestStartExamRecoversFromLostCreationRace(t *testing.T) {
	exam := twoHourExam()
	svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(10*time.Minute))

	// A concurrent start commits between this caller's lookup and insert:
	// the lookup misses, the insert hits the unique index, and the retry
	// lookup must return the winner.
	subRepo.put(&model.ExamSubmission{
		ID:        "sub-winner",
		ExamID:    "exam-1",
		StudentID: "student-1",
		StartTime: baseTime.Add(9 * time.Minute),
		Status:    model.SubmissionStatusOngoing,
		Answers: []model.ExamAnswer{
			{ID: "a1", QuestionID: "q1"},
			{ID: "a2", QuestionID: "q2"},
		},
	})
	subRepo.hideFinds = 1
	subRepo.failCreates = 1

	session, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)
	assert.Equal(t, "sub-winner", session.SubmissionID)
}

func TestStartExamGuards(t *testing.T) {
	exam := twoHourExam()

	t.Run("unknown exam", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		_, err := svc.StartExam("student-1", "no-such-exam")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("before the window", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(-time.Minute))
		_, err := svc.StartExam("student-1", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindNotStarted))
	})

	t.Run("after the window", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(3*time.Hour))
		_, err := svc.StartExam("student-1", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindEnded))
	})

	t.Run("not enrolled", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		_, err := svc.StartExam("student-2", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindNotEnrolled))
	})
}

func TestStartExamDeadlineCappedByEndTime(t *testing.T) {
	// 60 minute exam inside a 2 hour window; starting 90 minutes in leaves
	// only the 30 minutes until the window closes.
	exam := twoHourExam()
	svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(90*time.Minute))

	session, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 1800, session.RemainingSeconds)
	assert.Equal(t, exam.EndTime, session.Deadline)
}

func TestStartExamAutoSubmitsExpiredSubmission(t *testing.T) {
	exam := twoHourExam()
	now := baseTime.Add(80 * time.Minute)
	svc, subRepo, _ := newExamServiceAt(t, exam, now)

	// Started at the window open; the 60 minute limit ran out 20 minutes ago.
	subRepo.put(&model.ExamSubmission{
		ID:        "sub-1",
		ExamID:    "exam-1",
		StudentID: "student-1",
		StartTime: baseTime,
		Status:    model.SubmissionStatusOngoing,
		Answers:   []model.ExamAnswer{{ID: "a1", QuestionID: "q1"}},
	})

	session, err := svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 0, session.RemainingSeconds)
	assert.Equal(t, model.SubmissionStatusSubmitted, session.Status)

	stored, err := subRepo.FindByExamAndStudent("exam-1", "student-1")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusSubmitted, stored.Status)
	require.NotNil(t, stored.SubmitTime)
	assert.Equal(t, now, *stored.SubmitTime)

	// Resuming again must not flip or re-update anything.
	updates := subRepo.updateCount
	_, err = svc.StartExam("student-1", "exam-1")
	require.NoError(t, err)
	assert.Equal(t, updates, subRepo.updateCount)
}

func TestSaveAnswer(t *testing.T) {
	exam := twoHourExam()
	text := "42"

	t.Run("updates an ongoing submission", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusOngoing,
			Answers: []model.ExamAnswer{{ID: "a1", QuestionID: "q1"}},
		})

		resp, err := svc.SaveAnswer("student-1", "a1", &text)
		require.NoError(t, err)
		assert.Equal(t, &text, resp.Answer)
		assert.Equal(t, &text, subRepo.answers["a1"].Answer)
	})

	t.Run("clears with null", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusOngoing,
			Answers: []model.ExamAnswer{{ID: "a1", QuestionID: "q1", Answer: &text}},
		})

		_, err := svc.SaveAnswer("student-1", "a1", nil)
		require.NoError(t, err)
		assert.Nil(t, subRepo.answers["a1"].Answer)
	})

	t.Run("rejects another student's answer", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusOngoing,
			Answers: []model.ExamAnswer{{ID: "a1", QuestionID: "q1"}},
		})

		_, err := svc.SaveAnswer("student-2", "a1", &text)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("rejects a closed submission", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusSubmitted,
			Answers: []model.ExamAnswer{{ID: "a1", QuestionID: "q1"}},
		})

		_, err := svc.SaveAnswer("student-1", "a1", &text)
		assert.True(t, apperr.IsKind(err, apperr.KindExamClosed))
	})

	t.Run("unknown answer", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
		_, err := svc.SaveAnswer("student-1", "missing", &text)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestSubmitExam(t *testing.T) {
	exam := twoHourExam()
	now := baseTime.Add(30 * time.Minute)

	t.Run("hands in an ongoing submission", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, now)
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusOngoing,
		})

		resp, err := svc.SubmitExam("student-1", "exam-1")
		require.NoError(t, err)
		assert.Equal(t, model.SubmissionStatusSubmitted, resp.Status)
		require.NotNil(t, resp.SubmitTime)
		assert.Equal(t, now, *resp.SubmitTime)
	})

	t.Run("double submit is rejected", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, now)
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusOngoing,
		})

		_, err := svc.SubmitExam("student-1", "exam-1")
		require.NoError(t, err)
		_, err = svc.SubmitExam("student-1", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindAlreadySubmitted))
	})

	t.Run("graded submission is rejected", func(t *testing.T) {
		svc, subRepo, _ := newExamServiceAt(t, exam, now)
		subRepo.put(&model.ExamSubmission{
			ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
			StartTime: baseTime, Status: model.SubmissionStatusGraded,
		})

		_, err := svc.SubmitExam("student-1", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindAlreadySubmitted))
	})

	t.Run("never started", func(t *testing.T) {
		svc, _, _ := newExamServiceAt(t, exam, now)
		_, err := svc.SubmitExam("student-1", "exam-1")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestListExamsFiltersByDerivedStatus(t *testing.T) {
	exam := twoHourExam()
	svc, subRepo, _ := newExamServiceAt(t, exam, baseTime.Add(time.Minute))
	subRepo.put(&model.ExamSubmission{
		ID: "sub-1", ExamID: "exam-1", StudentID: "student-1",
		StartTime: baseTime, Status: model.SubmissionStatusSubmitted,
	})

	resp, err := svc.ListExams("student-1", "", dto.ExamStatusEnded, 1, 20)
	require.NoError(t, err)
	items := resp.Items.([]dto.ExamListItem)
	require.Len(t, items, 1)
	assert.Equal(t, dto.ExamStatusEnded, items[0].Status)

	resp, err = svc.ListExams("student-1", "", dto.ExamStatusOngoing, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, resp.Items.([]dto.ExamListItem))
}
