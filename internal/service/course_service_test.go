package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateModuleAutoOrder(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	course, err := env.courseSvc.Create(env.tenant.ID, teacher.ID, CreateCourseRequest{Title: "Go进阶"})
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status)

	m1, err := env.courseSvc.CreateModule(env.tenant.ID, course.ID, CreateModuleRequest{Title: "第一章"})
	require.NoError(t, err)
	assert.Equal(t, 1, m1.Order)

	m2, err := env.courseSvc.CreateModule(env.tenant.ID, course.ID, CreateModuleRequest{Title: "第二章"})
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Order)
}

func TestCreateLessonAutoOrderAndCourseBinding(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	course, err := env.courseSvc.Create(env.tenant.ID, teacher.ID, CreateCourseRequest{Title: "Go进阶"})
	require.NoError(t, err)

	m, err := env.courseSvc.CreateModule(env.tenant.ID, course.ID, CreateModuleRequest{Title: "第一章"})
	require.NoError(t, err)

	l1, err := env.courseSvc.CreateLesson(env.tenant.ID, m.ID, CreateLessonRequest{Title: "变量"})
	require.NoError(t, err)
	assert.Equal(t, 1, l1.Order)
	assert.Equal(t, course.ID, l1.CourseID)
	assert.True(t, l1.Mandatory)

	optional := false
	l2, err := env.courseSvc.CreateLesson(env.tenant.ID, m.ID, CreateLessonRequest{Title: "附录", Mandatory: &optional})
	require.NoError(t, err)
	assert.Equal(t, 2, l2.Order)
	assert.False(t, l2.Mandatory)
}

func TestPublishRequiresMandatoryLesson(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	course, err := env.courseSvc.Create(env.tenant.ID, teacher.ID, CreateCourseRequest{Title: "空课程"})
	require.NoError(t, err)

	err = env.courseSvc.Publish(env.tenant.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseHasNoLessons)

	m, err := env.courseSvc.CreateModule(env.tenant.ID, course.ID, CreateModuleRequest{Title: "第一章"})
	require.NoError(t, err)
	lesson, err := env.courseSvc.CreateLesson(env.tenant.ID, m.ID, CreateLessonRequest{Title: "开篇"})
	require.NoError(t, err)

	// 课时需发布后才计入
	published := true
	_, err = env.courseSvc.UpdateLesson(env.tenant.ID, lesson.ID, UpdateLessonRequest{Published: &published})
	require.NoError(t, err)

	require.NoError(t, env.courseSvc.Publish(env.tenant.ID, course.ID))

	got, err := env.courseSvc.Get(env.tenant.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, got.Status)
	assert.NotNil(t, got.PublishedAt)
}

func TestDeleteLessonShrinksCompletionDenominator(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	course, lessons := env.newCourse(t, teacher.ID, 2, 0, true, 0)

	total, err := env.lessonRepo.CountMandatory(course.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	require.NoError(t, env.courseSvc.DeleteLesson(env.tenant.ID, lessons[1].ID))

	total, err = env.lessonRepo.CountMandatory(course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTenantIsolation(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	course, _ := env.newCourse(t, teacher.ID, 1, 0, true, 0)

	other := model.Tenant{Name: "Other", Subdomain: "other", Active: true}
	require.NoError(t, env.db.Create(&other).Error)

	// 其他租户查不到这门课
	_, err := env.courseSvc.Get(other.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCourseQuota(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Model(&model.Tenant{}).
		Where("id = ?", env.tenant.ID).
		Update("max_courses", 1).Error)

	teacher := env.newUser(t, "t@example.com", model.Teacher)
	_, err := env.courseSvc.Create(env.tenant.ID, teacher.ID, CreateCourseRequest{Title: "一号课"})
	require.NoError(t, err)

	_, err = env.courseSvc.Create(env.tenant.ID, teacher.ID, CreateCourseRequest{Title: "二号课"})
	assert.ErrorIs(t, err, util.ErrTenantQuotaExceeded)
}
