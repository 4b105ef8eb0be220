package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewUpserts(t *testing.T) {
	env := newTestEnv(t)

	student := env.newUser(t, "s@example.com", model.Student)
	course, _ := env.newCourse(t, student.ID, 1, 0, true, 0)

	_, err := env.enrollmentSvc.Enroll(env.tenant.ID, student.ID, course.ID)
	require.NoError(t, err)

	_, err = env.reviewSvc.SubmitReview(env.tenant.ID, student.ID, course.ID,
		SubmitReviewRequest{Rating: 3, Comment: "还行"})
	require.NoError(t, err)

	// 重复提交覆盖旧评价
	_, err = env.reviewSvc.SubmitReview(env.tenant.ID, student.ID, course.ID,
		SubmitReviewRequest{Rating: 5, Comment: "讲得很透"})
	require.NoError(t, err)

	reviews, total, avg, err := env.reviewSvc.ListCourseReviews(env.tenant.ID, course.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 5.0, avg)
}

func TestSubmitReviewRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)

	student := env.newUser(t, "s@example.com", model.Student)
	course, _ := env.newCourse(t, student.ID, 1, 0, true, 0)

	_, err := env.reviewSvc.SubmitReview(env.tenant.ID, student.ID, course.ID,
		SubmitReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestListCourseReviewsHidesPrivate(t *testing.T) {
	env := newTestEnv(t)

	a := env.newUser(t, "a@example.com", model.Student)
	b := env.newUser(t, "b@example.com", model.Student)
	course, _ := env.newCourse(t, a.ID, 1, 0, true, 0)

	_, err := env.enrollmentSvc.Enroll(env.tenant.ID, a.ID, course.ID)
	require.NoError(t, err)
	_, err = env.enrollmentSvc.Enroll(env.tenant.ID, b.ID, course.ID)
	require.NoError(t, err)

	private := false
	_, err = env.reviewSvc.SubmitReview(env.tenant.ID, a.ID, course.ID,
		SubmitReviewRequest{Rating: 2, Public: &private})
	require.NoError(t, err)
	_, err = env.reviewSvc.SubmitReview(env.tenant.ID, b.ID, course.ID,
		SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)

	// 列表和均分都只计公开评价
	reviews, total, avg, err := env.reviewSvc.ListCourseReviews(env.tenant.ID, course.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, 4.0, avg)
}

func TestBookmarkLifecycle(t *testing.T) {
	env := newTestEnv(t)

	student := env.newUser(t, "s@example.com", model.Student)
	_, lessons := env.newCourse(t, student.ID, 1, 0, true, 0)
	lesson := lessons[0]

	bm, err := env.reviewSvc.SaveBookmark(env.tenant.ID, student.ID, lesson.ID,
		SaveBookmarkRequest{Position: 42, Note: "重点"})
	require.NoError(t, err)
	assert.Equal(t, 42, bm.Position)

	// 同一课时再次保存覆盖原书签
	_, err = env.reviewSvc.SaveBookmark(env.tenant.ID, student.ID, lesson.ID,
		SaveBookmarkRequest{Position: 88})
	require.NoError(t, err)

	list, err := env.reviewSvc.ListBookmarks(env.tenant.ID, student.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 88, list[0].Position)

	require.NoError(t, env.reviewSvc.DeleteBookmark(env.tenant.ID, student.ID, lesson.ID))
	list, err = env.reviewSvc.ListBookmarks(env.tenant.ID, student.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookmarkPositionBeyondDuration(t *testing.T) {
	env := newTestEnv(t)

	student := env.newUser(t, "s@example.com", model.Student)
	_, lessons := env.newCourse(t, student.ID, 1, 0, true, 0)
	lesson := lessons[0]

	require.NoError(t, env.db.Model(&model.Lesson{}).
		Where("id = ?", lesson.ID).
		Update("video_duration", 100).Error)

	_, err := env.reviewSvc.SaveBookmark(env.tenant.ID, student.ID, lesson.ID,
		SaveBookmarkRequest{Position: 101})
	assert.ErrorIs(t, err, util.ErrInvalidPosition)
}
