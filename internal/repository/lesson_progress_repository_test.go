package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testThreshold = 95

func TestEnsureExistsIdempotent(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	first, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestApplyReportMonotonicPercentage(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, 60, 120, 115, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, p.CompletionPercentage)
	assert.Equal(t, 120, p.WatchTime)
	assert.Equal(t, 115, p.LastPosition)
	assert.False(t, p.Completed)

	// 迟到的低值上报：百分比和时长不回退，播放位置覆盖
	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, 30, 80, 55, testThreshold))

	p, err = repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, p.CompletionPercentage)
	assert.Equal(t, 120, p.WatchTime)
	assert.Equal(t, 55, p.LastPosition)
}

func TestApplyReportCompletionSticky(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, 96, 300, 290, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	require.NotNil(t, p.CompletedAt)
	firstCompletedAt := *p.CompletedAt

	// 完成后的低值上报不会撤销完成状态，completed_at 不变
	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, 10, 10, 10, testThreshold))

	p, err = repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, 96, p.CompletionPercentage)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, firstCompletedAt.Unix(), p.CompletedAt.Unix())
}

func TestApplyReportExactThreshold(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, testThreshold, 0, 0, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
}

func TestMarkCompleted(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkCompleted(f.enrollment.ID, lesson.ID, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, testThreshold, p.CompletionPercentage)
	assert.NotNil(t, p.CompletedAt)
}

func TestMarkCompletedKeepsHigherPercentage(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)

	// 已看完整个视频后再显式完成：百分比不回落到阈值
	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, 100, 300, 300, testThreshold))
	require.NoError(t, repo.MarkCompleted(f.enrollment.ID, lesson.ID, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestApplyReportBackfillsCompletedAt(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	lesson := f.addLesson(t, db, 1, true, true)
	repo := NewLessonProgressRepository(db)

	first, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson.ID)
	require.NoError(t, err)

	// completed 已置位而 completed_at 缺失的行（赋值顺序或历史数据造成），
	// 守卫只看 completed_at 自身，达阈值的上报要补上时间戳
	require.NoError(t, db.Model(first).
		Updates(map[string]interface{}{"completed": true, "completed_at": nil}).Error)

	require.NoError(t, repo.ApplyReport(f.enrollment.ID, lesson.ID, testThreshold, 10, 10, testThreshold))

	p, err := repo.Find(f.enrollment.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.NotNil(t, p.CompletedAt)
}

func TestCountCompletedMandatoryScope(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewLessonProgressRepository(db)

	mandatory := f.addLesson(t, db, 1, true, true)
	optional := f.addLesson(t, db, 2, false, true)
	unpublished := f.addLesson(t, db, 3, true, false)

	for _, lesson := range []string{mandatory.ID, optional.ID, unpublished.ID} {
		_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson)
		require.NoError(t, err)
		require.NoError(t, repo.MarkCompleted(f.enrollment.ID, lesson, testThreshold))
	}

	// 选修和未发布课时不计入完成率分子
	count, err := repo.CountCompletedMandatory(f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCountCompletedMandatoryExcludesDeleted(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewLessonProgressRepository(db)
	lessonRepo := NewLessonRepository(db)

	kept := f.addLesson(t, db, 1, true, true)
	removed := f.addLesson(t, db, 2, true, true)

	for _, lesson := range []string{kept.ID, removed.ID} {
		_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, lesson)
		require.NoError(t, err)
		require.NoError(t, repo.MarkCompleted(f.enrollment.ID, lesson, testThreshold))
	}

	require.NoError(t, lessonRepo.Delete(f.tenant.ID, removed.ID))

	count, err := repo.CountCompletedMandatory(f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := lessonRepo.CountMandatory(f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSumWatchTime(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewLessonProgressRepository(db)

	l1 := f.addLesson(t, db, 1, true, true)
	l2 := f.addLesson(t, db, 2, true, true)

	_, err := repo.EnsureExists(f.tenant.ID, f.enrollment.ID, l1.ID)
	require.NoError(t, err)
	_, err = repo.EnsureExists(f.tenant.ID, f.enrollment.ID, l2.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ApplyReport(f.enrollment.ID, l1.ID, 50, 120, 0, testThreshold))
	require.NoError(t, repo.ApplyReport(f.enrollment.ID, l2.ID, 50, 80, 0, testThreshold))

	total, err := repo.SumWatchTime(f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, total)
}
