package repository

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteOnlyFromActive(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	ok, err := repo.Complete(f.enrollment.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	e, err := repo.FindByID(f.tenant.ID, f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)
	assert.NotNil(t, e.CompletedAt)

	// 状态迁移只发生一次
	ok, err = repo.Complete(f.enrollment.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithdrawFromPendingAndActive(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	ok, err := repo.Withdraw(f.enrollment.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	e, err := repo.FindByID(f.tenant.ID, f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentWithdrawn, e.Status)
	assert.NotNil(t, e.WithdrawnAt)

	// 终态不可再退
	ok, err = repo.Withdraw(f.enrollment.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// 终态不可完成
	ok, err = repo.Complete(f.enrollment.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivateOnlyFromPending(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	// active 状态不受 Activate 影响
	ok, err := repo.Activate(f.enrollment.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	pending := model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     f.user.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentPending,
	}
	require.NoError(t, db.Create(&pending).Error)

	ok, err = repo.Activate(pending.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	e, err := repo.FindByID(f.tenant.ID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, e.Status)
}

func TestCreateSecondCurrentEnrollmentRejected(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	first := model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     f.user.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentActive,
	}
	require.NoError(t, repo.Create(&first))

	// 唯一索引在存储层挡住同一 (学员, 课程) 的第二条非终态报名，
	// 并发下两个请求同时通过预检也只会有一条落库
	dup := model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     f.user.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentPending,
	}
	err := repo.Create(&dup)
	require.Error(t, err)
	assert.True(t, IsDuplicateKeyErr(err))

	// 终态释放唯一键，退课后可重新报名
	ok, err := repo.Withdraw(first.ID)
	require.NoError(t, err)
	require.True(t, ok)

	again := model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     f.user.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentActive,
	}
	require.NoError(t, repo.Create(&again))
}

func TestFindCurrentIgnoresTerminal(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	_, err := repo.FindCurrent(f.tenant.ID, f.user.ID, f.course.ID)
	require.NoError(t, err)

	ok, err := repo.Withdraw(f.enrollment.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// 退课后可重新报名：终态记录不算占用
	_, err = repo.FindCurrent(f.tenant.ID, f.user.ID, f.course.ID)
	assert.Error(t, err)
}

func TestUpdateAggregate(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	require.NoError(t, repo.UpdateAggregate(f.enrollment.ID, 50, 360))

	e, err := repo.FindByID(f.tenant.ID, f.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, e.CompletionPercentage)
	assert.Equal(t, 360, e.TotalWatchTime)
}

func TestCountActiveIncludesPending(t *testing.T) {
	db := testDB(t)
	f := seedEnrollment(t, db)
	repo := NewEnrollmentRepository(db)

	other := model.User{TenantID: f.tenant.ID, Email: "other@example.com", Name: "Other", Password: "x", Role: model.Student}
	require.NoError(t, db.Create(&other).Error)

	pending := model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     other.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentPending,
	}
	require.NoError(t, db.Create(&pending).Error)

	count, err := repo.CountActive(f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
