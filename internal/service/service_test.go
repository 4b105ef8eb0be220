package service

import (
	"fmt"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db  *gorm.DB
	cfg *config.Config

	tenantRepo     *repository.TenantRepository
	userRepo       *repository.UserRepository
	courseRepo     *repository.CourseRepository
	moduleRepo     *repository.ModuleRepository
	lessonRepo     *repository.LessonRepository
	enrollmentRepo *repository.EnrollmentRepository
	progressRepo   *repository.LessonProgressRepository
	paymentRepo    *repository.PaymentRepository

	tenantSvc     *TenantService
	courseSvc     *CourseService
	enrollmentSvc *EnrollmentService
	progressSvc   *ProgressService
	paymentSvc    *PaymentService
	reviewSvc     *ReviewService

	tenant model.Tenant
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Progress.CompletionThreshold = 95
	cfg.Progress.SummaryCacheTTL = 60

	env := &testEnv{
		db:             db,
		cfg:            cfg,
		tenantRepo:     repository.NewTenantRepository(db),
		userRepo:       repository.NewUserRepository(db),
		courseRepo:     repository.NewCourseRepository(db),
		moduleRepo:     repository.NewModuleRepository(db),
		lessonRepo:     repository.NewLessonRepository(db),
		enrollmentRepo: repository.NewEnrollmentRepository(db),
		progressRepo:   repository.NewLessonProgressRepository(db),
		paymentRepo:    repository.NewPaymentRepository(db),
	}

	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	env.tenantSvc = NewTenantService(env.tenantRepo)
	env.courseSvc = NewCourseService(env.courseRepo, categoryRepo, env.moduleRepo, env.lessonRepo, env.tenantSvc)
	env.enrollmentSvc = NewEnrollmentService(env.enrollmentRepo, env.courseRepo, env.paymentRepo, nil)
	env.progressSvc = NewProgressService(env.progressRepo, env.enrollmentRepo, env.lessonRepo, env.moduleRepo, env.courseRepo, nil, cfg)
	env.paymentSvc = NewPaymentService(env.paymentRepo, env.enrollmentRepo, nil)
	env.reviewSvc = NewReviewService(reviewRepo, bookmarkRepo, env.enrollmentRepo, env.lessonRepo)

	env.tenant = model.Tenant{Name: "T" + t.Name(), Subdomain: "t" + t.Name(), MaxUsers: 100, MaxCourses: 100, Active: true}
	require.NoError(t, db.Create(&env.tenant).Error)

	return env
}

func (e *testEnv) newUser(t *testing.T, email string, role model.UserRole) model.User {
	t.Helper()
	user := model.User{TenantID: e.tenant.ID, Email: email, Name: email, Password: "x", Role: role}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

// newCourse 建一门已发布课程，带 mandatory 门必修和 optional 门选修课时
func (e *testEnv) newCourse(t *testing.T, instructorID string, mandatory, optional int, free bool, price float64) (model.Course, []model.Lesson) {
	t.Helper()

	course := model.Course{
		TenantBase:   model.TenantBase{TenantID: e.tenant.ID},
		Title:        "Course " + t.Name(),
		Status:       model.CoursePublished,
		IsFree:       free,
		Price:        price,
		InstructorID: instructorID,
	}
	require.NoError(t, e.db.Create(&course).Error)

	m := model.CourseModule{
		TenantBase: model.TenantBase{TenantID: e.tenant.ID},
		CourseID:   course.ID,
		Title:      "Module 1",
		Order:      1,
	}
	require.NoError(t, e.db.Create(&m).Error)

	var lessons []model.Lesson
	for i := 0; i < mandatory+optional; i++ {
		lesson := model.Lesson{
			TenantBase: model.TenantBase{TenantID: e.tenant.ID},
			ModuleID:   m.ID,
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			Type:       model.LessonVideo,
			Order:      i + 1,
			Mandatory:  i < mandatory,
			Published:  true,
		}
		require.NoError(t, e.db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}
