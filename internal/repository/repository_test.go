package repository

import (
	"fmt"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
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
	return db
}

type fixture struct {
	tenant     model.Tenant
	user       model.User
	course     model.Course
	module     model.CourseModule
	enrollment model.Enrollment
}

// seedEnrollment 建好一条 active 报名及其课程骨架
func seedEnrollment(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{}
	f.tenant = model.Tenant{Name: "Acme " + t.Name(), Subdomain: "acme" + t.Name(), Active: true}
	require.NoError(t, db.Create(&f.tenant).Error)

	f.user = model.User{
		TenantID: f.tenant.ID,
		Email:    "student@example.com",
		Name:     "Student",
		Password: "x",
		Role:     model.Student,
	}
	require.NoError(t, db.Create(&f.user).Error)

	f.course = model.Course{
		TenantBase:   model.TenantBase{TenantID: f.tenant.ID},
		Title:        "Go基础",
		Status:       model.CoursePublished,
		IsFree:       true,
		InstructorID: f.user.ID,
	}
	require.NoError(t, db.Create(&f.course).Error)

	f.module = model.CourseModule{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		CourseID:   f.course.ID,
		Title:      "第一章",
		Order:      1,
	}
	require.NoError(t, db.Create(&f.module).Error)

	f.enrollment = model.Enrollment{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		UserID:     f.user.ID,
		CourseID:   f.course.ID,
		Status:     model.EnrollmentActive,
	}
	require.NoError(t, db.Create(&f.enrollment).Error)

	return f
}

func (f *fixture) addLesson(t *testing.T, db *gorm.DB, order int, mandatory, published bool) model.Lesson {
	t.Helper()

	lesson := model.Lesson{
		TenantBase: model.TenantBase{TenantID: f.tenant.ID},
		ModuleID:   f.module.ID,
		CourseID:   f.course.ID,
		Title:      fmt.Sprintf("课时%d", order),
		Type:       model.LessonVideo,
		Order:      order,
		Mandatory:  mandatory,
		Published:  published,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}
