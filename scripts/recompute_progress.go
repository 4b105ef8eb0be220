// 手动触发课程完成率重算脚本
//
// 进度上报时完成率会同步重算，日常无需此脚本。
// 用于 completion_threshold 配置调整或批量导入历史进度数据之后，
// 对存量报名做一次全量重算。
//
// 用法: go run scripts/recompute_progress.go

package main

import (
	"context"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(logger.Options{Mode: cfg.Server.Mode})

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	progressSvc := service.NewProgressService(
		repository.NewLessonProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLessonRepository(db),
		repository.NewModuleRepository(db),
		repository.NewCourseRepository(db),
		nil,
		cfg,
	)

	var enrollments []model.Enrollment
	if err := db.Where("status IN ?", []model.EnrollmentStatus{
		model.EnrollmentPending, model.EnrollmentActive,
	}).Find(&enrollments).Error; err != nil {
		log.Fatalf("查询报名记录失败: %v", err)
	}

	log.Printf("开始重算 %d 条报名的课程完成率...", len(enrollments))

	ctx := context.Background()
	failed := 0
	for i := range enrollments {
		if err := progressSvc.RecomputeCourseCompletion(ctx, &enrollments[i]); err != nil {
			failed++
			log.Printf("重算失败 enrollment=%s: %v", enrollments[i].ID, err)
		}
	}

	log.Printf("完成！成功 %d 条，失败 %d 条", len(enrollments)-failed, failed)
}
