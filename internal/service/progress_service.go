package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.LessonProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
	ModuleRepo     *repository.ModuleRepository
	CourseRepo     *repository.CourseRepository
	Redis          *redis.Client
	Config         *config.Config
}

func NewProgressService(
	progressRepo *repository.LessonProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		LessonRepo:     lessonRepo,
		ModuleRepo:     moduleRepo,
		CourseRepo:     courseRepo,
		Redis:          redisClient,
		Config:         cfg,
	}
}

type ReportProgressRequest struct {
	CompletionPercentage int `json:"completionPercentage" binding:"min=0,max=100"`
	WatchTime            int `json:"watchTime" binding:"min=0"`
	LastPosition         int `json:"lastPosition" binding:"min=0"`
}

// ReportProgress 上报课时观看进度。
// 百分比和观看时长只增不减，迟到的低值上报不会回退已有进度；
// last_position 总是覆盖，便于断点续播。
// 上报落库后同步重算课程级完成率，达到100时报名迁移为 completed。
func (s *ProgressService) ReportProgress(ctx context.Context, tenantID, userID, lessonID string, req ReportProgressRequest) (*model.LessonProgress, error) {
	if req.CompletionPercentage < 0 || req.CompletionPercentage > 100 {
		return nil, util.ErrInvalidPercentage
	}
	if req.WatchTime < 0 {
		return nil, util.ErrInvalidWatchTime
	}

	lesson, err := s.LessonRepo.FindByID(tenantID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.Type == model.LessonVideo && lesson.VideoDuration > 0 && req.LastPosition > lesson.VideoDuration {
		return nil, util.ErrInvalidPosition
	}

	enrollment, err := s.activeEnrollment(tenantID, userID, lesson.CourseID)
	if err != nil {
		monitoring.ProgressReportCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if _, err := s.ProgressRepo.EnsureExists(tenantID, enrollment.ID, lessonID); err != nil {
		return nil, err
	}

	threshold := s.Config.CompletionThreshold()
	if err := s.ProgressRepo.ApplyReport(enrollment.ID, lessonID,
		req.CompletionPercentage, req.WatchTime, req.LastPosition, threshold); err != nil {
		monitoring.ProgressReportCounter.WithLabelValues("error").Inc()
		return nil, err
	}
	monitoring.ProgressReportCounter.WithLabelValues("accepted").Inc()

	if err := s.RecomputeCourseCompletion(ctx, enrollment); err != nil {
		// 汇总失败不阻塞上报本身，下一次上报会重算
		logger.Log.Error("failed to recompute course completion",
			zap.String("enrollment_id", enrollment.ID), zap.Error(err))
	}

	return s.ProgressRepo.Find(enrollment.ID, lessonID)
}

// CompleteLesson 显式标记课时完成，用于文本和测验类课时。
// 等价于按完成阈值上报一次百分比，已有更高进度不回退
func (s *ProgressService) CompleteLesson(ctx context.Context, tenantID, userID, lessonID string) (*model.LessonProgress, error) {
	lesson, err := s.LessonRepo.FindByID(tenantID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	enrollment, err := s.activeEnrollment(tenantID, userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ProgressRepo.EnsureExists(tenantID, enrollment.ID, lessonID); err != nil {
		return nil, err
	}
	if err := s.ProgressRepo.MarkCompleted(enrollment.ID, lessonID, s.Config.CompletionThreshold()); err != nil {
		return nil, err
	}

	if err := s.RecomputeCourseCompletion(ctx, enrollment); err != nil {
		logger.Log.Error("failed to recompute course completion",
			zap.String("enrollment_id", enrollment.ID), zap.Error(err))
	}

	return s.ProgressRepo.Find(enrollment.ID, lessonID)
}

// RecomputeCourseCompletion 重算课程级完成率：
// 已完成必修课时 / 必修课时总数 ×100，向下取整。
// 达到100且报名仍为 active 时迁移为 completed，条件更新保证迁移只发生一次。
func (s *ProgressService) RecomputeCourseCompletion(ctx context.Context, enrollment *model.Enrollment) error {
	total, err := s.LessonRepo.CountMandatory(enrollment.CourseID)
	if err != nil {
		return err
	}

	percentage := 0
	completed := int64(0)
	if total > 0 {
		completed, err = s.ProgressRepo.CountCompletedMandatory(enrollment.ID)
		if err != nil {
			return err
		}
		percentage = int(completed * 100 / total)
	}

	watchTime, err := s.ProgressRepo.SumWatchTime(enrollment.ID)
	if err != nil {
		return err
	}

	if err := s.EnrollmentRepo.UpdateAggregate(enrollment.ID, percentage, watchTime); err != nil {
		return err
	}

	if percentage >= 100 {
		transitioned, err := s.EnrollmentRepo.Complete(enrollment.ID)
		if err != nil {
			return err
		}
		if transitioned {
			logger.Log.Info("course completed",
				zap.String("enrollment_id", enrollment.ID),
				zap.String("course_id", enrollment.CourseID))
		}
	}

	invalidateProgressSummary(ctx, s.Redis, enrollment.ID)
	return nil
}

// GetCourseProgress 课程进度摘要，短 TTL 缓存，进度写入时失效
func (s *ProgressService) GetCourseProgress(ctx context.Context, tenantID, userID, courseID string) (*model.CourseProgressSummary, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(tenantID, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, summaryCacheKey(enrollment.ID)).Result()
		if err == nil {
			var summary model.CourseProgressSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.buildSummary(tenantID, enrollment)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, summaryCacheKey(enrollment.ID), payload, s.Config.SummaryCacheTTL())
		}
	}

	return summary, nil
}

func (s *ProgressService) buildSummary(tenantID string, enrollment *model.Enrollment) (*model.CourseProgressSummary, error) {
	lessons, err := s.LessonRepo.ListByCourse(tenantID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	modules, err := s.moduleTitles(tenantID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	progressList, err := s.ProgressRepo.ListByEnrollment(enrollment.ID)
	if err != nil {
		return nil, err
	}

	progressByLesson := make(map[string]model.LessonProgress, len(progressList))
	for _, p := range progressList {
		progressByLesson[p.LessonID] = p
	}

	summary := &model.CourseProgressSummary{
		EnrollmentID:         enrollment.ID,
		Status:               enrollment.Status,
		CompletionPercentage: enrollment.CompletionPercentage,
	}

	for _, lesson := range lessons {
		if !lesson.Published {
			continue
		}
		item := model.LessonProgressItem{
			LessonID:    lesson.ID,
			LessonTitle: lesson.Title,
			ModuleID:    lesson.ModuleID,
			ModuleTitle: modules[lesson.ModuleID],
			Mandatory:   lesson.Mandatory,
		}
		if p, ok := progressByLesson[lesson.ID]; ok {
			item.Completed = p.Completed
			item.CompletionPercentage = p.CompletionPercentage
			item.WatchTime = p.WatchTime
			item.LastPosition = p.LastPosition
		}
		if lesson.Mandatory {
			summary.TotalLessons++
			if item.Completed {
				summary.CompletedLessons++
			}
		}
		summary.LessonProgress = append(summary.LessonProgress, item)
	}

	return summary, nil
}

func (s *ProgressService) moduleTitles(tenantID, courseID string) (map[string]string, error) {
	modules, err := s.ModuleRepo.ListByCourse(tenantID, courseID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(modules))
	for _, m := range modules {
		titles[m.ID] = m.Title
	}
	return titles, nil
}

// activeEnrollment 进度操作要求报名处于 active 状态；
// pending 提示未生效，终态报名拒绝写入
func (s *ProgressService) activeEnrollment(tenantID, userID, courseID string) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(tenantID, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	if enrollment.Status.Terminal() {
		return nil, util.ErrEnrollmentTerminal
	}
	if enrollment.Status != model.EnrollmentActive {
		return nil, util.ErrEnrollmentInactive
	}
	return enrollment, nil
}

// invalidateProgressSummary 报名状态或进度变化后清掉摘要缓存，
// 报名、支付、进度三个服务共用
func invalidateProgressSummary(ctx context.Context, rdb *redis.Client, enrollmentID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, summaryCacheKey(enrollmentID))
}

func summaryCacheKey(enrollmentID string) string {
	return fmt.Sprintf("progress:summary:%s", enrollmentID)
}
