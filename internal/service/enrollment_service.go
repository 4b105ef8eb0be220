package service

import (
	"context"
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	PaymentRepo    *repository.PaymentRepository
	Redis          *redis.Client
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	paymentRepo *repository.PaymentRepository,
	redisClient *redis.Client,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		PaymentRepo:    paymentRepo,
		Redis:          redisClient,
	}
}

type EnrollResult struct {
	Enrollment *model.Enrollment `json:"enrollment"`
	// 付费课程返回待支付记录，学员确认支付后报名转为 active
	Payment *model.Payment `json:"payment,omitempty"`
}

// Enroll 报名课程：
//   - 课程必须已发布
//   - 同一学员同一课程不允许存在第二条非终态报名，
//     预检之外由报名表唯一索引兜底并发场景
//   - 有容量限制时校验当前占用名额
//   - 免费课程直接 active；付费课程建 pending 报名和 pending 支付单
func (s *EnrollmentService) Enroll(tenantID, userID, courseID string) (*EnrollResult, error) {
	course, err := s.CourseRepo.FindByID(tenantID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	if _, err := s.EnrollmentRepo.FindCurrent(tenantID, userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if course.MaxStudents != nil {
		count, err := s.EnrollmentRepo.CountActive(courseID)
		if err != nil {
			return nil, err
		}
		if count >= int64(*course.MaxStudents) {
			return nil, util.ErrCourseFull
		}
	}

	status := model.EnrollmentActive
	if !course.IsFree {
		status = model.EnrollmentPending
	}

	enrollment := &model.Enrollment{
		TenantBase: model.TenantBase{TenantID: tenantID},
		UserID:     userID,
		CourseID:   courseID,
		Status:     status,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	result := &EnrollResult{Enrollment: enrollment}

	if !course.IsFree {
		payment := &model.Payment{
			TenantBase:   model.TenantBase{TenantID: tenantID},
			UserID:       userID,
			CourseID:     courseID,
			EnrollmentID: enrollment.ID,
			Amount:       course.Price,
			Status:       model.PaymentPending,
		}
		if err := s.PaymentRepo.Create(payment); err != nil {
			return nil, err
		}
		result.Payment = payment
	}

	logger.Log.Info("enrollment created",
		zap.String("enrollment_id", enrollment.ID),
		zap.String("course_id", courseID),
		zap.String("status", string(enrollment.Status)))

	return result, nil
}

func (s *EnrollmentService) Get(tenantID, id string) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByUser(tenantID, userID string, status model.EnrollmentStatus, page, limit int) ([]model.Enrollment, int64, error) {
	return s.EnrollmentRepo.ListByUser(tenantID, userID, status, page, limit)
}

func (s *EnrollmentService) ListByCourse(tenantID, courseID string, page, limit int) ([]model.Enrollment, int64, error) {
	return s.EnrollmentRepo.ListByCourse(tenantID, courseID, page, limit)
}

// Withdraw 退出课程，仅 pending 或 active 状态可退，进度记录保留
func (s *EnrollmentService) Withdraw(ctx context.Context, tenantID, userID, id string) (*model.Enrollment, error) {
	enrollment, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if enrollment.Status.Terminal() {
		return nil, util.ErrEnrollmentTerminal
	}

	ok, err := s.EnrollmentRepo.Withdraw(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 并发下状态刚好被其他请求迁移走
		return nil, util.ErrEnrollmentTerminal
	}

	invalidateProgressSummary(ctx, s.Redis, id)

	return s.Get(tenantID, id)
}
