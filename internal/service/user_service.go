package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 管理员侧的用户管理
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) List(tenantID string, role model.UserRole, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(tenantID, role, page, limit)
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher admin"`
}

func (s *UserService) SetRole(tenantID, userID string, req SetRoleRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	user.Role = model.UserRole(req.Role)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

func (s *UserService) SetDisabled(tenantID, userID string, req SetDisabledRequest) error {
	if _, err := s.UserRepo.FindByID(tenantID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.SetDisabled(tenantID, userID, *req.Disabled)
}
