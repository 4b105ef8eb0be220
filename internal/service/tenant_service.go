package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type TenantService struct {
	TenantRepo *repository.TenantRepository
}

func NewTenantService(tenantRepo *repository.TenantRepository) *TenantService {
	return &TenantService{TenantRepo: tenantRepo}
}

type CreateTenantRequest struct {
	Name       string `json:"name" binding:"required"`
	Subdomain  string `json:"subdomain" binding:"required,alphanum,min=3,max=63"`
	Domain     string `json:"domain"`
	Plan       string `json:"plan"`
	MaxUsers   int    `json:"maxUsers"`
	MaxCourses int    `json:"maxCourses"`
}

func (s *TenantService) Create(req CreateTenantRequest) (*model.Tenant, error) {
	if _, err := s.TenantRepo.FindBySubdomain(req.Subdomain); err == nil {
		return nil, util.ErrSubdomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tenant := &model.Tenant{
		Name:      req.Name,
		Subdomain: req.Subdomain,
		Domain:    req.Domain,
		Active:    true,
	}
	if req.Plan != "" {
		tenant.Plan = model.TenantPlan(req.Plan)
	}
	if req.MaxUsers > 0 {
		tenant.MaxUsers = req.MaxUsers
	}
	if req.MaxCourses > 0 {
		tenant.MaxCourses = req.MaxCourses
	}

	if err := s.TenantRepo.Create(tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// ResolveSubdomain 根据请求子域名解析租户，未知或停用的租户返回错误
func (s *TenantService) ResolveSubdomain(subdomain string) (*model.Tenant, error) {
	tenant, err := s.TenantRepo.FindBySubdomain(subdomain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) Get(id string) (*model.Tenant, error) {
	tenant, err := s.TenantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) List(page, limit int) ([]model.Tenant, int64, error) {
	return s.TenantRepo.List(page, limit)
}

// CanCreateCourse 检查租户课程配额
func (s *TenantService) CanCreateCourse(tenantID string) error {
	tenant, err := s.Get(tenantID)
	if err != nil {
		return err
	}
	count, err := s.TenantRepo.CountCourses(tenantID)
	if err != nil {
		return err
	}
	if tenant.MaxCourses > 0 && count >= int64(tenant.MaxCourses) {
		return util.ErrTenantQuotaExceeded
	}
	return nil
}
