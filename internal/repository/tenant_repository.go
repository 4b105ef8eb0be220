package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) Create(tenant *model.Tenant) error {
	return r.DB.Create(tenant).Error
}

func (r *TenantRepository) FindByID(id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) FindBySubdomain(subdomain string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.First(&tenant, "subdomain = ? AND active = ?", subdomain, true).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) List(page, limit int) ([]model.Tenant, int64, error) {
	var tenants []model.Tenant
	var total int64

	if err := r.DB.Model(&model.Tenant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tenants).Error
	return tenants, total, err
}

func (r *TenantRepository) Update(tenant *model.Tenant) error {
	return r.DB.Save(tenant).Error
}

func (r *TenantRepository) CountUsers(tenantID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *TenantRepository) CountCourses(tenantID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
