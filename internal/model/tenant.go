package model

type TenantPlan string

const (
	PlanBasic      TenantPlan = "basic"
	PlanPro        TenantPlan = "pro"
	PlanEnterprise TenantPlan = "enterprise"
)

// swagger:model Tenant
type Tenant struct {
	UUIDBase
	Name       string     `gorm:"size:255;unique;not null" json:"name"`
	Subdomain  string     `gorm:"size:100;unique;not null" json:"subdomain"`
	Domain     string     `gorm:"size:255" json:"domain"`
	Plan       TenantPlan `gorm:"size:20;default:'basic'" json:"plan"`
	MaxUsers   int        `gorm:"default:50" json:"maxUsers"`
	MaxCourses int        `gorm:"default:10" json:"maxCourses"`
	Active     bool       `gorm:"default:true" json:"active"`
}

func (Tenant) TableName() string {
	return "tenants"
}
