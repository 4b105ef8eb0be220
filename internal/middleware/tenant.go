package middleware

import (
	"strings"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const DefaultTenantSubdomain = "default"

// TenantMiddleware 从请求解析租户并注入上下文。
// 优先取 Host 的子域名，其次 X-Tenant 头，都没有时落到默认租户。
// 未知或停用的租户直接拒绝
func TenantMiddleware(tenantSvc *service.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subdomain := extractSubdomain(c.Request.Host)
		if header := c.GetHeader("X-Tenant"); header != "" {
			subdomain = header
		}
		if subdomain == "" {
			subdomain = DefaultTenantSubdomain
		}

		tenant, err := tenantSvc.ResolveSubdomain(subdomain)
		if err != nil {
			util.Error(c, 404, "tenant not found")
			c.Abort()
			return
		}

		c.Set("tenant_id", tenant.ID)
		c.Set("tenant", tenant)
		c.Next()
	}
}

// extractSubdomain host 形如 acme.lms.example.com:8080 时返回 acme，
// 裸域名、IP和localhost返回空
func extractSubdomain(host string) string {
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[0]
}

// TenantID 当前请求的租户ID，由 TenantMiddleware 写入
func TenantID(c *gin.Context) string {
	if v, exists := c.Get("tenant_id"); exists {
		return v.(string)
	}
	return ""
}
