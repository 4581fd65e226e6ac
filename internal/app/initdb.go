package app

import (
	"strings"

	"go.uber.org/zap"
)

// checkAdminConfig validates the single-admin credentials at startup.
// The storefront never stores admin accounts in the catalog; the email
// and bcrypt hash come from configuration only.
func (a *Application) checkAdminConfig() {
	email := strings.TrimSpace(a.appConfig.Admin.Email)
	hash := strings.TrimSpace(a.appConfig.Admin.PasswordHash)

	if email == "" {
		zap.L().Warn("admin email not configured, admin login is disabled")
		return
	}
	if hash == "" {
		zap.L().Warn("admin password hash not configured, admin login is disabled",
			zap.String("email", email))
		return
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") && !strings.HasPrefix(hash, "$2y$") {
		zap.L().Warn("admin password hash does not look like a bcrypt hash",
			zap.String("email", email))
	}
}
