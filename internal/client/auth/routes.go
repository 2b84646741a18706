package auth

import (
	"slices"
	"strings"

	"github.com/iudanet/marketdash/internal/models"
)

// Маршруты приложения, на которые переходит менеджер сессии
const (
	RouteHome      = "/"
	RouteLogin     = "/auth/login"
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/dashboard/admin"
	RouteModerator = "/dashboard/moderator"
)

// protectedRoutes сопоставляет префикс маршрута и роли, которым он доступен
var protectedRoutes = []struct {
	prefix string
	roles  []models.Role
}{
	{prefix: RouteAdmin, roles: []models.Role{models.RoleAdmin}},
	{prefix: RouteModerator, roles: []models.Role{models.RoleModerator, models.RoleAdmin}},
}

// publicRoutes доступны без аутентификации, сравниваются точно
var publicRoutes = []string{
	RouteHome,
	RouteLogin,
	"/auth/signup",
	"/auth/register",
	"/auth/forgot-password",
	"/auth/reset-password",
	RouteDashboard,
	"/marketplace",
	"/collections",
	"/nft",
}

// RequiredRoles возвращает роли, необходимые для маршрута.
// Пустой результат означает, что роль не проверяется.
func RequiredRoles(path string) []models.Role {
	for _, r := range protectedRoutes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return slices.Clone(r.roles)
		}
	}
	return nil
}

// IsPublicRoute сообщает, что маршрут доступен без аутентификации
func IsPublicRoute(path string) bool {
	return slices.Contains(publicRoutes, path)
}
