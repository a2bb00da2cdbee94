package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse/auth-api/internal/core/domain"
	"github.com/gatehouse/auth-api/internal/core/ports"
)

type RoleHandler struct {
	roles ports.RoleRepository
}

func NewRoleHandler(roles ports.RoleRepository) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// GetByName looks up a role by name. Moderators and admins only.
//
// @Summary      Get role by name
// @Tags         roles
// @Produce      json
// @Param        name  path      string  true  "Role name"
// @Success      200   {object}  domain.Role
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /roles/{name} [get]
func (h *RoleHandler) GetByName(c echo.Context) error {
	role, err := h.roles.FindByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "role not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, role)
}
