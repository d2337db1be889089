package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// ListAnalyses returns a tenant's analysis history.
// GET /v1/analyses?tenant_id=...&domain=...&limit=...
func (h *Handler) ListAnalyses(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "tenant_id is required"})
	}

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	dom := domain.Domain(c.QueryParam("domain"))

	ctx := c.Request().Context()

	records, err := h.service.ListAnalyses(ctx, tenantID, dom, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"analyses": records,
	})
}

// ListDomains returns the routable capability domains.
// GET /v1/domains
func (h *Handler) ListDomains(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"domains": h.service.Domains(),
	})
}
