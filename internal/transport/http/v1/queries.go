package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// RunQuery runs one natural-language query through the pipeline.
// POST /v1/queries
func (h *Handler) RunQuery(c echo.Context) error {
	var req domain.QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	ctx := c.Request().Context()

	resp, err := h.service.RunQuery(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, domain.QueryResponse{
			Status: domain.QueryStatusFailed,
		})
	}

	// A clarification outcome is a valid answer, not an error: clients
	// branch on the status field.
	return c.JSON(http.StatusOK, resp)
}
