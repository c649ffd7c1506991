package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
)

// ReportsHandler exposes status-count reporting.
type ReportsHandler struct {
	grievances *service.GrievanceService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(grievanceService *service.GrievanceService) *ReportsHandler {
	return &ReportsHandler{grievances: grievanceService}
}

// StatusReport handles GET /reports/status.
func (h *ReportsHandler) StatusReport(c *fiber.Ctx) error {
	counts, err := h.grievances.StatusReport(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatusReportResponse{
		Open:       counts[domain.GrievanceStatusOpen],
		InProgress: counts[domain.GrievanceStatusInProgress],
		Resolved:   counts[domain.GrievanceStatusResolved],
	}})
}
