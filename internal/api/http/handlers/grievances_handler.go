package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/util/errorutil"
)

// GrievancesHandler exposes grievance endpoints.
type GrievancesHandler struct {
	grievances *service.GrievanceService
}

// NewGrievancesHandler constructs handler.
func NewGrievancesHandler(grievanceService *service.GrievanceService) *GrievancesHandler {
	return &GrievancesHandler{grievances: grievanceService}
}

// Raise handles POST /grievances.
func (h *GrievancesHandler) Raise(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RaiseGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	grievance, err := h.grievances.Raise(c.UserContext(), principal.User, req.Title, req.Description)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": grievanceResponse(grievance),
	})
}

// List handles GET /grievances.
func (h *GrievancesHandler) List(c *fiber.Ctx) error {
	grievances, err := h.grievances.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponses(grievances)})
}

// ListMine handles GET /grievances/mine.
func (h *GrievancesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	grievances, err := h.grievances.ListByUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponses(grievances)})
}

// Search handles GET /grievances/search?q=keyword. The non-empty check
// lives here: the search operation itself accepts any keyword.
func (h *GrievancesHandler) Search(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		return apperrors.NewValidationError("search keyword must not be empty", nil)
	}

	grievances, err := h.grievances.Search(c.UserContext(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponses(grievances)})
}

// UpdateStatus handles PATCH /grievances/:id/status.
func (h *GrievancesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid grievance id", nil)
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.grievances.UpdateStatus(c.UserContext(), principal.User, id, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": strings.ToUpper(strings.TrimSpace(req.Status))}})
}

func grievanceResponse(grievance *domain.Grievance) dto.GrievanceResponse {
	return dto.GrievanceResponse{
		ID:          grievance.ID,
		UserID:      grievance.UserID,
		Title:       grievance.Title,
		Description: grievance.Description,
		Status:      string(grievance.Status),
		CreatedAt:   grievance.CreatedAt,
		ResolvedAt:  grievance.ResolvedAt,
	}
}

func grievanceResponses(grievances []domain.Grievance) []dto.GrievanceResponse {
	result := make([]dto.GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		result = append(result, grievanceResponse(&grievances[i]))
	}
	return result
}
