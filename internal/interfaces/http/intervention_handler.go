package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// InterventionHandler planificación de intervenciones de voluntarios.
type InterventionHandler struct {
	uc *usecase.InterventionUseCase
}

// NewInterventionHandler construye el handler.
func NewInterventionHandler(uc *usecase.InterventionUseCase) *InterventionHandler {
	return &InterventionHandler{uc: uc}
}

// Create godoc
// @Summary      Planificar intervención
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInterventionRequest  true  "Datos de la intervención"
// @Success      201   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/interventions [post]
func (h *InterventionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FamilyID == "" || in.VolunteerID == "" || in.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "family_id, volunteer_id y scheduled_at son requeridos"})
	}
	if !validInterventionKind(in.Kind) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser visit, delivery o assessment"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el voluntario no pertenece a la organización"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar intervenciones con filtros opcionales
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        volunteer_id  query  string  false  "Filtro por voluntario"
// @Param        status        query  string  false  "Filtro por estado"  Enums(planned, done, cancelled)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InterventionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/interventions [get]
func (h *InterventionHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !validInterventionStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser planned, done o cancelled"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), c.Query("volunteer_id"), status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener intervención por ID
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la intervención"
// @Success      200  {object}  dto.InterventionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [get]
func (h *InterventionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intervención no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar intervención
// @Description  Una intervención hecha o cancelada no puede volver a planned.
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la intervención"
// @Param        body  body  dto.UpdateInterventionRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [put]
func (h *InterventionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Kind != nil && !validInterventionKind(*in.Kind) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser visit, delivery o assessment"})
	}
	if in.Status != nil && !validInterventionStatus(*in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser planned, done o cancelled"})
	}
	out, err := h.uc.Update(GetOrganizationID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la intervención ya no está en estado planned"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el voluntario no pertenece a la organización"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intervención no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar intervención (admin)
// @Tags         interventions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la intervención"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [delete]
func (h *InterventionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrganizationID(c), GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "intervención no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validInterventionKind(k string) bool {
	return k == entity.InterventionVisit || k == entity.InterventionDelivery || k == entity.InterventionAssessment
}

func validInterventionStatus(s string) bool {
	return s == entity.InterventionPlanned || s == entity.InterventionDone || s == entity.InterventionCancelled
}
