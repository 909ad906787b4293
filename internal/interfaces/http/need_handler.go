package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

// NeedHandler registro y consulta de necesidades. Los listados salen
// ordenados por la prioridad derivada, con las cubiertas al final.
type NeedHandler struct {
	uc *usecase.NeedUseCase
}

// NewNeedHandler construye el handler.
func NewNeedHandler(uc *usecase.NeedUseCase) *NeedHandler {
	return &NeedHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar necesidad de una familia
// @Tags         needs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNeedRequest  true  "Datos de la necesidad"
// @Success      201   {object}  dto.NeedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/needs [post]
func (h *NeedHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FamilyID == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "family_id y type son requeridos"})
	}
	if !validUrgency(in.Urgency) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "urgency debe ser low, medium o high"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar necesidades ordenadas por prioridad
// @Tags         needs
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"  Enums(pending, partial, covered)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.NeedListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/needs [get]
func (h *NeedHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !validNeedStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser pending, partial o covered"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByFamily godoc
// @Summary      Listar necesidades de una familia, ordenadas por prioridad
// @Tags         needs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la familia"
// @Success      200  {array}  dto.NeedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id}/needs [get]
func (h *NeedHandler) ListByFamily(c *fiber.Ctx) error {
	out, err := h.uc.ListByFamily(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener necesidad por ID
// @Tags         needs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la necesidad"
// @Success      200  {object}  dto.NeedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/needs/{id} [get]
func (h *NeedHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "necesidad no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar necesidad
// @Tags         needs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la necesidad"
// @Param        body  body  dto.UpdateNeedRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.NeedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/needs/{id} [put]
func (h *NeedHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Urgency != nil && !validUrgency(*in.Urgency) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "urgency debe ser low, medium o high"})
	}
	if in.Status != nil && !validNeedStatus(*in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser pending, partial o covered"})
	}
	out, err := h.uc.Update(GetOrganizationID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "necesidad no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar necesidad (admin)
// @Tags         needs
// @Security     Bearer
// @Param        id  path  string  true  "ID de la necesidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/needs/{id} [delete]
func (h *NeedHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrganizationID(c), GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "necesidad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validUrgency(u string) bool {
	return u == entity.UrgencyLow || u == entity.UrgencyMedium || u == entity.UrgencyHigh
}

func validNeedStatus(s string) bool {
	return s == entity.NeedStatusPending || s == entity.NeedStatusPartial || s == entity.NeedStatusCovered
}
