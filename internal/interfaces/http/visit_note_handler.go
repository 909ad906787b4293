package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
	"github.com/jpvargas/asistencia-api/internal/domain"
)

// VisitNoteHandler notas de visita a familias. El alta actualiza la última
// visita registrada de la familia.
type VisitNoteHandler struct {
	uc *usecase.VisitNoteUseCase
}

// NewVisitNoteHandler construye el handler.
func NewVisitNoteHandler(uc *usecase.VisitNoteUseCase) *VisitNoteHandler {
	return &VisitNoteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar nota de visita
// @Tags         visit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVisitNoteRequest  true  "Datos de la visita"
// @Success      201   {object}  dto.VisitNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visit-notes [post]
func (h *VisitNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVisitNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FamilyID == "" || in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "family_id y content son requeridos"})
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

// ListByFamily godoc
// @Summary      Listar notas de visita de una familia
// @Tags         visit-notes
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la familia"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.VisitNoteListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id}/visit-notes [get]
func (h *VisitNoteHandler) ListByFamily(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFamily(GetOrganizationID(c), c.Params("id"), limit, offset)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota de visita (admin)
// @Description  No revierte la última visita registrada de la familia.
// @Tags         visit-notes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visit-notes/{id} [delete]
func (h *VisitNoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrganizationID(c), GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
