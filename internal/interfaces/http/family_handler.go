package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
	"github.com/jpvargas/asistencia-api/internal/domain"
)

// FamilyHandler CRUD de familias beneficiarias y de sus menores.
type FamilyHandler struct {
	uc *usecase.FamilyUseCase
}

// NewFamilyHandler construye el handler.
func NewFamilyHandler(uc *usecase.FamilyUseCase) *FamilyHandler {
	return &FamilyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar familia beneficiaria
// @Tags         families
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFamilyRequest  true  "Datos de la familia"
// @Success      201   {object}  dto.FamilyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/families [post]
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar familias, con búsqueda por nombre insensible a acentos
// @Tags         families
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Texto a buscar en el nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.FamilyListResponse
// @Router       /api/families [get]
func (h *FamilyHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), c.Query("q"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener familia por ID
// @Tags         families
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la familia"
// @Success      200  {object}  dto.FamilyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id} [get]
func (h *FamilyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar familia
// @Tags         families
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la familia"
// @Param        body  body  dto.UpdateFamilyRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.FamilyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/families/{id} [put]
func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetOrganizationID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar familia y sus registros asociados (admin)
// @Tags         families
// @Security     Bearer
// @Param        id  path  string  true  "ID de la familia"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id} [delete]
func (h *FamilyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrganizationID(c), GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateChild godoc
// @Summary      Registrar menor de una familia
// @Tags         families
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la familia"
// @Param        body  body  dto.CreateChildRequest  true  "Datos del menor"
// @Success      201   {object}  dto.ChildResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/families/{id}/children [post]
func (h *FamilyHandler) CreateChild(c *fiber.Ctx) error {
	var in dto.CreateChildRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "first_name es requerido"})
	}
	out, err := h.uc.CreateChild(GetOrganizationID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListChildren godoc
// @Summary      Listar menores de una familia
// @Tags         families
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la familia"
// @Success      200  {array}  dto.ChildResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/families/{id}/children [get]
func (h *FamilyHandler) ListChildren(c *fiber.Ctx) error {
	out, err := h.uc.ListChildren(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateChild godoc
// @Summary      Actualizar menor
// @Tags         families
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        childId  path  string  true  "ID del menor"
// @Param        body     body  dto.UpdateChildRequest  true  "Datos a actualizar"
// @Success      200  {object}  dto.ChildResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/children/{childId} [put]
func (h *FamilyHandler) UpdateChild(c *fiber.Ctx) error {
	var in dto.UpdateChildRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateChild(GetOrganizationID(c), GetUserID(c), c.Params("childId"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteChild godoc
// @Summary      Eliminar menor
// @Tags         families
// @Security     Bearer
// @Param        childId  path  string  true  "ID del menor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/children/{childId} [delete]
func (h *FamilyHandler) DeleteChild(c *fiber.Ctx) error {
	if err := h.uc.DeleteChild(GetOrganizationID(c), GetUserID(c), c.Params("childId")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
