package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/aid"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
)

// AidHandler registro y consulta de ayudas entregadas. El alta corre en una
// transacción que descuenta stock, concilia necesidades y toca LastVisitAt.
type AidHandler struct {
	createUC  *aid.CreateAidUseCase
	queryUC   *aid.QueryUseCase
	receiptUC *aid.ReceiptUseCase
}

// NewAidHandler construye el handler.
func NewAidHandler(createUC *aid.CreateAidUseCase, queryUC *aid.QueryUseCase, receiptUC *aid.ReceiptUseCase) *AidHandler {
	return &AidHandler{createUC: createUC, queryUC: queryUC, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Registrar ayuda entregada
// @Description  Descuenta stock si la ayuda referencia un artículo, concilia
// @Description  las necesidades abiertas del mismo tipo y actualiza la última
// @Description  visita de la familia. Un doble submit devuelve la ayuda original.
// @Tags         aids
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAidRequest  true  "Datos de la ayuda"
// @Success      201   {object}  dto.AidResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/aids [post]
func (h *AidHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FamilyID == "" || in.Type == "" || in.Source == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "family_id, type y source son requeridos"})
	}
	out, err := h.createUC.Create(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "source inválida o cantidad no positiva"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familia o artículo no encontrado"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el recurso pertenece a otra organización"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ayudas de la organización
// @Tags         aids
// @Security     Bearer
// @Produce      json
// @Param        family_id  query  string  false  "Filtro por familia"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AidListResponse
// @Router       /api/aids [get]
func (h *AidHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.queryUC.List(GetOrganizationID(c), c.Query("family_id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ayuda por ID
// @Tags         aids
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ayuda"
// @Success      200  {object}  dto.AidResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aids/{id} [get]
func (h *AidHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ayuda no encontrada"})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante de entrega en PDF
// @Tags         aids
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la ayuda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aids/{id}/receipt [get]
func (h *AidHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.receiptUC.Generate(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ayuda no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante_`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}

// Delete godoc
// @Summary      Eliminar ayuda (admin)
// @Description  Borra el registro sin revertir stock ni necesidades.
// @Tags         aids
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ayuda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aids/{id} [delete]
func (h *AidHandler) Delete(c *fiber.Ctx) error {
	if err := h.queryUC.Delete(GetOrganizationID(c), GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ayuda no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
