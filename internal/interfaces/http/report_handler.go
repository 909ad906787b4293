package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/application/report"
	"github.com/jpvargas/asistencia-api/internal/domain"
)

const reportDateLayout = "2006-01-02"

// ReportHandler exportación de informes de ayudas.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportAids godoc
// @Summary      Exportar ayudas de un período en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        from  query  string  true  "Fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  true  "Fecha final (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/aids/export [get]
func (h *ReportHandler) ExportAids(c *fiber.Ctx) error {
	from, err := time.Parse(reportDateLayout, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
	}
	to, err := time.Parse(reportDateLayout, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
	}
	data, filename, err := h.uc.ExportAidsXML(GetOrganizationID(c), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to no puede ser anterior a from"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
