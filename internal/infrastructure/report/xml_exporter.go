// Exportador XML del informe de ayudas por período.

package report

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/jpvargas/asistencia-api/internal/application/report"
)

const dateLayout = "2006-01-02"

// XMLExporter implementa report.Exporter con etree.
type XMLExporter struct{}

// NewXMLExporter crea el exportador.
func NewXMLExporter() *XMLExporter {
	return &XMLExporter{}
}

// RenderXML serializa el informe de ayudas con indentación de dos espacios.
func (e *XMLExporter) RenderXML(data report.ExportData) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("aid_report")
	root.CreateAttr("organization_id", data.Organization.ID)
	root.CreateAttr("organization", data.Organization.Name)
	root.CreateAttr("from", data.From.Format(dateLayout))
	root.CreateAttr("to", data.To.Format(dateLayout))
	root.CreateAttr("generated_at", data.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))

	aidsEl := root.CreateElement("aids")
	for _, item := range data.Items {
		el := aidsEl.CreateElement("aid")
		el.CreateAttr("id", item.Aid.ID)

		family := el.CreateElement("family")
		family.CreateAttr("id", item.Aid.FamilyID)
		family.SetText(item.FamilyName)

		category := el.CreateElement("category")
		category.CreateAttr("id", item.Aid.Type)
		category.SetText(item.CategoryName)

		el.CreateElement("quantity").SetText(item.Aid.Quantity.String())
		el.CreateElement("date").SetText(item.Aid.Date.Format(dateLayout))
		el.CreateElement("volunteer_id").SetText(item.Aid.VolunteerID)
		el.CreateElement("source").SetText(item.Aid.Source)
		if item.Aid.Notes != "" {
			el.CreateElement("notes").SetText(item.Aid.Notes)
		}
	}

	summary := root.CreateElement("summary")
	summary.CreateAttr("total", strconv.Itoa(len(data.Items)))

	doc.Indent(2)
	return doc.WriteToBytes()
}
