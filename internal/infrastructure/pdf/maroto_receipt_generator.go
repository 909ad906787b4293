// Package pdf implementa el comprobante de entrega de ayuda en PDF.
//
// Layout de la página A5 apaisada:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Organización  │  N° Comprobante/Fecha │
//	│  ───────────────────────────────────────────  │
//	│  FAMILIA: Nombre + dirección                   │
//	│  DETALLE: Categoría | Cantidad | Fuente        │
//	│  ───────────────────────────────────────────  │
//	│  FOOTER: Voluntario + leyenda                  │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jpvargas/asistencia-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa aid.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el comprobante de entrega y devuelve sus bytes.
// category y volunteer pueden venir nil; el comprobante degrada a los IDs.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	aid *entity.Aid,
	org *entity.Organization,
	family *entity.Family,
	category *entity.Category,
	volunteer *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de entrega de ayuda", true).
		WithAuthor(org.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(aid, org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(familyRow(family))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailHeaderRow())
	m.AddRows(detailRow(aid, category))
	if aid.Notes != "" {
		m.AddRows(notesRow(aid))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(aid, volunteer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: organización (izq), número de comprobante y fecha (der).
func headerRow(aid *entity.Aid, org *entity.Organization) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(org.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(org.Address, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(aid.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New(aid.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 11,
			}),
		),
	)
}

func familyRow(family *entity.Family) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Familia beneficiaria", props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
			text.New(family.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(family.Address, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

func detailHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(6).Add(
		col.New(6).Add(text.New("Concepto", header)),
		col.New(3).Add(text.New("Cantidad", header)),
		col.New(3).Add(text.New("Fuente", header)),
	)
}

func detailRow(aid *entity.Aid, category *entity.Category) core.Row {
	concept := aid.Type
	if category != nil {
		concept = category.Name
	}
	cell := props.Text{Size: 9, Top: 1}
	return row.New(7).Add(
		col.New(6).Add(text.New(concept, cell)),
		col.New(3).Add(text.New(aid.Quantity.String(), cell)),
		col.New(3).Add(text.New(sourceLabel(aid.Source), cell)),
	)
}

func notesRow(aid *entity.Aid) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Observaciones: "+aid.Notes, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

func footerRow(aid *entity.Aid, volunteer *entity.User) core.Row {
	name := aid.VolunteerID
	if volunteer != nil {
		name = volunteer.Name
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Entregado por: "+name, props.Text{Size: 8, Top: 2}),
			text.New("Firma: ______________________", props.Text{Size: 8, Top: 9}),
		),
		col.New(5).Add(
			text.New("Documento interno sin valor fiscal", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 9,
			}),
		),
	)
}

func sourceLabel(source string) string {
	switch source {
	case entity.AidSourceDonation:
		return "Donación"
	case entity.AidSourcePurchase:
		return "Compra"
	case entity.AidSourcePartner:
		return "Entidad colaboradora"
	}
	return source
}

// shortID primeros 8 caracteres del UUID, para mostrar como número de comprobante.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
