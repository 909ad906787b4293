package report

import (
	"fmt"
	"time"

	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// ExportItem una ayuda del informe con los nombres resueltos.
type ExportItem struct {
	Aid          entity.Aid
	FamilyName   string
	CategoryName string
}

// ExportData insumo del render del informe de ayudas por período.
type ExportData struct {
	Organization *entity.Organization
	From, To     time.Time
	GeneratedAt  time.Time
	Items        []ExportItem
}

// Exporter renderiza el informe en XML.
type Exporter interface {
	RenderXML(data ExportData) ([]byte, error)
}

// UseCase arma el informe de ayudas entregadas en un período (exportación XML
// para memoria anual y rendición de cuentas ante financiadores).
type UseCase struct {
	aidRepo      repository.AidRepository
	familyRepo   repository.FamilyRepository
	categoryRepo repository.CategoryRepository
	orgRepo      repository.OrganizationRepository
	exporter     Exporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	aidRepo repository.AidRepository,
	familyRepo repository.FamilyRepository,
	categoryRepo repository.CategoryRepository,
	orgRepo repository.OrganizationRepository,
	exporter Exporter,
) *UseCase {
	return &UseCase{
		aidRepo:      aidRepo,
		familyRepo:   familyRepo,
		categoryRepo: categoryRepo,
		orgRepo:      orgRepo,
		exporter:     exporter,
	}
}

// ExportAidsXML genera el XML de ayudas del período [from, to] y el nombre de
// archivo sugerido.
func (uc *UseCase) ExportAidsXML(organizationID string, from, to time.Time) ([]byte, string, error) {
	if to.Before(from) {
		return nil, "", domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(organizationID)
	if err != nil {
		return nil, "", err
	}
	if org == nil {
		return nil, "", domain.ErrNotFound
	}
	aids, err := uc.aidRepo.ListByPeriod(organizationID, from, to)
	if err != nil {
		return nil, "", err
	}

	// Resolver nombres una sola vez por familia y categoría.
	familyNames := map[string]string{}
	categoryNames := map[string]string{}
	items := make([]ExportItem, 0, len(aids))
	for _, a := range aids {
		if _, ok := familyNames[a.FamilyID]; !ok {
			family, err := uc.familyRepo.GetByID(a.FamilyID)
			if err != nil {
				return nil, "", err
			}
			name := ""
			if family != nil {
				name = family.Name
			}
			familyNames[a.FamilyID] = name
		}
		if _, ok := categoryNames[a.Type]; !ok {
			category, err := uc.categoryRepo.GetByID(a.Type)
			if err != nil {
				return nil, "", err
			}
			name := ""
			if category != nil {
				name = category.Name
			}
			categoryNames[a.Type] = name
		}
		items = append(items, ExportItem{
			Aid:          *a,
			FamilyName:   familyNames[a.FamilyID],
			CategoryName: categoryNames[a.Type],
		})
	}

	data, err := uc.exporter.RenderXML(ExportData{
		Organization: org,
		From:         from,
		To:           to,
		GeneratedAt:  time.Now(),
		Items:        items,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ayudas_%s_%s.xml", from.Format("20060102"), to.Format("20060102"))
	return data, filename, nil
}
