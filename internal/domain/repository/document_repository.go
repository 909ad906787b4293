package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para los metadatos de
// FamilyDocument (DIP). El binario vive en el object storage, nunca aquí.
type DocumentRepository interface {
	Create(doc *entity.FamilyDocument) error
	GetByID(id string) (*entity.FamilyDocument, error)
	ListByFamily(familyID string) ([]*entity.FamilyDocument, error)
	Delete(id string) error
}
