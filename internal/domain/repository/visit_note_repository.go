package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// VisitNoteRepository define el puerto de persistencia para VisitNote (DIP).
type VisitNoteRepository interface {
	Create(note *entity.VisitNote) error
	GetByID(id string) (*entity.VisitNote, error)
	ListByFamily(familyID string, limit, offset int) ([]*entity.VisitNote, error)
	Delete(id string) error
}
