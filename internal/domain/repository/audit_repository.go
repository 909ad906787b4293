package repository

import "github.com/jpvargas/asistencia-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para AuditLog (DIP).
// Solo escritura desde los casos de uso; lectura para el endpoint de admin.
type AuditRepository interface {
	Create(log *entity.AuditLog) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.AuditLog, error)
}
