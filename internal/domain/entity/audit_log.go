package entity

import "time"

// Acciones auditadas.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditLog registra quién hizo qué sobre qué entidad (solo escritura desde los casos de uso).
type AuditLog struct {
	ID             string
	OrganizationID string
	UserID         string
	EntityType     string // family, need, aid, article, ...
	EntityID       string
	Action         string // create, update, delete
	Detail         string
	CreatedAt      time.Time
}
