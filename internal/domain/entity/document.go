package entity

import "time"

// Tipos de documento de familia.
const (
	DocTypeID          = "id"
	DocTypeProofOfAddr = "proof_of_address"
	DocTypeIncome      = "income_verification"
	DocTypeMedical     = "medical_record"
	DocTypeOther       = "other"
)

// FamilyDocument representa los metadatos de un documento subido para una familia.
// El binario vive solo en el object storage bajo StorageKey; la API nunca devuelve
// bytes crudos, solo URLs firmadas de corta vida generadas por petición.
type FamilyDocument struct {
	ID             string
	OrganizationID string
	FamilyID       string
	Name           string
	DocumentType   string
	MimeType       string
	SizeBytes      int64
	UploadedBy     string // usuario que subió
	StorageKey     string
	CreatedAt      time.Time
}
