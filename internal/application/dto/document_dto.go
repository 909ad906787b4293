package dto

import "time"

// UploadDocumentRequest entrada para subir un documento de familia.
// FileData acepta data URL ("data:application/pdf;base64,....") o base64 crudo.
type UploadDocumentRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	DocumentType string `json:"document_type" validate:"required,oneof=id proof_of_address income_verification medical_record other"`
	MimeType     string `json:"mime_type" validate:"required"`
	FileData     string `json:"file_data" validate:"required"`
}

// DocumentResponse salida de un documento: metadatos más una URL firmada de
// descarga de corta vida, generada en cada petición (nunca se persiste).
type DocumentResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	FamilyID       string    `json:"family_id"`
	Name           string    `json:"name"`
	DocumentType   string    `json:"document_type"`
	MimeType       string    `json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	UploadedBy     string    `json:"uploaded_by"`
	DownloadURL    string    `json:"download_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentListResponse lista de documentos de una familia.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
}
