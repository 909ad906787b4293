package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fuentes válidas para Aid.
const (
	AidSourceDonation = "donation"
	AidSourcePurchase = "purchase"
	AidSourcePartner  = "partner"
)

// Aid representa un evento inmutable de entrega de ayuda a una familia.
// Solo se crea (transaccionalmente, con sus efectos secundarios) o la elimina un admin;
// nunca se actualiza.
type Aid struct {
	ID             string
	OrganizationID string
	FamilyID       string
	Type           string // CategoryID
	ArticleID      string // vacío si la ayuda no sale del stock registrado
	Quantity       decimal.Decimal
	Date           time.Time
	VolunteerID    string // usuario que entregó
	Source         string // donation, purchase, partner
	Notes          string
	ProofURL       string
	CreatedAt      time.Time
}

// ValidSource indica si la fuente es una de las permitidas.
func ValidSource(s string) bool {
	return s == AidSourceDonation || s == AidSourcePurchase || s == AidSourcePartner
}
