package model

// Profile holds the client fields collected at registration.
// Everything except TaxID is opaque to the ledger.
type Profile struct {
	TaxID     string
	Name      string
	BirthDate string // free text, as typed by the operator
	Address   string
}
