package model

// UserEntry is a registered visitor's contact details.
// ID is supplied by the caller and is the document's primary key.
type UserEntry struct {
	ID         string `json:"id"`
	QRCode     string `json:"qrCode"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}
