package model

// AddressKind discriminates the two postal snapshots an order may carry.
type AddressKind string

const (
	AddressKindBilling  AddressKind = "billing"
	AddressKindShipping AddressKind = "shipping"
)

// Address is a postal address snapshot owned by an order.
type Address struct {
	Kind       AddressKind
	Company    string
	FirstName  string
	LastName   string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Region     string
	Country    string
	Phone      string
}
