// Package model contains the persisted catalog entities.
// They carry no JSON or database tags; wire shapes live in package dto.
package model

// Record is the column layout shared by every catalog table.
type Record struct {
	ID   int64
	Name string
}

// NameMaxLength mirrors the VARCHAR(100) column constraint.
const NameMaxLength = 100

// Entity is the set of catalog record types handled by the generic
// repository, service and HTTP layers. Each member has Record's layout,
// so values convert to and from Record directly.
type Entity interface {
	Category | Streaming
	// Kind is the lowercase resource name, used as the table name.
	Kind() string
}
