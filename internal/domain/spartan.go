package domain

// SpartanStatus is the availability state of a directory record.
type SpartanStatus string

const (
	StatusAvailable   SpartanStatus = "available"
	StatusUnavailable SpartanStatus = "unavailable"
)

// Spartan is a single personnel record in the directory listing. The dataset
// is generated once at startup (or loaded from a dataset file) and records
// are never mutated afterwards.
type Spartan struct {
	ID          string
	Name        string
	Designation string
	College     string
	DateJoined  string // d/m/yy
	ApprovedBy  string
	Status      SpartanStatus
	AvatarURL   string
}
