package models

import "time"

// EmailConfig holds SMTP parameters for outbound mail. One logical document
// per install, upserted under a fixed key.
type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	UpdatedAt    time.Time
}

// Metadata holds the categorical dropdown vocabularies. One logical document
// per install, upserted under a fixed key; individual vocabularies can be
// replaced field-wise.
type Metadata struct {
	Projects     []string  `json:"projects"`
	TownTypes    []string  `json:"town_types"`
	Requesters   []string  `json:"requesters"`
	Designations []string  `json:"designations"`
	Modules      []string  `json:"modules"`
	Issues       []string  `json:"issues"`
	Solutions    []string  `json:"solutions"`
	SolvedOn     []string  `json:"solved_on"`
	CallOn       []string  `json:"call_on"`
	Types        []string  `json:"types"`
	UpdatedAt    time.Time `json:"-"`
}

// MetadataFields lists the vocabulary names accepted by field-wise updates.
var MetadataFields = []string{
	"projects", "town_types", "requesters", "designations", "modules",
	"issues", "solutions", "solved_on", "call_on", "types",
}

// ActivationRecord binds a license holder and issued key to one machine.
type ActivationRecord struct {
	Name        string
	Email       string
	Mobile      string
	Key         string
	HardwareID  string
	ActivatedAt time.Time
}

// AppSettings is the persisted connection profile: last-used backend,
// connection parameters and backup destination. Stored as a singleton so the
// application can auto-connect on the next start.
type AppSettings struct {
	Backend           string
	URI               string
	Database          string
	BackupPath        string
	AuthenticatedUser string
	CreatedAt         time.Time
}
