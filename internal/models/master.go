// Package models holds the typed records exchanged between services and
// storage backends. Serialization details (bson documents, SQL columns) stay
// inside the backend implementations.
package models

import (
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/strx"
)

// MasterRecord is a directory entry keyed by a unique mobile number.
// The ID is opaque and generated by the backend at creation time.
// Optional descriptive fields are stored as absent/NULL when empty.
type MasterRecord struct {
	ID          string
	MobileNo    string
	Project     string
	TownType    string
	Requester   string
	RDCode      string
	RDName      string
	Town        string
	State       string
	Designation string
	Name        string
	GSTNo       string
	EmailID     string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize trims all string fields in place. Backends call this before
// persisting so uniqueness checks see identical values on both backends.
func (r *MasterRecord) Normalize() {
	r.MobileNo = strx.Clean(r.MobileNo)
	r.Project = strx.Clean(r.Project)
	r.TownType = strx.Clean(r.TownType)
	r.Requester = strx.Clean(r.Requester)
	r.RDCode = strx.Clean(r.RDCode)
	r.RDName = strx.Clean(r.RDName)
	r.Town = strx.Clean(r.Town)
	r.State = strx.Clean(r.State)
	r.Designation = strx.Clean(r.Designation)
	r.Name = strx.Clean(r.Name)
	r.GSTNo = strx.Clean(r.GSTNo)
	r.EmailID = strx.Clean(r.EmailID)
	r.CreatedBy = strx.Clean(r.CreatedBy)
	r.UpdatedBy = strx.Clean(r.UpdatedBy)
}
