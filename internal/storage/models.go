package storage

import "time"

// Visitor status values derived from out_time and security_confirmed.
// Not stored; computed for listings and exports.
const (
	StatusActive          = "Active"
	StatusSecurityPending = "Security Pending"
	StatusReleased        = "Released"
)

type Visitor struct {
	ID                 int64      `db:"id" json:"id"`
	FullName           string     `db:"full_name" json:"full_name"`
	ContactNumber      string     `db:"contact_number" json:"contact_number"`
	DepartmentVisiting string     `db:"department_visiting" json:"department_visiting"`
	PersonToVisit      string     `db:"person_to_visit" json:"person_to_visit"`
	HostEmail          *string    `db:"host_email" json:"host_email,omitempty"`
	InTime             time.Time  `db:"in_time" json:"in_time"`
	OutTime            *time.Time `db:"out_time" json:"out_time,omitempty"`
	Approved           bool       `db:"approved" json:"approved"`
	SecurityConfirmed  bool       `db:"security_confirmed" json:"security_confirmed"`
	SecurityOutTime    *time.Time `db:"security_out_time" json:"security_out_time,omitempty"`
	PhotoPath          *string    `db:"photo_path" json:"photo_path,omitempty"`
	QRCodePath         *string    `db:"qr_code_path" json:"qr_code_path,omitempty"`
	EmailSent          bool       `db:"email_sent" json:"email_sent"`
}

// Status returns the derived lifecycle status of the visitor.
func (v *Visitor) Status() string {
	switch {
	case v.OutTime == nil:
		return StatusActive
	case !v.SecurityConfirmed:
		return StatusSecurityPending
	default:
		return StatusReleased
	}
}

// VisitorStats holds the aggregate counts computed in a single read.
type VisitorStats struct {
	Total           int `db:"total" json:"total"`
	Active          int `db:"active" json:"active"`
	Secured         int `db:"secured" json:"secured"`
	SecurityPending int `db:"security_pending" json:"security_pending"`
}

// Filter selects which visitors a listing returns.
type Filter string

const (
	FilterAll             Filter = ""
	FilterActive          Filter = "active"
	FilterReleased        Filter = "released"
	FilterSecurityPending Filter = "security-pending"
)
