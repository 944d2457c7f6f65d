package domain

import "time"

// JobStatus is the lifecycle state of a job as stored by the backend.
// The values are the backend's wire values.
type JobStatus string

// Job statuses. The set is closed; anything else fails validation.
const (
	JobStatusPending    JobStatus = "pendiente"
	JobStatusInProgress JobStatus = "en_progreso"
	JobStatusCompleted  JobStatus = "completado"
	JobStatusCancelled  JobStatus = "cancelado"
)

// IsValid returns true if the status is one of the four known values.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for completado and cancelado.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// Label returns the human-readable status.
func (s JobStatus) Label() string {
	switch s {
	case JobStatusPending:
		return "Pending"
	case JobStatusInProgress:
		return "In progress"
	case JobStatusCompleted:
		return "Completed"
	case JobStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// String returns the wire value.
func (s JobStatus) String() string {
	return string(s)
}

// Party identifies which side of a job a user is on.
type Party int

// Job parties.
const (
	PartyNone Party = iota
	PartyContractor
	PartyVendor
)

// String returns the string representation.
func (p Party) String() string {
	switch p {
	case PartyContractor:
		return "contractor"
	case PartyVendor:
		return "vendor"
	default:
		return "none"
	}
}

// Job is an engagement between a contractor and a vendor for one service.
type Job struct {
	ID           int64
	ServiceID    int64
	ContractorID int64
	VendorID     int64

	// Service, Contractor and Vendor are embedded when the backend includes them.
	Service    *Service
	Contractor *User
	Vendor     *User

	Status JobStatus

	// ClientConfirmed is set when the contractor confirms completion.
	ClientConfirmed bool
	// VendorConfirmed is set when the vendor confirms completion.
	VendorConfirmed bool

	TotalAmount float64
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// EffectiveStatus is the status to display. Both confirmations set means
// completed, even if the stored status has not caught up yet.
func (j Job) EffectiveStatus() JobStatus {
	if j.ClientConfirmed && j.VendorConfirmed {
		return JobStatusCompleted
	}
	return j.Status
}

// IsActive returns true while the job is pending or in progress.
func (j Job) IsActive() bool {
	s := j.EffectiveStatus()
	return s == JobStatusPending || s == JobStatusInProgress
}

// PartyOf returns which side of the job userID is on.
func (j Job) PartyOf(userID int64) Party {
	switch userID {
	case 0:
		return PartyNone
	case j.contractorID():
		return PartyContractor
	case j.vendorID():
		return PartyVendor
	default:
		return PartyNone
	}
}

// ConfirmedBy reports whether the given party has confirmed completion.
func (j Job) ConfirmedBy(p Party) bool {
	switch p {
	case PartyContractor:
		return j.ClientConfirmed
	case PartyVendor:
		return j.VendorConfirmed
	default:
		return false
	}
}

// ServiceTitle returns the embedded service title or an empty string.
func (j Job) ServiceTitle() string {
	if j.Service == nil {
		return ""
	}
	return j.Service.Title
}

// Counterpart returns the other party's user summary for the viewer, if embedded.
func (j Job) Counterpart(viewerID int64) *User {
	switch j.PartyOf(viewerID) {
	case PartyContractor:
		return j.Vendor
	case PartyVendor:
		return j.Contractor
	default:
		return nil
	}
}

func (j Job) contractorID() int64 {
	if j.ContractorID == 0 && j.Contractor != nil {
		return j.Contractor.ID
	}
	return j.ContractorID
}

func (j Job) vendorID() int64 {
	if j.VendorID == 0 && j.Vendor != nil {
		return j.Vendor.ID
	}
	return j.VendorID
}

// serviceID returns ServiceID, falling back to the embedded service.
func (j Job) serviceID() int64 {
	if j.ServiceID == 0 && j.Service != nil {
		return j.Service.ID
	}
	return j.ServiceID
}

// IsForService reports whether the job belongs to serviceID.
func (j Job) IsForService(serviceID int64) bool {
	return j.serviceID() == serviceID
}

// LatestForService returns the most recently created job for serviceID,
// or nil when none exists.
func LatestForService(jobs []Job, serviceID int64) *Job {
	var latest *Job
	for i := range jobs {
		if !jobs[i].IsForService(serviceID) {
			continue
		}
		if latest == nil || jobs[i].CreatedAt.After(latest.CreatedAt) {
			latest = &jobs[i]
		}
	}
	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}

// HasActiveJob reports whether contractorID has a pending or in-progress
// job for serviceID among jobs.
func HasActiveJob(jobs []Job, contractorID, serviceID int64) bool {
	for i := range jobs {
		j := &jobs[i]
		if j.IsForService(serviceID) && j.PartyOf(contractorID) == PartyContractor && j.IsActive() {
			return true
		}
	}
	return false
}

// HireRequest is the job creation payload.
type HireRequest struct {
	ServiceID    int64
	ContractorID int64
	VendorID     int64
	StartDate    time.Time
	EndDate      time.Time
	TotalAmount  float64
}
