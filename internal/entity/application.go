package entity

import (
	"time"

	"github.com/jobtrackr/backend/pkg/enum"
)

type ApplicationStatus string

var (
	ApplicationApplied   = enum.New(ApplicationStatus("applied"))
	ApplicationInterview = enum.New(ApplicationStatus("interview"))
	ApplicationOffer     = enum.New(ApplicationStatus("offer"))
	ApplicationRejected  = enum.New(ApplicationStatus("rejected"))
)

type ApplicationType string

var (
	ApplicationRemote = enum.New(ApplicationType("remote"))
	ApplicationOnsite = enum.New(ApplicationType("onsite"))
	ApplicationHybrid = enum.New(ApplicationType("hybrid"))
)

// Application is the authoritative activity record the engine collects facts
// from. Its CRUD surface lives in another service; this engine only reads it.
type Application struct {
	Base

	UserID string `gorm:"index"`

	CompanyName string
	Position    string
	Status      ApplicationStatus
	Type        ApplicationType

	// AppliedAt is the submission instant; calendar days for streaks and the
	// time-of-day checks are derived from it in the engine's reference
	// timezone.
	AppliedAt time.Time

	IsTargetCompany bool
	HasCoverLetter  bool
	HasResume       bool
	HasNotes        bool
}
