package application

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	StatusDraft       ApplicationStatus = "draft"
	StatusReady       ApplicationStatus = "ready"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWaitlisted  ApplicationStatus = "waitlisted"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// SubmitChannel is how the application was delivered to the provider.
type SubmitChannel string

const (
	ChannelPlatformEmail SubmitChannel = "platform_email"
	ChannelExternalLink  SubmitChannel = "external_link"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusSubmitted, StatusUnderReview,
		StatusAccepted, StatusRejected, StatusWaitlisted, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsEditable returns true while content fields may still be changed.
func (s ApplicationStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusReady
}

// IsDecision returns true for terminal decision states that stamp result_at.
func (s ApplicationStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWaitlisted
}

// Label returns the user-facing notification title for a status, and false
// for statuses that do not notify (draft, ready).
func (s ApplicationStatus) Label() (string, bool) {
	switch s {
	case StatusSubmitted:
		return "Application Submitted", true
	case StatusUnderReview:
		return "Application Under Review", true
	case StatusAccepted:
		return "Application Accepted!", true
	case StatusRejected:
		return "Application Not Selected", true
	case StatusWaitlisted:
		return "Application Waitlisted", true
	case StatusWithdrawn:
		return "Application Withdrawn", true
	default:
		return "", false
	}
}

// GetAllApplicationStatuses returns all valid application statuses
func GetAllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusDraft,
		StatusReady,
		StatusSubmitted,
		StatusUnderReview,
		StatusAccepted,
		StatusRejected,
		StatusWaitlisted,
		StatusWithdrawn,
	}
}

func (c SubmitChannel) String() string {
	return string(c)
}

func (c SubmitChannel) IsValid() bool {
	return c == ChannelPlatformEmail || c == ChannelExternalLink
}
