package constants

// Notification event types
const (
	NotificationTypeApplicationUpdate = "application_update"
)

// Actor tags recorded on timeline entries
const (
	ActorUser   = "user"
	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// Related entity types on notifications
const (
	RelatedTypeApplication = "application"
)
