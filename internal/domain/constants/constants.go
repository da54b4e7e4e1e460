// Package constants holds identifiers shared between configuration and the
// provider switches in infra.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store providers.
const (
	StoreProviderMemory    = "memory"
	StoreProviderFirestore = "firestore"
)

// Identity providers.
const (
	AuthProviderLocal    = "local"
	AuthProviderFirebase = "firebase"
)

// Notification senders used by the worker.
const (
	NotifierLog = "log"
	NotifierFCM = "fcm"
)

// Notification targets.
const (
	// UserTopicPrefix is prepended to a uid to form the per-user FCM topic.
	UserTopicPrefix = "user-"
	// AdminRecipient is the recipient id stored on messages sent by clients.
	AdminRecipient = "admin"
)

// Request headers and query parameters.
const (
	HeaderRequestID  = "X-Request-Id"
	QueryParamToken  = "token"
	AttrRequestID    = "request_id"
	AttrEventType    = "event_type"
	ProfilePicPrefix = "profile-pictures/"
)
