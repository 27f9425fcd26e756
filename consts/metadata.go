package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token prefix
const BearerKey string = "Bearer "

// TraceKey request trace id header
const TraceKey string = "x-md-trace"

// ContentTypeKey Content-Type header key
const ContentTypeKey string = "Content-Type"

// ContentTypeJSON JSON content type
const ContentTypeJSON string = "application/json"

// SessionKey fixed storage key for the persisted admin session record
const SessionKey string = "askdesk_admin_auth"

// SessionFile filename holding the persisted session record
const SessionFile string = SessionKey + ".json"
