package logging

// Log field names shared across packages
const (
	FieldInvocationID = "invocationId"
	FieldInvocation   = "invocation"
	FieldAction       = "action"
	FieldQuery        = "query"
	FieldFilter       = "filter"
	FieldReceiver     = "receiver"
	FieldTransport    = "transport"
	FieldPath         = "path"
)
