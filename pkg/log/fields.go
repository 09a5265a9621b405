package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches pkg/middleware/auth.go keys)
	FieldUserID = "user_id"
	FieldEmail  = "email"

	// Service
	FieldService = "service"

	// Search
	FieldQuery    = "query"
	FieldCategory = "category"
	FieldCacheKey = "cache_key"
)
