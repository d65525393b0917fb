package common

const (
	RequestIDHeader = "X-Request-Id"
	UserAgentHeader = "User-Agent"
	UserIDHeader    = "X-User-ID"
	RealIPHeader    = "X-Real-IP"
)

// WsSemaphoreKey carries the connection slot acquired at upgrade time.
const WsSemaphoreKey = "ws_semaphore"
