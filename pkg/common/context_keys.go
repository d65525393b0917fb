package common

type contextKey string

const (
	// ActorContextKey holds the JWT subject of the admin making the request.
	ActorContextKey     contextKey = "actor"
	RequestIDContextKey contextKey = "request_id"
)
