package middlewares

// gin context keys; handlers go through the accessor helpers instead.
const (
	CtxRequestID = "request_id"
	CtxUserID    = "auth.userID"
)
