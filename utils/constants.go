// File: utils/constants.go
package utils

// Gin context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextMobile = "mobile"
	ContextAdmin  = "isAdmin"
)
