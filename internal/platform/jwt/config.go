// Package jwtmw provides JWT token generation and Gin authentication middleware.
package jwtmw

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// ContextUserID is the Gin context key under which the authenticated user's ID is stored.
const ContextUserID = "userID"
