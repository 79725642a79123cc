// Package contexthelpers carries request-scoped values through the handler
// chain.
package contexthelpers

type contextKey string

const UserIDContextKey = contextKey("userID")
const CurrentPathContextKey = contextKey("currentPath")
