// Package autherr is the flat taxonomy of authorization failures. A failure
// is a Kind value plus two pure mappings, Status and Message; there is no
// error hierarchy to walk and nothing to unwrap at the guard boundary.
package autherr

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNoSession             Kind = iota // header absent or malformed, or the token was rejected
	KindAccountDesync                     // verified subject with no account record; reported exactly like NoSession
	KindAccountDisabled                   // account disabled by an administrator
	KindInsufficientPrivilege             // valid session, but the operation needs a higher level
	KindDependencyUnavailable             // store or verifier outage; never an authorization denial
	KindConflict                          // unique-constraint violation on write
)

// Status maps a kind to its HTTP status. Desync deliberately reports as a
// plain missing session so callers cannot probe for provisioning bugs.
func (k Kind) Status() int {
	switch k {
	case KindNoSession, KindAccountDesync, KindAccountDisabled:
		return http.StatusUnauthorized
	case KindInsufficientPrivilege:
		return http.StatusForbidden
	case KindDependencyUnavailable:
		return http.StatusServiceUnavailable
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) Message() string {
	switch k {
	case KindNoSession, KindAccountDesync:
		return "Error: (Unauthorized) Your session appears to be invalid. Please sign in again."
	case KindAccountDisabled:
		return "Error: (Unauthorized) This user has been disabled by an administrator of Co Cleanup"
	case KindInsufficientPrivilege:
		return "Error: (Forbidden) Permission denied"
	case KindDependencyUnavailable:
		return "Error: (Service Unavailable) Unable to query database"
	case KindConflict:
		return "Error: (Conflict) Requested value is already taken"
	default:
		return "Error: Unknown or unhandled error occurred"
	}
}

// Response is the uniform JSON denial body shared by guards and handlers.
type Response struct {
	ErrorMessage string `json:"errorMessage"`
}

func ResponseFor(k Kind) *Response {
	return &Response{ErrorMessage: k.Message()}
}

// ConflictResponse names the conflicting field so the client can point the
// user at the exact value to change.
func ConflictResponse(field string, value string) *Response {
	return &Response{
		ErrorMessage: fmt.Sprintf("Error: (Conflict) The %s '%s' is already taken, please try another", field, value),
	}
}
