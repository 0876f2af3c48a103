package manifold

import "github.com/google/uuid"

// Principal is the identity a request executes on behalf of.
type Principal struct {
	UserID      string
	DisplayName string

	// Permissions are the grants prefetched onto the principal when the
	// role-based permission service is in use; nil when grants are
	// resolved through a live store instead.
	Permissions []Permission
}

// RequestContext travels with every use-case request. It is the only channel
// through which permission checks learn who is asking.
type RequestContext interface {
	// RequestToken is an opaque correlation value, unique per request.
	RequestToken() string
	RequestingPrincipal() Principal
}

// AdminRequest is the standard RequestContext built by the transport layer.
type AdminRequest struct {
	token     string
	principal Principal
}

func NewAdminRequest(principal Principal) AdminRequest {
	return AdminRequest{token: uuid.NewString(), principal: principal}
}

func (r AdminRequest) RequestToken() string {
	return r.token
}

func (r AdminRequest) RequestingPrincipal() Principal {
	return r.principal
}
