package manifold

import "golang.org/x/exp/slices"

// Permission names are operation-specific constants so tests can assert on
// exact denial reasons.
type Permission string

const (
	PermListFeedTypes    Permission = "FEEDS_LIST_TYPES"
	PermCreateFeed       Permission = "FEEDS_CREATE_FEED"
	PermListFeeds        Permission = "FEEDS_LIST_FEEDS"
	PermFetchFeedContent Permission = "FEEDS_FETCH_CONTENT"
	PermWriteEvent       Permission = "EVENTS_UPDATE"
	PermReadPlugins      Permission = "PLUGINS_READ"
	PermWritePlugins     Permission = "PLUGINS_WRITE"
)

// AllPermissions returns every permission this subsystem checks. Used when
// seeding the grants of an administrator account.
func AllPermissions() []Permission {
	return []Permission{
		PermListFeedTypes,
		PermCreateFeed,
		PermListFeeds,
		PermFetchFeedContent,
		PermWriteEvent,
		PermReadPlugins,
		PermWritePlugins,
	}
}

// PermissionService guards every mutating or sensitive read operation. Each
// Ensure method returns nil when allowed or a populated PermissionDenied
// error; implementations differ only in how they determine the allowed set.
// Use cases always run the check before validation or lookups, so a denied
// caller never learns whether the target entity exists.
type PermissionService interface {
	EnsureListFeedTypes(req RequestContext) *Error
	EnsureCreateFeed(req RequestContext) *Error
	EnsureListFeeds(req RequestContext) *Error
	EnsureFetchFeedContent(req RequestContext) *Error
	EnsureWriteEvent(req RequestContext) *Error
	EnsureReadPlugins(req RequestContext) *Error
	EnsureWritePlugins(req RequestContext) *Error
}

// permissionEnsurer maps the per-operation Ensure methods onto a single
// ensure function, so each implementation only supplies its policy.
type permissionEnsurer struct {
	ensure func(req RequestContext, permission Permission) *Error
}

func (p permissionEnsurer) EnsureListFeedTypes(req RequestContext) *Error {
	return p.ensure(req, PermListFeedTypes)
}

func (p permissionEnsurer) EnsureCreateFeed(req RequestContext) *Error {
	return p.ensure(req, PermCreateFeed)
}

func (p permissionEnsurer) EnsureListFeeds(req RequestContext) *Error {
	return p.ensure(req, PermListFeeds)
}

func (p permissionEnsurer) EnsureFetchFeedContent(req RequestContext) *Error {
	return p.ensure(req, PermFetchFeedContent)
}

func (p permissionEnsurer) EnsureWriteEvent(req RequestContext) *Error {
	return p.ensure(req, PermWriteEvent)
}

func (p permissionEnsurer) EnsureReadPlugins(req RequestContext) *Error {
	return p.ensure(req, PermReadPlugins)
}

func (p permissionEnsurer) EnsureWritePlugins(req RequestContext) *Error {
	return p.ensure(req, PermWritePlugins)
}

// RolePermissionService allows an operation when the permission is among the
// grants prefetched onto the requesting principal.
type RolePermissionService struct {
	permissionEnsurer
}

func NewRolePermissionService() *RolePermissionService {
	s := &RolePermissionService{}
	s.permissionEnsurer = permissionEnsurer{ensure: s.check}
	return s
}

func (s *RolePermissionService) check(req RequestContext, permission Permission) *Error {
	principal := req.RequestingPrincipal()
	if slices.Contains(principal.Permissions, permission) {
		return nil
	}
	return PermissionDeniedError(permission, principal.UserID)
}

// PermissionStorage resolves the grants of a principal from a live store.
type PermissionStorage interface {
	PermissionsForUser(userID string) ([]Permission, error)
}

// StorePermissionService consults PermissionStorage on every check instead
// of trusting grants attached to the principal.
type StorePermissionService struct {
	permissionEnsurer
	storage PermissionStorage
}

func NewStorePermissionService(storage PermissionStorage) *StorePermissionService {
	s := &StorePermissionService{storage: storage}
	s.permissionEnsurer = permissionEnsurer{ensure: s.check}
	return s
}

func (s *StorePermissionService) check(req RequestContext, permission Permission) *Error {
	principal := req.RequestingPrincipal()
	granted, err := s.storage.PermissionsForUser(principal.UserID)
	if err != nil {
		return InternalError(err, "error resolving permissions for "+principal.UserID)
	}
	if slices.Contains(granted, permission) {
		return nil
	}
	return PermissionDeniedError(permission, principal.UserID)
}

// DenyAllPermissionService denies everything. It backs unauthenticated
// requests and permission-denial tests.
type DenyAllPermissionService struct {
	permissionEnsurer
}

func NewDenyAllPermissionService() *DenyAllPermissionService {
	s := &DenyAllPermissionService{}
	s.permissionEnsurer = permissionEnsurer{ensure: s.check}
	return s
}

func (s *DenyAllPermissionService) check(req RequestContext, permission Permission) *Error {
	return PermissionDeniedError(permission, req.RequestingPrincipal().UserID)
}
