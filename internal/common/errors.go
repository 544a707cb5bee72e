package common

import "errors"

var (
	// repository errors
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// service errors
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorAccessDenied       = errors.New("access denied")
	ErrorValidation         = errors.New("validation error")
	ErrorAccountNotApproved = errors.New("account not approved")
	ErrorUnsupported        = errors.New("unsupported operation")

	// auth errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)

// Kind is the stable machine-checkable class of an error. Transports map
// it to their own status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAccessDenied
	KindUnauthorized
	KindConflict
	KindValidation
	KindAccountNotApproved
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindAccountNotApproved:
		return "account_not_approved"
	case KindUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// KindOf reports the Kind of the first sentinel found in err's chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrRefreshTokenExpired),
		errors.Is(err, ErrInvalidCredentials):
		return KindUnauthorized
	case errors.Is(err, ErrorConflict):
		return KindConflict
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorAccountNotApproved):
		return KindAccountNotApproved
	case errors.Is(err, ErrorUnsupported):
		return KindUnsupported
	default:
		return KindInternal
	}
}
