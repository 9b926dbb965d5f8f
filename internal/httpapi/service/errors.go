package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto the
// HTTP taxonomy: validation 400, credentials/token 401, ownership 403,
// missing 404, duplicate-state 409, anything else 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")

	ErrUserNotFound   = errors.New("user not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrCoverNotFound  = errors.New("no cover found for this book")
	ErrStatusNotFound = errors.New("book not found in user library")
	ErrReviewNotFound = errors.New("review not found")
	ErrListNotFound   = errors.New("list not found")

	ErrReviewExists      = errors.New("you have already reviewed this book")
	ErrBookAlreadyInList = errors.New("book is already in this list")
	ErrBookNotInList     = errors.New("book not found in this list")

	ErrNotReviewOwner = errors.New("not authorized to modify this review")
	ErrNotListOwner   = errors.New("you can only modify your own lists")
	ErrListForbidden  = errors.New("access denied")

	ErrOwnListLike = errors.New("you cannot like your own list")
)

// ValidationError carries a caller-facing message for malformed or
// out-of-range input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
