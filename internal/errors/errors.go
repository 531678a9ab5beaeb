package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no account matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoPasswordSet is returned for federation-only accounts with no local password.
	ErrNoPasswordSet = errors.New("account has no password set")
	// ErrIncorrectPassword is returned when the password comparison fails.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrMissingFields is returned when name, email or password is absent.
	ErrMissingFields = errors.New("missing name, email, or password")
	// ErrInvalidEmail is returned when the email does not match local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrPasswordTooShort is returned when the password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUnauthenticated is returned when an operation requires a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrTitleRequired is returned when a post title is empty.
	ErrTitleRequired = errors.New("title is required")
	// ErrTitleTooLong is returned when a post title exceeds 150 characters.
	ErrTitleTooLong = errors.New("title cannot exceed 150 characters")
	// ErrPostNotFound is returned for missing posts and for drafts hidden
	// from non-owners; the two cases are deliberately indistinguishable.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor is returned when a write targets a post owned by someone else.
	ErrNotPostAuthor = errors.New("only the author may modify this post")
)

// invalidCredentialsMessage is the uniform client-facing text for every
// authentication failure, so responses never reveal whether the email or
// the password was wrong.
const invalidCredentialsMessage = "invalid email or password"

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The three credential
// failure kinds stay distinct internally (logs, tests) but collapse into one
// generic 401 here to avoid account enumeration.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrNoPasswordSet),
		errors.Is(err, ErrIncorrectPassword):
		return NewHTTPError(http.StatusUnauthorized, invalidCredentialsMessage, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrTitleTooLong):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TITLE")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrNotPostAuthor):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
