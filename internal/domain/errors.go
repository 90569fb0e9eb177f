package domain

import (
	"net/http"

	"github.com/spec-kit/mosquito-alert/pkg/util"
)

// Sentinel errors for the store layer. Handlers compare with errors.Is and the
// HTTP middleware maps them to status codes via their DomainError fields.
var (
	ErrDuplicateEmail     = util.NewDomainError("DUPLICATE_EMAIL", "email is already registered", http.StatusConflict, nil)
	ErrInvalidCredentials = util.NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
	ErrInvalidToken       = util.NewDomainError("INVALID_TOKEN", "invalid QR token", http.StatusUnauthorized, nil)
	ErrNotAuthenticated   = util.NewDomainError("NOT_AUTHENTICATED", "authentication required", http.StatusUnauthorized, nil)
)
