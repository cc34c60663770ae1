package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"token-exchange/internal/exchangeerrors"
	model "token-exchange/internal/models"
	"token-exchange/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CallerHeader carries the account the request acts for
const CallerHeader = "X-Account"

// CallerKey is the gin context key under which the authenticated caller is stored
const CallerKey = "caller"

var (
	ErrInvalidTokenID = fmt.Errorf("token id must be an unsigned integer: %w", exchangeerrors.ErrInvalidArgument)
	ErrInvalidAccount = fmt.Errorf("account must be a 0x-prefixed hex address: %w", exchangeerrors.ErrInvalidArgument)
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps exchange error kinds to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, exchangeerrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, exchangeerrors.ErrUnauthorized):
		return http.StatusForbidden, "not permitted"
	case errors.Is(err, exchangeerrors.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, exchangeerrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient funds"
	case errors.Is(err, exchangeerrors.ErrCollaboratorFailure):
		return http.StatusConflict, "settlement failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError writes the mapped error response and logs it
func HandleServiceError(c *gin.Context, handlerName, message string, err error, ctx map[string]any) {
	status, text := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", text, err), text)

	fields := map[string]any{"handler": handlerName, "error": err.Error()}
	for k, v := range ctx {
		fields[k] = v
	}
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ParseAccount validates a hex account string. The zero address is not an account.
func ParseAccount(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAccount)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%q: %w", s, ErrInvalidAccount)
	}
	return addr, nil
}

// ParseTokenID reads the :token_id path parameter
func ParseTokenID(c *gin.Context) (model.TokenID, error) {
	raw := c.Param("token_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTokenID)
	}
	return model.TokenID(id), nil
}

// CallerFrom returns the caller stored by the caller middleware
func CallerFrom(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return common.Address{}, false
	}
	addr, ok := v.(common.Address)
	return addr, ok
}
