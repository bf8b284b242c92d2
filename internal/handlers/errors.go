package handlers

import (
	"errors"
	"net/http"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/gin-gonic/gin"
)

// Machine-stable error codes. Each taxonomy kind maps to exactly one status;
// storage-internal error text never reaches the wire.
const (
	codeValidation       = "validation"
	codeUnauthenticated  = "unauthenticated"
	codeForbidden        = "forbidden"
	codeNotFound         = "not_found"
	codeStoreUnavailable = "store_unavailable"
)

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dom.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
	case errors.Is(err, dom.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": codeUnauthenticated})
	case errors.Is(err, dom.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": codeForbidden})
	case errors.Is(err, dom.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": codeNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": codeStoreUnavailable})
	}
}
