package handler

import (
	"net/http"

	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP taxonomy. Unknown
// errors become a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case service.IsValidation(err),
		err == service.ErrOwnListLike:
		status = http.StatusBadRequest
		message = err.Error()
	case err == service.ErrInvalidCredentials,
		err == service.ErrInvalidToken,
		err == service.ErrExpiredToken:
		status = http.StatusUnauthorized
		message = err.Error()
	case err == service.ErrNotReviewOwner,
		err == service.ErrNotListOwner,
		err == service.ErrListForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case err == service.ErrUserNotFound,
		err == service.ErrBookNotFound,
		err == service.ErrCoverNotFound,
		err == service.ErrStatusNotFound,
		err == service.ErrReviewNotFound,
		err == service.ErrListNotFound,
		err == service.ErrBookNotInList:
		status = http.StatusNotFound
		message = err.Error()
	case err == service.ErrNameInUse,
		err == service.ErrEmailInUse,
		err == service.ErrReviewExists,
		err == service.ErrBookAlreadyInList:
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}

func currentUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}
