package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service"
	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{dmn.ErrUsernameTooShort, http.StatusBadRequest},
	{dmn.ErrUsernameTooLong, http.StatusBadRequest},
	{dmn.ErrInvalidUsernameFormat, http.StatusBadRequest},
	{dmn.ErrInvalidDisplayName, http.StatusBadRequest},
	{dmn.ErrWeakPassword, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrNoUserClaims, http.StatusUnauthorized},
	{service.ErrUsernameTaken, http.StatusConflict},
}

// abortWithError writes the status that matches err.
func abortWithError(ctx *gin.Context, err error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			ctx.AbortWithStatusJSON(es.status, gin.H{"error": err.Error()})
			return
		}
	}
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
