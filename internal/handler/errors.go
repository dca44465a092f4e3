package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/repository"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/service"
)

// fail maps a DataService error onto the response envelope. Configuration and
// remote errors keep their own message.
func fail(c *gin.Context, err error) {
	var cfgErr *service.ConfigurationError
	var remoteErr *service.RemoteError

	switch {
	case errors.As(err, &cfgErr):
		response.FailWithMessage(c, http.StatusPreconditionFailed, response.ErrRemoteModeRequired, cfgErr.Error())
	case errors.Is(err, repository.ErrDuplicateSubdomain), errors.Is(err, repository.ErrDuplicateEmail):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, err.Error())
	case errors.As(err, &remoteErr):
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrRemoteOperationFailed, remoteErr.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
