// Package handlers contains the Gin HTTP handlers for the REST API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/errs"
	"github.com/garagemlabs/garagem-api/pkg/response"
)

// respondDomainError translates service-layer sentinels into HTTP statuses.
// Unknown errors are logged server-side and surfaced as an opaque 500.
func respondDomainError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, errs.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "usuário não encontrado", nil)
	case errors.Is(err, errs.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "acesso negado", nil)
	case errors.Is(err, errs.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "credenciais inválidas", nil)
	case errors.Is(err, errs.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "email já cadastrado", nil)
	case errors.Is(err, errs.ErrDuplicatePlate):
		response.Error[any](c, http.StatusConflict, "placa já cadastrada", nil)
	case errors.Is(err, errs.ErrAlreadyShared):
		response.Error[any](c, http.StatusConflict, "veículo já compartilhado com este usuário", nil)
	case errors.Is(err, errs.ErrSelfShare):
		response.Error[any](c, http.StatusBadRequest, "não é possível compartilhar com o próprio dono", nil)
	default:
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
