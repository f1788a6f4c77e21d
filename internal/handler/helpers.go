package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/Nikise23/optica-mia/internal/apierror"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCajaCerrada),
		errors.Is(err, service.ErrSaldoInsuficiente),
		errors.Is(err, service.ErrSinStock):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrValidacion):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno"))
	}
}

// parseID parses the :id path param as a UUID, writing the 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// parseFecha parses the :fecha path param (YYYY-MM-DD), writing the 400 on failure.
func parseFecha(c *gin.Context) (time.Time, bool) {
	fecha, err := time.Parse("2006-01-02", c.Param("fecha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, se espera YYYY-MM-DD"))
		return time.Time{}, false
	}
	return fecha, true
}
