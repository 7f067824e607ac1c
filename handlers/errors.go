package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/retail_backend/utils"
)

// respondError maps the error taxonomy onto HTTP statuses. Only unexpected
// errors are recorded on the context for the error logger.
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var appErr *utils.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		body["field"] = appErr.Field
	}

	switch {
	case errors.Is(err, utils.ErrValidation), errors.Is(err, utils.ErrComputationPrecondition):
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, utils.ErrConflict):
		c.JSON(http.StatusConflict, body)
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseIdParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, utils.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, utils.NewValidationError(name, "must be a non-negative integer")
	}
	return n, nil
}
