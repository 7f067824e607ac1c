package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/retail_backend/models"
	"github.com/mmdatafocus/retail_backend/utils"
)

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

func getInvoiceSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.GetInvoiceSettings(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// getSettingHandler falls back to the built-in default for known keys that
// were never stored.
func getSettingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		value, found, err := models.GetSetting(c.Request.Context(), key)
		if err != nil {
			respondError(c, err)
			return
		}
		if !found {
			defaultValue, known := models.DefaultSettingValues()[key]
			if !known {
				respondError(c, utils.NewNotFoundError("setting "+key))
				return
			}
			c.JSON(http.StatusOK, gin.H{"key": key, "value": defaultValue, "default": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": key, "value": value, "default": false})
	}
}

func updateSettingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
		setting, err := models.UpsertSetting(c.Request.Context(), c.Param("key"), req.Value)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, setting)
	}
}
