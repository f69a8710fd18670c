package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ReportClientErrorHandler takes whatever payload the frontend sends
// and logs it. No schema is enforced.
func ReportClientErrorHandler(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read error report"})
		return
	}

	log.Warn().
		Str("remote", c.ClientIP()).
		RawJSON("payload", normalizeJSON(body)).
		Msg("client error report")

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// normalizeJSON keeps RawJSON from panicking on non-JSON payloads.
func normalizeJSON(body []byte) []byte {
	if len(body) == 0 || !json.Valid(body) {
		quoted, _ := json.Marshal(string(body))
		return quoted
	}
	return body
}
