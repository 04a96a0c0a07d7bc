// Package envelope defines the single response shape every endpoint speaks:
// a boolean status, a short machine-readable message, an optional human
// longMessage, and the payload. Handlers and middlewares both write through
// it so clients never see two error dialects.
package envelope

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Message string

const (
	OK                   Message = "OK"
	Created              Message = "CREATED"
	BadRequest           Message = "BAD_REQUEST"
	Unauthorized         Message = "UNAUTHORIZED"
	Forbidden            Message = "FORBIDDEN"
	NotFound             Message = "NOT_FOUND"
	Conflict             Message = "CONFLICT"
	TooManyRequests      Message = "TOO_MANY_REQUESTS"
	UnsupportedMediaType Message = "UNSUPPORTED_MEDIA_TYPE"
	Internal             Message = "INTERNAL_SERVER_ERROR"
)

var statusOf = map[Message]int{
	OK:                   http.StatusOK,
	Created:              http.StatusCreated,
	BadRequest:           http.StatusBadRequest,
	Unauthorized:         http.StatusUnauthorized,
	Forbidden:            http.StatusForbidden,
	NotFound:             http.StatusNotFound,
	Conflict:             http.StatusConflict,
	TooManyRequests:      http.StatusTooManyRequests,
	UnsupportedMediaType: http.StatusUnsupportedMediaType,
	Internal:             http.StatusInternalServerError,
}

// StatusOf maps a message to its HTTP status. Unknown messages are a
// programming error and collapse to 500.
func StatusOf(m Message) int {
	if s, ok := statusOf[m]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type Envelope struct {
	Status      bool        `json:"status"`
	Message     Message     `json:"message"`
	LongMessage string      `json:"longMessage,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

func Write(c *gin.Context, m Message, longMessage string, data interface{}) {
	c.JSON(StatusOf(m), Envelope{
		Status:      m == OK || m == Created,
		Message:     m,
		LongMessage: longMessage,
		Data:        data,
	})
}

// Abort writes the envelope and stops the handler chain; guards use this.
func Abort(c *gin.Context, m Message, longMessage string) {
	c.AbortWithStatusJSON(StatusOf(m), Envelope{
		Status:      false,
		Message:     m,
		LongMessage: longMessage,
	})
}
