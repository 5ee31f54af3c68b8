package httperr

import (
	"scooter-rental/internal/pkg/requestid"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

func New(c *gin.Context, status int, msg string) Response {
	return Response{
		Status: status,
		Error: ErrorBody{
			Message:   msg,
			RequestID: requestid.FromContext(c.Request.Context()),
		},
	}
}

// AbortWithError renders msg to the client and keeps err on the context
// for the logging middleware.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(c, status, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
