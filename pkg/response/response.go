package response

import (
	"net/http"

	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/token"
	"anoa.com/kolabboard/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PrincipalKey = "principal"
	UserIDKey    = "user_id"
	LoggerKey    = "logger"
	DebugKey     = "debug_errors"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	p, err := GetPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// GetPrincipal retrieves the verified token identity set by the auth middleware.
func GetPrincipal(c *gin.Context) (token.Principal, error) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return token.Principal{}, apperror.ErrUnauthenticated
	}
	p, ok := v.(token.Principal)
	if !ok {
		return token.Principal{}, apperror.ErrUnauthenticated
	}
	return p, nil
}

// ParamUUID parses a path parameter, answering 400 itself when malformed.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		Logger(c).Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg := apperror.ErrInternal.Error()
		if c.GetBool(DebugKey) {
			msg = err.Error()
		}
		c.JSON(code, gin.H{"error": msg})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Success writes {"message": ..., "data": ...}.
func Success(c *gin.Context, code int, message string, data any) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// Logger returns the request-scoped logger, or a no-op logger outside a request.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// BadRequest answers 400 for a failed bind, formatting validation errors.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}
