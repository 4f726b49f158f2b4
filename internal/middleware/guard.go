package middleware

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GuardMiddleware protects a view. A request that fails the rule is
// redirected before the handler runs, so it never reaches the backend.
func GuardMiddleware(rule guard.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Evaluate(CurrentSession(c), rule)
		if decision.Allowed {
			c.Next()
			return
		}

		metrics.GuardRedirects.WithLabelValues(decision.Reason).Inc()
		logger.Debug("Guard redirect",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", decision.Reason),
			zap.String("redirect_to", decision.RedirectTo))

		c.Redirect(http.StatusFound, decision.RedirectTo)
		c.Abort()
	}
}
