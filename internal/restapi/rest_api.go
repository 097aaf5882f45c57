package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"convertkit.dev/internal/app"
	"convertkit.dev/internal/appconf"
	"convertkit.dev/internal/logging"
	"convertkit.dev/internal/utils"
	"convertkit.dev/internal/webui"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	trusted, err := utils.ParseTrustedProxies(app.Config.TrustedProxies)
	if err != nil {
		logging.LogError(app.Logger, "ignoring trusted proxies", err)
		trusted = nil
	}
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, trusted...),
	}
}

// Handler returns the routed API wrapped in the middleware chain:
// request id, request logging, security headers, rate limiting, compression.
// Outside production the debug pages are mounted under /debug/.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	if api.Config.Env != appconf.Production {
		webui.New(api.Application).SetWebUIRoutes(router)
	}

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}

// Shutdown releases background resources held by the middleware.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
