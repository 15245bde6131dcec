package routes

import (
	"veyra/actions"
	"veyra/middleware"
	"veyra/ratelim"
	"veyra/realtime"

	"github.com/julienschmidt/httprouter"
)

// AddActionRoutes wires the owner approval workflow plus the customer's
// counter-offer response endpoint.
func AddActionRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, hub *realtime.Hub) {
	router.GET("/api/agent/actions",
		middleware.Authenticate(actions.GetActions))
	router.GET("/api/agent/actions/:actionid",
		middleware.Authenticate(actions.GetAction))

	router.POST("/api/agent/actions/:actionid/approve",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(actions.ApproveAction(hub)))
	router.POST("/api/agent/actions/:actionid/decline",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(actions.DeclineAction(hub)))
	router.POST("/api/agent/actions/:actionid/reply",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(actions.ReplyToAction(hub)))
	router.POST("/api/agent/actions/:actionid/modify",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(actions.ModifyAction(hub)))

	// Customers respond to counter-offers; anonymous conversations stay open.
	router.POST("/api/agent/actions/:actionid/respond",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(actions.RespondCounterOffer(hub)))
}
