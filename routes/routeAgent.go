package routes

import (
	"veyra/conversations"
	"veyra/middleware"
	"veyra/ratelim"
	"veyra/realtime"

	"github.com/julienschmidt/httprouter"
)

// AddAgentRoutes wires the customer chat surface. Conversation endpoints use
// optional auth so anonymous visitors can talk to the agent.
func AddAgentRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, hub *realtime.Hub) {
	router.POST("/api/agent/conversations",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(conversations.CreateConversation))
	router.GET("/api/agent/conversations/:conversationid",
		middleware.OptionalAuth(conversations.GetConversation))
	router.GET("/api/agent/conversations/:conversationid/messages",
		middleware.OptionalAuth(conversations.GetMessages))
	router.POST("/api/agent/conversations/:conversationid/messages",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(conversations.PostMessage(hub)))

	router.GET("/ws/agent/conversations/:conversationid", realtime.ServeWS(hub))

	router.GET("/api/agent/venues/:venueid/conversations",
		middleware.Authenticate(conversations.GetVenueConversations))
}
