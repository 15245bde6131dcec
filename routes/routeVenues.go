package routes

import (
	"veyra/middleware"
	"veyra/ratelim"
	"veyra/venues"

	"github.com/julienschmidt/httprouter"
)

// AddVenueRoutes wires venue profiles and agent configuration.
func AddVenueRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/venues", venues.GetVenues)
	router.GET("/api/venues/:venueid", venues.GetVenue)

	router.POST("/api/venues",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(venues.CreateVenue))
	router.PUT("/api/venues/:venueid",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(venues.UpdateVenue))
	router.DELETE("/api/venues/:venueid",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(venues.DeleteVenue))

	router.GET("/api/venues/:venueid/agent-config",
		middleware.Authenticate(venues.GetAgentConfig))
	router.PUT("/api/venues/:venueid/agent-config",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(venues.PutAgentConfig))
}
