package routes

import (
	"veyra/bookings"
	"veyra/calendar"
	"veyra/middleware"

	"github.com/julienschmidt/httprouter"
)

// AddBookingRoutes wires booking listings and the owner calendar.
func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/bookings",
		middleware.Authenticate(bookings.ListBookings))
	router.PUT("/api/bookings/:bookingid/status",
		middleware.Authenticate(bookings.UpdateBookingStatus))

	router.GET("/api/venues/:venueid/blocked-dates",
		middleware.Authenticate(calendar.ListBlockedDates))
	router.POST("/api/venues/:venueid/blocked-dates",
		middleware.Authenticate(calendar.BlockDate))
	router.DELETE("/api/venues/:venueid/blocked-dates/:date",
		middleware.Authenticate(calendar.UnblockDate))
}
