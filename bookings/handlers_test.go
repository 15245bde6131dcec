package bookings

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestUpdateBookingStatusRejectsAnonymousCaller(t *testing.T) {
	// No user id in the request context: the handler must refuse before it
	// touches the store or the booking.
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b1/status",
		strings.NewReader(`{"status":"accepted"}`))
	rec := httptest.NewRecorder()

	UpdateBookingStatus(rec, req, httprouter.Params{{Key: "bookingid", Value: "b1"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not the venue owner")
}

func TestUpdateBookingStatusRequiresBookingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/bookings//status",
		strings.NewReader(`{"status":"accepted"}`))
	rec := httptest.NewRecorder()

	UpdateBookingStatus(rec, req, httprouter.Params{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
