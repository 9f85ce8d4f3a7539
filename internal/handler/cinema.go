package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinematch/internal/service"
)

// CinemaHandler exposes the booking service over HTTP.  Handlers only
// translate requests and results; every booking goes through
// BookingService.BookSeats.
type CinemaHandler struct {
	Booking *service.BookingService
}

// NewCinemaHandler constructs a CinemaHandler and panics if svc is nil.
func NewCinemaHandler(svc *service.BookingService) *CinemaHandler {
	if svc == nil {
		panic("nil booking service passed to NewCinemaHandler")
	}
	return &CinemaHandler{Booking: svc}
}

// bookingResponse is the JSON body returned by both booking endpoints.
type bookingResponse struct {
	Outcome    service.Outcome `json:"outcome"`
	Message    string          `json:"message"`
	BookingID  string          `json:"booking_id,omitempty"`
	Seats      []string        `json:"seats,omitempty"`
	Vibe       string          `json:"vibe,omitempty"`
	PriceCents uint32          `json:"price_cents,omitempty"`
	TotalCents uint32          `json:"total_amount_cents,omitempty"`
	Rejected   []string        `json:"rejected,omitempty"`
	BookedAt   string          `json:"booked_at,omitempty"`
}

// View handles GET /api/cinema/view.  It returns every seat in display order.
func (h *CinemaHandler) View(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Booking.ListSeats()})
}

// Stats handles GET /api/cinema/stats.
func (h *CinemaHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Booking.Stats())
}

// Reserve handles GET /api/cinema/reserve?id=A1&vibe=...  It books a single
// seat and exists so the engine can be tried from a browser.
func (h *CinemaHandler) Reserve(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	res := h.Booking.BookSeats(c.Request().Context(), []string{id}, c.QueryParam("vibe"))
	return writeResult(c, res)
}

// SquadBook handles POST /api/cinema/squad-book.  The seats are taken from a
// JSON body {"ids": [...], "vibe": "..."} or from repeated/comma separated
// "ids" form or query parameters.  The request books all seats or none.
func (h *CinemaHandler) SquadBook(c echo.Context) error {
	var body struct {
		IDs  []string `json:"ids" form:"ids"`
		Vibe string   `json:"vibe" form:"vibe"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.IDs) == 0 {
		body.IDs = c.QueryParams()["ids"]
	}
	if body.Vibe == "" {
		body.Vibe = c.QueryParam("vibe")
	}
	res := h.Booking.BookSeats(c.Request().Context(), splitIDs(body.IDs), body.Vibe)
	return writeResult(c, res)
}

func writeResult(c echo.Context, res service.BookingResult) error {
	out := bookingResponse{
		Outcome:  res.Outcome,
		Message:  res.Message(),
		Seats:    res.SeatIDs,
		Vibe:     res.Label,
		Rejected: res.Rejected,
	}
	if res.OK() {
		out.BookingID = res.BookingID
		out.PriceCents = res.PriceCents
		out.TotalCents = res.TotalCents
		out.BookedAt = res.BookedAt.Format(time.RFC3339)
	}
	return c.JSON(statusFor(res.Outcome), out)
}

func statusFor(o service.Outcome) int {
	switch o {
	case service.OutcomeBooked:
		return http.StatusCreated
	case service.OutcomeSeatNotFound:
		return http.StatusNotFound
	case service.OutcomeSeatUnavailable:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// splitIDs accepts both ["A1","A2"] and ["A1,A2"].
func splitIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.Split(r, ",")...)
	}
	return out
}
