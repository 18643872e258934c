package api

import (
	"fmt"
	"net/http"
	"strconv"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/service"
	"hotelbooking/internal/views"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	App      *views.App
	Rooms    *service.RoomService
	Home     *views.Home
	Search   *views.Rooms
	Cart     *views.Cart
	Bookings *views.Bookings
	Profile  *views.Profile
}

func NewUserHandler(app *views.App, rooms *service.RoomService, home *views.Home, search *views.Rooms, cart *views.Cart, bookings *views.Bookings, profile *views.Profile) *UserHandler {
	return &UserHandler{App: app, Rooms: rooms, Home: home, Search: search, Cart: cart, Bookings: bookings, Profile: profile}
}

func (h *UserHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	err := h.App.Navigate(service.Navigation{Path: "/"})
	render(w, h.App, err, func() any { return h.Home.State() })
}

func (h *UserHandler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Rooms.RoomTypes(r.Context())
	if err != nil {
		respondErr(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *UserHandler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rooms, err := h.Rooms.Available(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		respondErr(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

func (h *UserHandler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := entities.RoomSearchRequest{CheckInDate: q.Get("from"), CheckOutDate: q.Get("to")}
	if v := q.Get("roomTypeId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid roomTypeId")
			return
		}
		req.RoomTypeID = id
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		req.PageNumber = n
	}

	if err := h.App.Ensure("/rooms"); err != nil {
		respondErr(w, err, nil)
		return
	}
	_, err := h.Search.Search(r.Context(), req)
	render(w, h.App, err, func() any { return h.Search.State() })
}

func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	err := h.App.Navigate(service.Navigation{Path: "/cart"})
	render(w, h.App, err, func() any { return h.Cart.State() })
}

// AddToCart puts a room in the cart and leaves the app on the cart page.
func (h *UserHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err, nil)
		return
	}
	if err := h.App.Ensure("/rooms"); err != nil {
		respondErr(w, err, nil)
		return
	}
	res, err := h.Search.AddToCart(r.Context(), req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		var nav *service.Navigation
		if res != nil {
			nav = res.Navigation
		}
		respondErr(w, err, nav)
		return
	}
	respondJSON(w, http.StatusCreated, page(h.App, h.Cart.State()))
}

func (h *UserHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.App.Ensure("/cart"); err != nil {
		respondErr(w, err, nil)
		return
	}
	if err := h.Cart.Clear(r.Context()); err != nil {
		respondErr(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, page(h.App, h.Cart.State()))
}

// GetBookings shows the bookings page without remounting it, so a booking
// just handed over by checkout stays highlighted. ?reload=true refetches.
func (h *UserHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	if err := h.App.Ensure("/bookings"); err != nil {
		if !guarded(w, h.App, err) {
			respondErr(w, err, nil)
		}
		return
	}
	var err error
	if r.URL.Query().Get("reload") == "true" {
		err = h.Bookings.Reload(r.Context())
	}
	render(w, h.App, err, func() any { return h.Bookings.State() })
}

// CancelBooking records a cancellation request from whichever bookings page
// is open.
func (h *UserHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var res *service.CancellationResult
	if h.App.Location().Path == "/profile" {
		res, err = h.Profile.Cancel(r.Context(), id)
	} else {
		if err := h.App.Ensure("/bookings"); err != nil {
			respondErr(w, err, nil)
			return
		}
		res, err = h.Bookings.Cancel(r.Context(), id)
	}
	if err != nil {
		respondErr(w, err, nil)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	err := h.App.Navigate(service.Navigation{Path: "/profile"})
	render(w, h.App, err, func() any { return h.Profile.State() })
}

func (h *UserHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.App.Ensure("/profile"); err != nil {
		respondErr(w, err, nil)
		return
	}
	text, err := h.Profile.Receipt(r.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondErr(w, err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="booking-%d-receipt.txt"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
