package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hotelbooking/internal/entities"
	apperrors "hotelbooking/internal/errors"
	"hotelbooking/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

type CheckoutState string

const (
	CheckoutIdle              CheckoutState = "Idle"
	CheckoutFormValidating    CheckoutState = "FormValidating"
	CheckoutTokenizingPayment CheckoutState = "TokenizingPayment"
	CheckoutConfirmingBooking CheckoutState = "ConfirmingBooking"
	CheckoutSucceeded         CheckoutState = "Succeeded"
	CheckoutFailed            CheckoutState = "Failed"
)

// RetryPolicy tells the UI what a failed attempt allows next.
type RetryPolicy string

const (
	RetryNone RetryPolicy = ""
	// RetryRetokenize resubmits with a new payment method; the old one is consumed.
	RetryRetokenize RetryPolicy = "retokenize"
	RetryManual     RetryPolicy = "manual"
	RetryRelogin    RetryPolicy = "relogin"
)

const (
	msgConfirmFailed  = "Failed to confirm booking"
	msgPaymentFailed  = "Payment processing failed. Please try again."
	msgSessionExpired = "Your session has expired. Please login again."
	msgCartVanished   = "Your cart has expired. Please add a room again."
	msgPaymentSuccess = "Payment successful! Booking confirmed."
)

// CheckoutForm is what the user submits. Fields are checked in declaration
// order and only the first blank one is reported.
type CheckoutForm struct {
	FullName       string      `json:"fullName" validate:"notblank"`
	Email          string      `json:"email" validate:"notblank"`
	CardholderName string      `json:"cardholderName" validate:"notblank"`
	Phone          string      `json:"phone" validate:"notblank"`
	Card           CardDetails `json:"card" validate:"-"`
}

var formMessages = map[string]string{
	"FullName":       "Please enter your full name",
	"Email":          "Please enter your email",
	"CardholderName": "Please enter cardholder name",
	"Phone":          "Please enter your phone number",
}

var formFields = map[string]string{
	"FullName":       "fullName",
	"Email":          "email",
	"CardholderName": "cardholderName",
	"Phone":          "phone",
}

type OrderSummary struct {
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalAmount   float64 `json:"totalAmount"`
}

// CheckoutPage is what Load hands to the checkout view: either a summary with
// prefilled form fields or a redirect for an empty cart.
type CheckoutPage struct {
	Summary    *OrderSummary `json:"summary,omitempty"`
	Form       CheckoutForm  `json:"form"`
	Navigation *Navigation   `json:"navigation,omitempty"`
}

type CheckoutResult struct {
	State      CheckoutState     `json:"state"`
	Message    string            `json:"message,omitempty"`
	Field      string            `json:"field,omitempty"`
	Booking    *entities.Booking `json:"booking,omitempty"`
	NextSteps  []string          `json:"nextSteps,omitempty"`
	Navigation *Navigation       `json:"navigation,omitempty"`
	Retry      RetryPolicy       `json:"retry,omitempty"`
}

// CheckoutService runs Idle -> FormValidating -> TokenizingPayment ->
// ConfirmingBooking -> Succeeded|Failed. One attempt may be in flight.
type CheckoutService struct {
	repo          CartRepository
	cart          *CartService
	tokenizer     PaymentTokenizer
	bookings      *BookingStateService
	receipts      ReceiptSender
	session       Session
	notifier      Notifier
	logger        *slog.Logger
	validate      *validator.Validate
	redirectDelay time.Duration
	now           func() time.Time
	newKey        func() string

	mu         sync.Mutex
	state      CheckoutState
	processing bool
	item       *entities.CartItem
}

func NewCheckoutService(
	repo CartRepository,
	cart *CartService,
	tokenizer PaymentTokenizer,
	bookings *BookingStateService,
	receipts ReceiptSender,
	session Session,
	notifier Notifier,
	logger *slog.Logger,
	redirectDelay time.Duration,
) *CheckoutService {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &CheckoutService{
		repo:          repo,
		cart:          cart,
		tokenizer:     tokenizer,
		bookings:      bookings,
		receipts:      receipts,
		session:       session,
		notifier:      notifier,
		logger:        logger,
		validate:      v,
		redirectDelay: redirectDelay,
		now:           time.Now,
		newKey:        uuid.NewString,
		state:         CheckoutIdle,
	}
}

func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *CheckoutService) setState(st CheckoutState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Load reads the cart for the checkout page. An empty cart yields a warning
// and a delayed redirect to /cart.
func (s *CheckoutService) Load(ctx context.Context) (*CheckoutPage, error) {
	if nav := requireLogin(s.session, s.notifier, ActionCheckout, "/checkout"); nav != nil {
		return &CheckoutPage{Navigation: nav}, apperrors.ErrNotAuthenticated
	}

	state, err := s.cart.GetCart(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			notifyError(s.notifier, "Failed to load cart")
			s.logger.Error("checkout cart load failed", "error", err)
		}
		return nil, err
	}

	switch st := state.(type) {
	case entities.CartEmpty:
		s.mu.Lock()
		s.item = nil
		s.mu.Unlock()
		notifyWarning(s.notifier, "Your cart is empty. Redirecting...")
		return &CheckoutPage{Navigation: &Navigation{Path: "/cart", DelayMs: s.redirectDelay.Milliseconds()}}, nil
	case entities.CartOccupied:
		item := st.Item
		s.mu.Lock()
		s.item = &item
		s.mu.Unlock()

		page := &CheckoutPage{
			Summary: summaryOf(item),
			Form:    CheckoutForm{FullName: item.CustomerName, Email: item.CustomerEmail},
		}
		if u := s.session.User(); u != nil {
			if page.Form.FullName == "" {
				page.Form.FullName = u.DisplayName()
			}
			if page.Form.Email == "" {
				page.Form.Email = u.Email
			}
		}
		return page, nil
	}
	return nil, errors.New("unknown cart state")
}

func summaryOf(item entities.CartItem) *OrderSummary {
	return &OrderSummary{
		RoomNumber:    item.RoomNumber,
		RoomType:      item.RoomTypeName,
		CheckIn:       utils.FormatDate(item.CheckInDate),
		CheckOut:      utils.FormatDate(item.CheckOutDate),
		Nights:        item.NumberOfNights,
		PricePerNight: item.PricePerNight,
		TotalAmount:   item.TotalCost,
	}
}

// Submit validates the form, tokenizes the card and confirms the cart. A
// second call while one is running returns ErrCheckoutInProgress untouched.
// The result is non-nil for every outcome of an accepted attempt.
func (s *CheckoutService) Submit(ctx context.Context, form CheckoutForm) (*CheckoutResult, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, apperrors.ErrCheckoutInProgress
	}
	s.processing = true
	s.state = CheckoutFormValidating
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	if nav := requireLogin(s.session, s.notifier, ActionCheckout, "/checkout"); nav != nil {
		return s.fail(&CheckoutResult{Message: loginWarnings[ActionCheckout], Navigation: nav, Retry: RetryRelogin}), apperrors.ErrNotAuthenticated
	}

	if verr := s.validateForm(form); verr != nil {
		return s.fail(&CheckoutResult{Message: verr.Message, Field: verr.Field}), verr
	}

	item, err := s.cartItem(ctx)
	if err != nil {
		return s.fail(&CheckoutResult{Message: msgConfirmFailed, Retry: RetryManual}), err
	}
	if item == nil {
		notifyWarning(s.notifier, "Your cart is empty. Redirecting...")
		return s.fail(&CheckoutResult{
			Message:    "Your cart is empty",
			Navigation: &Navigation{Path: "/cart", DelayMs: s.redirectDelay.Milliseconds()},
		}), nil
	}

	s.setState(CheckoutTokenizingPayment)
	paymentMethodID, err := s.tokenizer.CreatePaymentMethod(ctx, form.Card, BillingDetails{
		Name:  form.CardholderName,
		Email: form.Email,
		Phone: form.Phone,
	})
	if err != nil {
		return s.tokenizeFailed(ctx, err), err
	}
	s.logger.Info("payment method created", "paymentMethodId", paymentMethodID)

	s.setState(CheckoutConfirmingBooking)
	resp, err := s.repo.ConfirmCart(ctx, entities.BookingConfirmationRequest{PaymentMethodID: paymentMethodID}, s.newKey())
	if err != nil {
		return s.confirmFailed(ctx, err), err
	}

	return s.succeed(ctx, form, *item, resp), nil
}

func (s *CheckoutService) validateForm(form CheckoutForm) *apperrors.ValidationError {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}
	first := verrs[0].StructField()
	return apperrors.NewValidationError(formFields[first], formMessages[first])
}

func (s *CheckoutService) cartItem(ctx context.Context) (*entities.CartItem, error) {
	s.mu.Lock()
	item := s.item
	s.mu.Unlock()
	if item != nil {
		return item, nil
	}

	state, err := s.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	occupied, ok := entities.CartItemOf(state)
	if !ok {
		return nil, nil
	}
	s.mu.Lock()
	s.item = &occupied
	s.mu.Unlock()
	return &occupied, nil
}

func (s *CheckoutService) tokenizeFailed(ctx context.Context, err error) *CheckoutResult {
	msg := msgPaymentFailed
	var perr *ProviderError
	if errors.As(err, &perr) {
		msg = perr.Message
	}
	if ctx.Err() == nil {
		notifyError(s.notifier, msg)
	}
	s.logger.Error("payment method creation failed", "error", err)
	return s.fail(&CheckoutResult{Message: msg, Retry: RetryManual})
}

func (s *CheckoutService) confirmFailed(ctx context.Context, err error) *CheckoutResult {
	result := &CheckoutResult{}
	switch apperrors.StatusOf(err) {
	case http.StatusUnauthorized:
		// the payment method is single-use and is not retried
		if cerr := s.session.Clear(); cerr != nil {
			s.logger.Warn("clearing expired session failed", "error", cerr)
		}
		result.Message = msgSessionExpired
		result.Navigation = &Navigation{Path: "/login", ReturnURL: "/checkout"}
		result.Retry = RetryRelogin
	case http.StatusBadRequest:
		result.Message = apperrors.MessageOf(err, msgConfirmFailed)
		result.Retry = RetryRetokenize
	case http.StatusNotFound:
		s.mu.Lock()
		s.item = nil
		s.mu.Unlock()
		result.Message = msgCartVanished
		result.Navigation = &Navigation{Path: "/cart"}
	default:
		result.Message = msgConfirmFailed
		result.Retry = RetryManual
	}

	if ctx.Err() == nil {
		notifyError(s.notifier, result.Message)
	}
	s.logger.Error("booking confirmation failed", "status", apperrors.StatusOf(err), "error", err)
	return s.fail(result)
}

func (s *CheckoutService) fail(result *CheckoutResult) *CheckoutResult {
	s.setState(CheckoutFailed)
	result.State = CheckoutFailed
	return result
}

func (s *CheckoutService) succeed(ctx context.Context, form CheckoutForm, item entities.CartItem, resp *entities.BookingConfirmationResponse) *CheckoutResult {
	var booking entities.Booking
	if resp.Booking != nil {
		booking = *resp.Booking
	} else {
		booking = entities.Booking{
			ID:             resp.BookingID,
			RoomID:         item.RoomID,
			RoomNumber:     item.RoomNumber,
			RoomTypeName:   item.RoomTypeName,
			CustomerName:   form.FullName,
			CustomerEmail:  form.Email,
			CheckInDate:    item.CheckInDate,
			CheckOutDate:   item.CheckOutDate,
			NumberOfNights: item.NumberOfNights,
			TotalCost:      item.TotalCost,
			Status:         entities.BookingStatusConfirmed,
			CreatedAt:      s.now().UTC().Format(time.RFC3339),
		}
	}
	s.logger.Info("booking confirmed", "bookingId", booking.ID, "message", resp.Message)

	s.bookings.SetNewBooking(booking)

	// The backend converts the cart on confirm; clearing here covers older
	// versions that leave it in place.
	if err := s.cart.ClearCart(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("clearing cart after confirmation failed", "error", err)
	}
	s.mu.Lock()
	s.item = nil
	s.mu.Unlock()

	notifySuccess(s.notifier, msgPaymentSuccess)

	if s.receipts != nil {
		receipt := ReceiptFromBooking(booking)
		receipt.GuestPhone = form.Phone
		if receipt.GuestName == "" {
			receipt.GuestName = form.FullName
		}
		if receipt.GuestEmail == "" {
			receipt.GuestEmail = form.Email
		}
		s.receipts.SendBookingReceipt(receipt)
	}

	s.setState(CheckoutSucceeded)
	return &CheckoutResult{
		State:      CheckoutSucceeded,
		Message:    resp.Message,
		Booking:    &booking,
		NextSteps:  resp.NextSteps,
		Navigation: &Navigation{Path: "/bookings", State: &booking},
	}
}
