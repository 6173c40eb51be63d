package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/plutov/paypal/v4"

	"rutaviva/internal/models/db_models"
	"rutaviva/internal/models/request_models"
	"rutaviva/internal/models/response_models"
	"rutaviva/internal/repositories"
	"rutaviva/pkg/utils"
)

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	// Env is "sandbox" or "live".
	Env string
}

type BookingServiceInterface interface {
	CreateOrder(ctx context.Context, req request_models.CreateOrderRequest) (*response_models.CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, req request_models.CaptureOrderRequest) (*response_models.CaptureOrderResponse, error)
	ListBookingsForListing(ctx context.Context, listingID string) ([]db_models.Booking, error)
}

type BookingService struct {
	listingRepo repositories.ListingRepository
	bookingRepo repositories.BookingRepository
	paypal      *paypal.Client
}

func NewBookingService(
	listingRepo repositories.ListingRepository,
	bookingRepo repositories.BookingRepository,
	cfg PayPalConfig,
) BookingServiceInterface {
	svc := &BookingService{
		listingRepo: listingRepo,
		bookingRepo: bookingRepo,
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		// Bookings degrade to a payment-provider error instead of
		// blocking startup; the rest of the marketplace still works.
		log.Println("paypal credentials not configured, bookings disabled")
		return svc
	}

	base := paypal.APIBaseSandBox
	if strings.EqualFold(cfg.Env, "live") {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, base)
	if err != nil {
		log.Printf("Error creating paypal client: %v", err)
		return svc
	}
	svc.paypal = client
	return svc
}

func (s *BookingService) CreateOrder(ctx context.Context, req request_models.CreateOrderRequest) (*response_models.CreateOrderResponse, error) {
	if s.paypal == nil {
		return nil, utils.ErrPaymentProvider
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		log.Printf("Error fetching listing: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if listing == nil {
		return nil, utils.ErrListingNotFound
	}

	if _, err := s.paypal.GetAccessToken(ctx); err != nil {
		log.Printf("Error fetching paypal token: %v", err)
		return nil, utils.ErrPaymentProvider
	}

	order, err := s.paypal.CreateOrder(ctx, paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: listing.ID.String(),
				Description: listing.Title,
				Amount: &paypal.PurchaseUnitAmount{
					Currency: "USD",
					Value:    fmt.Sprintf("%.2f", listing.PriceUSD),
				},
			},
		}, nil, nil)
	if err != nil {
		log.Printf("Error creating paypal order: %v", err)
		return nil, utils.ErrPaymentProvider
	}

	return &response_models.CreateOrderResponse{OrderID: order.ID}, nil
}

// CaptureOrder captures the approved order and records the booking. A
// capture that PayPal rejects still produces a FAILED booking row so the
// merchant has a trace of the attempt.
func (s *BookingService) CaptureOrder(ctx context.Context, req request_models.CaptureOrderRequest) (*response_models.CaptureOrderResponse, error) {
	if s.paypal == nil {
		return nil, utils.ErrPaymentProvider
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		log.Printf("Error fetching listing: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if listing == nil {
		return nil, utils.ErrListingNotFound
	}

	if _, err := s.paypal.GetAccessToken(ctx); err != nil {
		log.Printf("Error fetching paypal token: %v", err)
		return nil, utils.ErrPaymentProvider
	}

	status := db_models.BookingStatusFailed
	paypalStatus := "FAILED"
	capture, err := s.paypal.CaptureOrder(ctx, req.OrderID, paypal.CaptureOrderRequest{})
	if err != nil {
		log.Printf("Error capturing paypal order %s: %v", req.OrderID, err)
	} else {
		paypalStatus = capture.Status
		if strings.EqualFold(capture.Status, "COMPLETED") {
			status = db_models.BookingStatusPaid
		}
	}

	booking := &db_models.Booking{
		ListingID:     listing.ID,
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		AmountUSD:     listing.PriceUSD,
		PaypalOrderID: req.OrderID,
		Status:        status,
	}

	bookingID, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		log.Printf("Error recording booking: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CaptureOrderResponse{
		OK:           status == db_models.BookingStatusPaid,
		PaypalStatus: paypalStatus,
		BookingID:    bookingID.String(),
	}, nil
}

func (s *BookingService) ListBookingsForListing(ctx context.Context, listingID string) ([]db_models.Booking, error) {
	if _, err := uuid.Parse(listingID); err != nil {
		return nil, utils.ErrInvalidInput
	}

	bookings, err := s.bookingRepo.ListByListing(ctx, listingID)
	if err != nil {
		log.Printf("Error listing bookings: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return bookings, nil
}
