package usecase

import (
	"context"
	"fmt"
	"time"

	"event-booking/internal/apperror"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// User endpoints
	CreateBooking(ctx context.Context, identity utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, identity utils.Identity) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, identity utils.Identity, bookingID string) (*response.BookingResponse, error)

	// Admin endpoints
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, admin utils.Identity, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, identity utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	errs := utils.ValidateStruct(req)
	quantity, ok := req.QuantityValue()
	if !ok || quantity < 1 || quantity > entity.MaxQuantity {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["quantity"] = fmt.Sprintf("quantity must be a whole number between 1 and %d", entity.MaxQuantity)
	}
	if len(errs) > 0 {
		s.log.Warn("Create booking validation failed",
			zap.Any("errors", errs),
			zap.String("user_id", identity.UserID.String()),
		)
		return nil, apperror.Validation(errs)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperror.Validation(map[string]string{"eventId": "eventId must be a valid UUID"})
	}

	// Resolve event at the instant of booking
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		s.log.Error("Failed to get event for booking",
			zap.Error(err),
			zap.String("event_id", req.EventID),
		)
		return nil, apperror.Storage("failed to get event", err)
	}
	if event == nil {
		s.log.Warn("Booking for unknown event",
			zap.String("event_id", req.EventID),
			zap.String("user_id", identity.UserID.String()),
		)
		return nil, apperror.NotFound("event not found")
	}

	// Price is snapshotted here and never recomputed
	total := entity.TotalPrice(event.Price, quantity)
	if total > entity.MaxAmount {
		return nil, apperror.Validation(map[string]string{"quantity": "total price exceeds the maximum booking amount"})
	}

	booking := &entity.Booking{
		Base:       entity.NewBase(time.Now()),
		UserID:     identity.UserID,
		EventID:    event.ID,
		Quantity:   quantity,
		TotalPrice: total,
		Status:     entity.InitialBookingStatus,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", identity.UserID.String()),
			zap.String("event_id", event.ID.String()),
		)
		return nil, apperror.Storage("failed to create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", booking.UserID.String()),
		zap.String("event_id", booking.EventID.String()),
		zap.Int("quantity", booking.Quantity),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, event)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, identity utils.Identity) ([]response.BookingResponse, error) {
	details, err := s.repo.Booking.FindByUserID(ctx, identity.UserID)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", identity.UserID.String()),
		)
		return nil, apperror.Storage("failed to get bookings", err)
	}

	return detailsToResponse(details, false), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, identity utils.Identity, bookingID string) (*response.BookingResponse, error) {
	detail, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Not the owner: answer as if it did not exist
	if detail.UserID != identity.UserID && !identity.IsAdmin() {
		s.log.Warn("Booking read by non-owner",
			zap.String("booking_id", bookingID),
			zap.String("user_id", identity.UserID.String()),
		)
		return nil, apperror.NotFound("booking not found")
	}

	resp := response.BookingDetailToResponse(detail, identity.IsAdmin())
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	details, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get all bookings", zap.Error(err))
		return nil, apperror.Storage("failed to get bookings", err)
	}

	return detailsToResponse(details, true), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, admin utils.Identity, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("booking not found")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed",
			zap.Any("errors", errs),
			zap.String("booking_id", bookingID),
		)
		return nil, apperror.Validation(errs)
	}

	status, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, apperror.Validation(map[string]string{"status": "status must be one of: pending confirmed cancelled"})
	}

	updated, err := s.repo.Booking.UpdateStatus(ctx, id, status)
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", string(status)),
		)
		return nil, apperror.Storage("failed to update booking", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("booking not found")
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(status)),
		zap.String("admin_id", admin.UserID.String()),
	)

	event, err := s.repo.Event.FindByID(ctx, updated.EventID)
	if err != nil {
		s.log.Error("Failed to get event for updated booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, apperror.Storage("failed to get event", err)
	}

	resp := response.BookingToResponse(updated, event)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("booking not found")
	}

	detail, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, apperror.Storage("failed to get booking", err)
	}
	if detail == nil {
		return nil, apperror.NotFound("booking not found")
	}

	return detail, nil
}

func detailsToResponse(details []*entity.BookingDetail, withUser bool) []response.BookingResponse {
	out := make([]response.BookingResponse, len(details))
	for i, detail := range details {
		out[i] = response.BookingDetailToResponse(detail, withUser)
	}
	return out
}
