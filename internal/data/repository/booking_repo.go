package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create is a single-row insert: it either persists the booking or nothing.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error)
	FindAll(ctx context.Context) ([]*entity.BookingDetail, error)

	// UpdateStatus changes status and updated_at only. Returns nil, nil when id is unknown.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailQuery = `
	SELECT b.id, b.user_id, b.event_id, b.quantity, b.total_price, b.status, b.created_at, b.updated_at,
	       e.id, e.name, e.venue, e.date, e.price, e.created_by, e.created_at, e.updated_at,
	       u.name, u.email
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN events e ON e.id = b.event_id
`

func scanBookingDetail(row scanner) (*entity.BookingDetail, error) {
	var (
		detail entity.BookingDetail

		eventID        *uuid.UUID
		eventName      *string
		eventVenue     *string
		eventDate      *time.Time
		eventPrice     *float64
		eventCreatedBy *uuid.UUID
		eventCreatedAt *time.Time
		eventUpdatedAt *time.Time
	)

	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.EventID,
		&detail.Quantity,
		&detail.TotalPrice,
		&detail.Status,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&eventID,
		&eventName,
		&eventVenue,
		&eventDate,
		&eventPrice,
		&eventCreatedBy,
		&eventCreatedAt,
		&eventUpdatedAt,
		&detail.UserName,
		&detail.UserEmail,
	)
	if err != nil {
		return nil, err
	}

	// LEFT JOIN: all event columns are NULL once the event is deleted
	if eventID != nil {
		detail.Event = &entity.Event{
			Base: entity.Base{
				ID:        *eventID,
				CreatedAt: *eventCreatedAt,
				UpdatedAt: *eventUpdatedAt,
			},
			Name:      *eventName,
			Venue:     *eventVenue,
			Date:      *eventDate,
			Price:     *eventPrice,
			CreatedBy: *eventCreatedBy,
		}
	}

	return &detail, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, event_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.EventID,
		booking.Quantity,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return detail, nil
}

// FindByUserID lists a user's bookings, newest first
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.seq DESC
	`

	details, err := r.queryDetails(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return details, nil
}

// FindAll lists every booking, newest first
func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + ` ORDER BY b.created_at DESC, b.seq DESC`

	details, err := r.queryDetails(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return details, nil
}

func (r *bookingRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []*entity.BookingDetail{}
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return details, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	query := `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, event_id, quantity, total_price, status, created_at, updated_at
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.EventID,
		&booking.Quantity,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	return &booking, nil
}
