package booking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/digibook/room-booking-backend/internal/room"
	"github.com/digibook/room-booking-backend/internal/user"
)

type CreateRequest struct {
	UserID       string
	RoomID       string
	CheckinDate  time.Time
	CheckoutDate time.Time
}

type UpdateRequest struct {
	RoomID       string
	UserID       string
	CheckinDate  time.Time
	CheckoutDate time.Time
	Status       Status
}

// AdmissionLock is the mutual-exclusion handle serializing all booking
// mutations within the process. It is injectable so tests can observe or
// replace it; a plain sync.Mutex is the default.
type AdmissionLock interface {
	Lock()
	Unlock()
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// OnBeforeRoomDeleted implements room.DeleteInterceptor: it vetoes the
	// deletion of a room that any booking, of any status, still references.
	OnBeforeRoomDeleted(ctx context.Context, roomID string) error
}

type service struct {
	repo  Repository
	rooms room.Service
	users user.Service
	adm   AdmissionLock
	log   *zap.Logger
}

// NewService builds the booking service. Passing a nil lock or logger falls
// back to a private mutex and a no-op logger.
func NewService(repo Repository, rooms room.Service, users user.Service, lock AdmissionLock, logger *zap.Logger) Service {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:  repo,
		rooms: rooms,
		users: users,
		adm:   lock,
		log:   logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	s.log.Info("attempting to book room",
		zap.String("room_id", req.RoomID),
		zap.Time("checkin", req.CheckinDate),
		zap.Time("checkout", req.CheckoutDate),
	)

	// Resolve referenced entities before taking the lock; resolution failure
	// is a NotFound, not an availability problem.
	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	b := &Booking{
		RoomID:       req.RoomID,
		UserID:       req.UserID,
		CheckinDate:  req.CheckinDate,
		CheckoutDate: req.CheckoutDate,
		Status:       StatusActive,
	}

	s.adm.Lock()
	defer s.adm.Unlock()

	err := s.repo.WithinSerializableTx(ctx, func(r Repository) error {
		if err := s.admit(ctx, r, b, ""); err != nil {
			return err
		}
		return r.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	s.log.Info("attempting to update booking",
		zap.String("booking_id", id),
		zap.String("room_id", req.RoomID),
		zap.Time("checkin", req.CheckinDate),
		zap.Time("checkout", req.CheckoutDate),
	)

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	b.RoomID = req.RoomID
	b.UserID = req.UserID
	b.CheckinDate = req.CheckinDate
	b.CheckoutDate = req.CheckoutDate
	b.Status = req.Status

	s.adm.Lock()
	defer s.adm.Unlock()

	err = s.repo.WithinSerializableTx(ctx, func(r Repository) error {
		if err := s.admit(ctx, r, b, b.ID); err != nil {
			return err
		}
		return r.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) error {
	s.log.Info("attempting to cancel booking", zap.String("booking_id", id))

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.adm.Lock()
	defer s.adm.Unlock()

	// A cancelled booking frees the slot and can never conflict, so the
	// admission sequence is skipped.
	return s.repo.WithinSerializableTx(ctx, func(r Repository) error {
		b.Status = StatusCancelled
		return r.Update(ctx, b)
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.log.Info("attempting to delete booking", zap.String("booking_id", id))

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	s.adm.Lock()
	defer s.adm.Unlock()

	return s.repo.WithinSerializableTx(ctx, func(r Repository) error {
		return r.Delete(ctx, id)
	})
}

// admit runs the admission sequence for b under the admission lock, against
// the repository r bound to the surrounding serializable transaction:
// liveness of the referenced room and user, date sanity, then the overlap
// check keyed by the room's canonical room number. Any failure aborts the
// sequence before anything is persisted.
func (s *service) admit(ctx context.Context, r Repository, b *Booking, excludeID string) error {
	rm, err := s.rooms.ResolveOptional(ctx, b.RoomID)
	if err != nil {
		return err
	}
	if rm != nil && !rm.Active {
		return ErrRoomNotAvailable
	}

	u, err := s.users.ResolveOptional(ctx, b.UserID)
	if err != nil {
		return err
	}
	if u != nil && !u.Active {
		return ErrUserInactive
	}

	if b.CheckinDate.IsZero() || b.CheckoutDate.IsZero() {
		return ErrDatesRequired
	}
	// Equal checkin and checkout passes date validation; a zero-night
	// booking still runs the overlap check like any other.
	if b.CheckoutDate.Before(b.CheckinDate) {
		return ErrCheckoutBeforeCheckin
	}

	if rm == nil {
		// Unmanaged room: absent from the catalog, so there is no canonical
		// key to check overlaps against. Intentional partial-catalog
		// tolerance, not a failure.
		s.log.Debug("room not managed in catalog, skipping overlap check",
			zap.String("room_id", b.RoomID))
		return nil
	}

	canonical, err := s.rooms.ResolveByRoomNumber(ctx, rm.RoomNumber)
	if err != nil {
		return err
	}
	if canonical == nil {
		s.log.Debug("room number not managed in catalog, skipping overlap check",
			zap.Int("room_number", rm.RoomNumber))
		return nil
	}

	conflicts, err := r.FindOverlapping(ctx, canonical.ID, b.CheckinDate, b.CheckoutDate, StatusActive, excludeID)
	if err != nil {
		return err
	}

	s.log.Info("overlap check complete",
		zap.Int("room_number", rm.RoomNumber),
		zap.Int("conflicts", len(conflicts)),
	)

	if len(conflicts) > 0 {
		return ErrRoomNotAvailable
	}
	return nil
}

func (s *service) OnBeforeRoomDeleted(ctx context.Context, roomID string) error {
	b, err := s.repo.FindFirstByRoomID(ctx, roomID)
	if err != nil {
		return err
	}
	if b != nil {
		return &ReferencedError{BookingID: b.ID}
	}
	return nil
}
