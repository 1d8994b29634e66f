package room

import (
	"context"
	"errors"
	"strings"
)

type CreateRequest struct {
	RoomNumber int
	RoomType   string
	Capacity   int
	Price      float64
	Amenities  string
	Active     bool
}

type UpdateRequest struct {
	RoomNumber *int
	RoomType   *string
	Capacity   *int
	Price      *float64
	Amenities  *string
	Active     *bool
}

// DeleteInterceptor is consulted synchronously before a room is removed from
// the catalog. A non-nil error vetoes the deletion; the room stays.
type DeleteInterceptor interface {
	OnBeforeRoomDeleted(ctx context.Context, roomID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error

	// ResolveOptional returns the room or nil when the id is not managed in
	// the catalog. Absence is not an error: callers that tolerate a partial
	// catalog skip their validation instead of failing.
	ResolveOptional(ctx context.Context, id string) (*Room, error)

	// ResolveByRoomNumber is ResolveOptional keyed by the canonical room
	// number instead of the id.
	ResolveByRoomNumber(ctx context.Context, roomNumber int) (*Room, error)

	// SetDeleteInterceptor registers the veto hook for Delete. Wired after
	// construction because the interceptor itself depends on this service.
	SetDeleteInterceptor(i DeleteInterceptor)
}

type service struct {
	repo        Repository
	interceptor DeleteInterceptor
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetDeleteInterceptor(i DeleteInterceptor) {
	s.interceptor = i
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if req.RoomNumber <= 0 {
		return nil, ErrInvalidRoomNumber
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if strings.TrimSpace(req.RoomType) == "" {
		return nil, ErrEmptyRoomType
	}

	rm := &Room{
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Capacity:   req.Capacity,
		Price:      req.Price,
		Amenities:  req.Amenities,
		Active:     req.Active,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		if *req.RoomNumber <= 0 {
			return nil, ErrInvalidRoomNumber
		}
		rm.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		if strings.TrimSpace(*req.RoomType) == "" {
			return nil, ErrEmptyRoomType
		}
		rm.RoomType = *req.RoomType
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		rm.Capacity = *req.Capacity
	}
	if req.Price != nil {
		rm.Price = *req.Price
	}
	if req.Amenities != nil {
		rm.Amenities = *req.Amenities
	}
	if req.Active != nil {
		rm.Active = *req.Active
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// The veto hook runs strictly before the catalog removes the row; a
	// referenced room must survive the request untouched.
	if s.interceptor != nil {
		if err := s.interceptor.OnBeforeRoomDeleted(ctx, id); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ResolveOptional(ctx context.Context, id string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rm, nil
}

func (s *service) ResolveByRoomNumber(ctx context.Context, roomNumber int) (*Room, error) {
	rm, err := s.repo.GetByRoomNumber(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rm, nil
}
