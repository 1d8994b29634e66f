package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepository struct {
	mu    sync.Mutex
	rooms map[string]*Room
	seq   int
}

func newMemRepository() *memRepository {
	return &memRepository{rooms: make(map[string]*Room)}
}

func (r *memRepository) Create(_ context.Context, rm *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rooms {
		if existing.RoomNumber == rm.RoomNumber {
			return ErrRoomNumberTaken
		}
	}
	r.seq++
	rm.ID = fmt.Sprintf("room-%d", r.seq)
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rm
	return &cp, nil
}

func (r *memRepository) GetByRoomNumber(_ context.Context, roomNumber int) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rm := range r.rooms {
		if rm.RoomNumber == roomNumber {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepository) List(_ context.Context, _ Filter) ([]*Room, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Room
	for _, rm := range r.rooms {
		cp := *rm
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *memRepository) Update(_ context.Context, rm *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[rm.ID]; !ok {
		return ErrNotFound
	}
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *memRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

type vetoInterceptor struct {
	err    error
	called bool
}

func (v *vetoInterceptor) OnBeforeRoomDeleted(_ context.Context, _ string) error {
	v.called = true
	return v.err
}

func validCreate() CreateRequest {
	return CreateRequest{RoomNumber: 101, RoomType: "double", Capacity: 2, Price: 120, Active: true}
}

func TestCreateRoomValidation(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"non-positive room number", func(r *CreateRequest) { r.RoomNumber = 0 }, ErrInvalidRoomNumber},
		{"non-positive capacity", func(r *CreateRequest) { r.Capacity = -1 }, ErrInvalidCapacity},
		{"blank room type", func(r *CreateRequest) { r.RoomType = "  " }, ErrEmptyRoomType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	rm, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, rm.ID)

	_, err = svc.Create(ctx, validCreate())
	assert.ErrorIs(t, err, ErrRoomNumberTaken)
}

func TestUpdateRoom(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	rm, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	newCapacity := 4
	updated, err := svc.Update(ctx, rm.ID, UpdateRequest{Capacity: &newCapacity})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Capacity)
	assert.Equal(t, rm.RoomNumber, updated.RoomNumber)

	badNumber := -5
	_, err = svc.Update(ctx, rm.ID, UpdateRequest{RoomNumber: &badNumber})
	assert.ErrorIs(t, err, ErrInvalidRoomNumber)

	_, err = svc.Update(ctx, "room-missing", UpdateRequest{Capacity: &newCapacity})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRoomVeto(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()

	rm, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	veto := &vetoInterceptor{err: errors.New("room is referenced")}
	svc.SetDeleteInterceptor(veto)

	err = svc.Delete(ctx, rm.ID)
	assert.ErrorIs(t, err, veto.err)
	assert.True(t, veto.called)

	// Vetoed deletion leaves the room in place.
	_, err = repo.GetByID(ctx, rm.ID)
	assert.NoError(t, err)

	veto.err = nil
	require.NoError(t, svc.Delete(ctx, rm.ID))
	_, err = repo.GetByID(ctx, rm.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveOptional(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	rm, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	t.Run("present by id", func(t *testing.T) {
		got, err := svc.ResolveOptional(ctx, rm.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rm.ID, got.ID)
	})

	t.Run("absent by id is not an error", func(t *testing.T) {
		got, err := svc.ResolveOptional(ctx, "room-missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("present by room number", func(t *testing.T) {
		got, err := svc.ResolveByRoomNumber(ctx, rm.RoomNumber)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rm.ID, got.ID)
	})

	t.Run("absent by room number is not an error", func(t *testing.T) {
		got, err := svc.ResolveByRoomNumber(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
