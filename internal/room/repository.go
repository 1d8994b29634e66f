package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByRoomNumber(ctx context.Context, roomNumber int) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (room_number, room_type, capacity, price, amenities, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		rm.RoomNumber, rm.RoomType, rm.Capacity, rm.Price, rm.Amenities, rm.Active,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRoomNumberTaken
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	const query = `
		SELECT id, room_number, room_type, capacity, price, amenities, active, created_at, updated_at
		FROM public.rooms
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByRoomNumber(ctx context.Context, roomNumber int) (*Room, error) {
	const query = `
		SELECT id, room_number, room_type, capacity, price, amenities, active, created_at, updated_at
		FROM public.rooms
		WHERE room_number = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, roomNumber))
}

func (r *pgxRepository) scanOne(row pgx.Row) (*Room, error) {
	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.RoomNumber, &rm.RoomType, &rm.Capacity, &rm.Price,
		&rm.Amenities, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, room_number, room_type, capacity, price, amenities, active, created_at, updated_at,
			count(*) OVER() as total_count
		FROM public.rooms
		WHERE 1=1
	`
	paramIndex := 1

	if filter.RoomType != "" {
		queryBase += fmt.Sprintf(" AND room_type = $%d", paramIndex)
		args = append(args, filter.RoomType)
		paramIndex++
	}
	if filter.Active != nil {
		queryBase += fmt.Sprintf(" AND active = $%d", paramIndex)
		args = append(args, *filter.Active)
		paramIndex++
	}

	queryBase += " ORDER BY room_number"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var result []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.RoomNumber, &rm.RoomType, &rm.Capacity, &rm.Price,
			&rm.Amenities, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		result = append(result, &rm)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	const query = `
		UPDATE public.rooms
		SET room_number = $1, room_type = $2, capacity = $3, price = $4,
			amenities = $5, active = $6, updated_at = now()
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		rm.RoomNumber, rm.RoomType, rm.Capacity, rm.Price, rm.Amenities, rm.Active, rm.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRoomNumberTaken
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.rooms WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
