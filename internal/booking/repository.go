package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id string) error

	// FindOverlapping returns the bookings with the given status for the room
	// whose [checkin_date, checkout_date) range intersects [checkin, checkout),
	// excluding the booking identified by excludeID (empty on create).
	FindOverlapping(ctx context.Context, roomID string, checkin, checkout time.Time, status Status, excludeID string) ([]*Booking, error)

	// FindFirstByRoomID returns any booking referencing the room, regardless
	// of status, or nil if the room has none.
	FindFirstByRoomID(ctx context.Context, roomID string) (*Booking, error)

	// WithinSerializableTx runs fn against a repository bound to a
	// SERIALIZABLE transaction and commits on success. A serialization
	// failure reported by the database surfaces as ErrConcurrentUpdate so
	// that a write invalidated by a concurrently committed overlap-relevant
	// write is rejected rather than applied.
	WithinSerializableTx(ctx context.Context, fn func(Repository) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool, q: pool}
}

func (r *pgxRepository) WithinSerializableTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin serializable tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxRepository{pool: r.pool, q: tx}); err != nil {
		return mapSerializationFailure(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapSerializationFailure(fmt.Errorf("commit booking tx failed: %w", err))
	}
	return nil
}

// mapSerializationFailure converts a Postgres serialization failure into the
// retryable conflict error; everything else passes through unchanged.
func mapSerializationFailure(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure {
		return ErrConcurrentUpdate
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("room_id", "user_id", "checkin_date", "checkout_date", "status").
		Values(b.RoomID, b.UserID, b.CheckinDate, b.CheckoutDate, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.q.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.room_id", "r.room_number", "b.user_id", "u.email",
		"b.checkin_date", "b.checkout_date", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.q.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.RoomID, &b.RoomNumber, &b.UserID, &b.UserEmail,
		&b.CheckinDate, &b.CheckoutDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.room_id", "r.room_number", "b.user_id", "u.email",
		"b.checkin_date", "b.checkout_date", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.checkin_date DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.RoomNumber, &b.UserID, &b.UserEmail,
			&b.CheckinDate, &b.CheckoutDate, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("room_id", b.RoomID).
		Set("user_id", b.UserID).
		Set("checkin_date", b.CheckinDate).
		Set("checkout_date", b.CheckoutDate).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindOverlapping(ctx context.Context, roomID string, checkin, checkout time.Time, status Status, excludeID string) ([]*Booking, error) {
	// Same half-open comparison as Intersects:
	// existing.checkin < candidate.checkout AND existing.checkout > candidate.checkin
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "room_id", "user_id", "checkin_date", "checkout_date", "status", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.Lt{"checkin_date": checkout}).
		Where(squirrel.Gt{"checkout_date": checkin})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("overlap query failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.UserID,
			&b.CheckinDate, &b.CheckoutDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan overlapping booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) FindFirstByRoomID(ctx context.Context, roomID string) (*Booking, error) {
	const query = `
		SELECT id, room_id, user_id, checkin_date, checkout_date, status, created_at, updated_at
		FROM public.bookings
		WHERE room_id = $1
		ORDER BY created_at
		LIMIT 1
	`
	row := r.q.QueryRow(ctx, query, roomID)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.RoomID, &b.UserID,
		&b.CheckinDate, &b.CheckoutDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking by room failed: %w", err)
	}
	return &b, nil
}
