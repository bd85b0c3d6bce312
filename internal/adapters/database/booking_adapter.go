package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/shareit/backend/pkg/errors"
)

const bookingsTable = "bookings"

// bookingRow is the flat shape of a booking joined with its item
type bookingRow struct {
	ID          int64     `db:"id"`
	Start       time.Time `db:"start_date"`
	End         time.Time `db:"end_date"`
	Status      string    `db:"status"`
	BookerID    int64     `db:"booker_id"`
	ItemID      int64     `db:"item_id"`
	ItemName    string    `db:"item_name"`
	ItemOwnerID int64     `db:"item_owner_id"`
}

func (r *bookingRow) toEntity() *entities.Booking {
	return &entities.Booking{
		ID:     r.ID,
		Start:  r.Start,
		End:    r.End,
		Status: entities.BookingStatus(r.Status),
		Item: entities.BookingItem{
			ID:      r.ItemID,
			Name:    r.ItemName,
			OwnerID: r.ItemOwnerID,
		},
		Booker: entities.BookingBooker{ID: r.BookerID},
	}
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	db *sqlx.DB
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{db: client.DB()}
}

// Create inserts a booking and fills its generated ID
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	query, args, err := dialect.Insert(bookingsTable).
		Rows(goqu.Record{
			"start_date": booking.Start,
			"end_date":   booking.End,
			"item_id":    booking.Item.ID,
			"booker_id":  booking.Booker.ID,
			"status":     string(booking.Status),
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &booking.ID, query, args...); err != nil {
		return translateError(err, "booking")
	}
	return nil
}

// UpdateStatus overwrites the status of a booking
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id int64, status entities.BookingStatus) error {
	query, args, err := dialect.Update(bookingsTable).
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	result, err := executor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "booking")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	booking, err := a.getOne(ctx, selectBookings().Where(goqu.I("b.id").Eq(id)))
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	return booking, nil
}

// List returns bookings matching the filter ordered by start, newest first
func (a *BookingAdapter) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := selectBookings().
		Where(filterExpressions(filter)...).
		Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc())

	query, args, err := paginate(ds, filter.Page).Prepared(true).ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, executor(ctx, a.db), &rows, query, args...); err != nil {
		return nil, translateError(err, "bookings")
	}

	bookings := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, rows[i].toEntity())
	}
	return bookings, nil
}

// FindLastApproved returns the approved booking with the latest start before now
func (a *BookingAdapter) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error) {
	return a.getOne(ctx, selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(string(entities.BookingStatusApproved)),
			goqu.I("b.start_date").Lt(now),
		).
		Order(goqu.I("b.start_date").Desc()).
		Limit(1))
}

// FindNextApproved returns the approved booking with the earliest start after now
func (a *BookingAdapter) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error) {
	return a.getOne(ctx, selectBookings().
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(string(entities.BookingStatusApproved)),
			goqu.I("b.start_date").Gt(now),
		).
		Order(goqu.I("b.start_date").Asc()).
		Limit(1))
}

// FindLatestFinishedApproved returns the booker's approved booking of the item with the latest end before now
func (a *BookingAdapter) FindLatestFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (*entities.Booking, error) {
	return a.getOne(ctx, selectBookings().
		Where(
			goqu.I("b.booker_id").Eq(bookerID),
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(string(entities.BookingStatusApproved)),
			goqu.I("b.end_date").Lt(now),
		).
		Order(goqu.I("b.end_date").Desc()).
		Limit(1))
}

// getOne returns the first row of ds, or nil when there is none
func (a *BookingAdapter) getOne(ctx context.Context, ds *goqu.SelectDataset) (*entities.Booking, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	var row bookingRow
	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &row, query, args...); err != nil {
		translated := translateError(err, "booking")
		if apperrors.IsNotFound(translated) {
			return nil, nil
		}
		return nil, translated
	}
	return row.toEntity(), nil
}

func selectBookings() *goqu.SelectDataset {
	return dialect.From(goqu.T(bookingsTable).As("b")).
		Join(goqu.T(itemsTable).As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Select(
			goqu.I("b.id"),
			goqu.I("b.start_date"),
			goqu.I("b.end_date"),
			goqu.I("b.status"),
			goqu.I("b.booker_id"),
			goqu.I("b.item_id"),
			goqu.I("i.name").As("item_name"),
			goqu.I("i.owner_id").As("item_owner_id"),
		)
}

// filterExpressions renders the filter as strict comparisons
func filterExpressions(f repositories.BookingFilter) []exp.Expression {
	var where []exp.Expression
	if f.BookerID != 0 {
		where = append(where, goqu.I("b.booker_id").Eq(f.BookerID))
	}
	if f.OwnerID != 0 {
		where = append(where, goqu.I("i.owner_id").Eq(f.OwnerID))
	}
	if f.StartBefore != nil {
		where = append(where, goqu.I("b.start_date").Lt(*f.StartBefore))
	}
	if f.StartAfter != nil {
		where = append(where, goqu.I("b.start_date").Gt(*f.StartAfter))
	}
	if f.EndBefore != nil {
		where = append(where, goqu.I("b.end_date").Lt(*f.EndBefore))
	}
	if f.EndAfter != nil {
		where = append(where, goqu.I("b.end_date").Gt(*f.EndAfter))
	}
	if f.Status != "" {
		where = append(where, goqu.I("b.status").Eq(string(f.Status)))
	}
	return where
}
