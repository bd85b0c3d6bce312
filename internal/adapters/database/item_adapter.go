package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/shareit/backend/pkg/errors"
)

const itemsTable = "items"

var itemColumns = []interface{}{"id", "name", "description", "available", "owner_id", "request_id"}

// ItemAdapter implements the ItemRepository interface
type ItemAdapter struct {
	db *sqlx.DB
}

// NewItemAdapter creates a new item adapter
func NewItemAdapter(client *postgres.Client) repositories.ItemRepository {
	return &ItemAdapter{db: client.DB()}
}

// Create inserts an item and fills its generated ID
func (a *ItemAdapter) Create(ctx context.Context, item *entities.Item) error {
	query, args, err := dialect.Insert(itemsTable).
		Rows(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
			"owner_id":    item.OwnerID,
			"request_id":  item.RequestID,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &item.ID, query, args...); err != nil {
		return translateError(err, "item")
	}
	return nil
}

// Update overwrites the mutable fields of an item. Owner never changes.
func (a *ItemAdapter) Update(ctx context.Context, item *entities.Item) error {
	query, args, err := dialect.Update(itemsTable).
		Set(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
		}).
		Where(goqu.C("id").Eq(item.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	result, err := executor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "item")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("item with id %d not found", item.ID))
	}
	return nil
}

// GetByID retrieves an item by ID
func (a *ItemAdapter) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	query, args, err := dialect.From(itemsTable).
		Select(itemColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	item := &entities.Item{}
	if err := sqlx.GetContext(ctx, executor(ctx, a.db), item, query, args...); err != nil {
		return nil, translateError(err, fmt.Sprintf("item with id %d", id))
	}
	return item, nil
}

// ListByOwner returns a page of the owner's items ordered by ID
func (a *ItemAdapter) ListByOwner(ctx context.Context, ownerID int64, page repositories.Page) ([]*entities.Item, error) {
	ds := dialect.From(itemsTable).
		Select(itemColumns...).
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc())

	return a.list(ctx, paginate(ds, page))
}

// Search matches text case-insensitively against name or description of available items
func (a *ItemAdapter) Search(ctx context.Context, text string, page repositories.Page) ([]*entities.Item, error) {
	pattern := "%" + escapeLike(text) + "%"
	ds := dialect.From(itemsTable).
		Select(itemColumns...).
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc())

	return a.list(ctx, paginate(ds, page))
}

// ListByRequestIDs returns every item fulfilling one of the given requests
func (a *ItemAdapter) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*entities.Item, error) {
	if len(requestIDs) == 0 {
		return []*entities.Item{}, nil
	}
	ds := dialect.From(itemsTable).
		Select(itemColumns...).
		Where(goqu.C("request_id").In(requestIDs)).
		Order(goqu.C("id").Asc())

	return a.list(ctx, ds)
}

func (a *ItemAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Item, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	items := []*entities.Item{}
	if err := sqlx.SelectContext(ctx, executor(ctx, a.db), &items, query, args...); err != nil {
		return nil, translateError(err, "items")
	}
	return items, nil
}

// paginate applies a page window; a zero page leaves the dataset unbounded
func paginate(ds *goqu.SelectDataset, page repositories.Page) *goqu.SelectDataset {
	if page.Limit <= 0 {
		return ds
	}
	return ds.Limit(uint(page.Limit)).Offset(uint(page.Offset))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
