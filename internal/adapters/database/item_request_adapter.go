package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
)

const itemRequestsTable = "item_requests"

var itemRequestColumns = []interface{}{"id", "description", "requester_id", "created"}

// ItemRequestAdapter implements the ItemRequestRepository interface
type ItemRequestAdapter struct {
	db *sqlx.DB
}

// NewItemRequestAdapter creates a new item request adapter
func NewItemRequestAdapter(client *postgres.Client) repositories.ItemRequestRepository {
	return &ItemRequestAdapter{db: client.DB()}
}

// Create inserts a request and fills its generated ID
func (a *ItemRequestAdapter) Create(ctx context.Context, request *entities.ItemRequest) error {
	query, args, err := dialect.Insert(itemRequestsTable).
		Rows(goqu.Record{
			"description":  request.Description,
			"requester_id": request.RequesterID,
			"created":      request.Created,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &request.ID, query, args...); err != nil {
		return translateError(err, "item request")
	}
	return nil
}

// GetByID retrieves a request by ID
func (a *ItemRequestAdapter) GetByID(ctx context.Context, id int64) (*entities.ItemRequest, error) {
	query, args, err := dialect.From(itemRequestsTable).
		Select(itemRequestColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	request := &entities.ItemRequest{}
	if err := sqlx.GetContext(ctx, executor(ctx, a.db), request, query, args...); err != nil {
		return nil, translateError(err, fmt.Sprintf("item request with id %d", id))
	}
	return request, nil
}

// ListByRequester returns the requester's own requests, newest first
func (a *ItemRequestAdapter) ListByRequester(ctx context.Context, requesterID int64) ([]*entities.ItemRequest, error) {
	ds := dialect.From(itemRequestsTable).
		Select(itemRequestColumns...).
		Where(goqu.C("requester_id").Eq(requesterID)).
		Order(goqu.C("created").Desc(), goqu.C("id").Desc())

	return a.list(ctx, ds)
}

// ListExcludingRequester returns a page of other users' requests, newest first
func (a *ItemRequestAdapter) ListExcludingRequester(ctx context.Context, requesterID int64, page repositories.Page) ([]*entities.ItemRequest, error) {
	ds := dialect.From(itemRequestsTable).
		Select(itemRequestColumns...).
		Where(goqu.C("requester_id").Neq(requesterID)).
		Order(goqu.C("created").Desc(), goqu.C("id").Desc())

	return a.list(ctx, paginate(ds, page))
}

func (a *ItemRequestAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.ItemRequest, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	requests := []*entities.ItemRequest{}
	if err := sqlx.SelectContext(ctx, executor(ctx, a.db), &requests, query, args...); err != nil {
		return nil, translateError(err, "item requests")
	}
	return requests, nil
}
