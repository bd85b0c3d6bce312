package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
)

const commentsTable = "comments"

// CommentAdapter implements the CommentRepository interface
type CommentAdapter struct {
	db *sqlx.DB
}

// NewCommentAdapter creates a new comment adapter
func NewCommentAdapter(client *postgres.Client) repositories.CommentRepository {
	return &CommentAdapter{db: client.DB()}
}

// Create inserts a comment and fills its generated ID
func (a *CommentAdapter) Create(ctx context.Context, comment *entities.Comment) error {
	query, args, err := dialect.Insert(commentsTable).
		Rows(goqu.Record{
			"text":      comment.Text,
			"item_id":   comment.ItemID,
			"author_id": comment.AuthorID,
			"created":   comment.Created,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &comment.ID, query, args...); err != nil {
		return translateError(err, "comment")
	}
	return nil
}

// ListByItem returns the comments of an item, oldest first
func (a *CommentAdapter) ListByItem(ctx context.Context, itemID int64) ([]*entities.Comment, error) {
	return a.list(ctx, selectComments().Where(goqu.I("c.item_id").Eq(itemID)))
}

// ListByItemIDs returns the comments of several items in one query, oldest first
func (a *CommentAdapter) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*entities.Comment, error) {
	if len(itemIDs) == 0 {
		return []*entities.Comment{}, nil
	}
	return a.list(ctx, selectComments().Where(goqu.I("c.item_id").In(itemIDs)))
}

func (a *CommentAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Comment, error) {
	query, args, err := ds.
		Order(goqu.I("c.created").Asc(), goqu.I("c.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	comments := []*entities.Comment{}
	if err := sqlx.SelectContext(ctx, executor(ctx, a.db), &comments, query, args...); err != nil {
		return nil, translateError(err, "comments")
	}
	return comments, nil
}

func selectComments() *goqu.SelectDataset {
	return dialect.From(goqu.T(commentsTable).As("c")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select(
			goqu.I("c.id"),
			goqu.I("c.text"),
			goqu.I("c.item_id"),
			goqu.I("c.author_id"),
			goqu.I("u.name").As("author_name"),
			goqu.I("c.created"),
		)
}
