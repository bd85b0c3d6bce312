package postgres

import (
	"context"
	"fmt"
)

// schema is the full database schema. Every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id    BIGSERIAL PRIMARY KEY,
    name  VARCHAR(255) NOT NULL,
    email VARCHAR(512) NOT NULL,
    CONSTRAINT uq_users_email UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS item_requests (
    id           BIGSERIAL PRIMARY KEY,
    description  VARCHAR(1024) NOT NULL,
    requester_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_item_requests_requester ON item_requests(requester_id, created DESC);

CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(255) NOT NULL,
    description VARCHAR(1024) NOT NULL,
    available   BOOLEAN NOT NULL,
    owner_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    request_id  BIGINT REFERENCES item_requests(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id, id);
CREATE INDEX IF NOT EXISTS idx_items_request ON items(request_id);

CREATE TABLE IF NOT EXISTS bookings (
    id         BIGSERIAL PRIMARY KEY,
    start_date TIMESTAMPTZ NOT NULL,
    end_date   TIMESTAMPTZ NOT NULL,
    item_id    BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    booker_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    status     VARCHAR(16) NOT NULL CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED', 'CANCELED')),
    CONSTRAINT chk_bookings_range CHECK (start_date < end_date)
);

CREATE INDEX IF NOT EXISTS idx_bookings_booker ON bookings(booker_id, start_date DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_item ON bookings(item_id, start_date);

CREATE TABLE IF NOT EXISTS comments (
    id        BIGSERIAL PRIMARY KEY,
    text      VARCHAR(2048) NOT NULL,
    item_id   BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_id, created);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
