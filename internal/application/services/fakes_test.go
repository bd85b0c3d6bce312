package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// memStore is an in-memory stand-in for the PostgreSQL adapters
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]entities.User
	items    map[int64]entities.Item
	requests map[int64]entities.ItemRequest
	bookings map[int64]entities.Booking
	comments map[int64]entities.Comment

	searchCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]entities.User{},
		items:    map[int64]entities.Item{},
		requests: map[int64]entities.ItemRequest{},
		bookings: map[int64]entities.Booking{},
		comments: map[int64]entities.Comment{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func notFound(entity string, id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", entity, id))
}

func paginate[T any](rows []T, page repositories.Page) []T {
	if page.Limit <= 0 {
		return rows
	}
	if page.Offset >= len(rows) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[page.Offset:end]
}

type fakeTransactor struct{ calls int }

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// users

type fakeUsers struct{ s *memStore }

func (r fakeUsers) Create(ctx context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperrors.NewConflictError("user hasn't been saved", nil)
		}
	}
	user.ID = r.s.id()
	r.s.users[user.ID] = *user
	return nil
}

func (r fakeUsers) Update(ctx context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return notFound("user", user.ID)
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Email == user.Email {
			return apperrors.NewConflictError("user hasn't been saved", nil)
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r fakeUsers) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (r fakeUsers) List(ctx context.Context) ([]*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entities.User{}
	for _, u := range r.s.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeUsers) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

// items

type fakeItems struct{ s *memStore }

func (r fakeItems) Create(ctx context.Context, item *entities.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.id()
	r.s.items[item.ID] = *item
	return nil
}

func (r fakeItems) Update(ctx context.Context, item *entities.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.items[item.ID]
	if !ok {
		return notFound("item", item.ID)
	}
	stored.Name, stored.Description, stored.Available = item.Name, item.Description, item.Available
	r.s.items[item.ID] = stored
	return nil
}

func (r fakeItems) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, notFound("item", id)
	}
	item.Comments, item.LastBooking, item.NextBooking = nil, nil, nil
	return &item, nil
}

func (r fakeItems) collect(match func(entities.Item) bool) []*entities.Item {
	out := []*entities.Item{}
	for _, item := range r.s.items {
		if match(item) {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeItems) ListByOwner(ctx context.Context, ownerID int64, page repositories.Page) ([]*entities.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := r.collect(func(i entities.Item) bool { return i.OwnerID == ownerID })
	// hand back the page in reverse to prove the service re-sorts
	page1 := paginate(items, page)
	reversed := make([]*entities.Item, len(page1))
	for i, item := range page1 {
		reversed[len(page1)-1-i] = item
	}
	return reversed, nil
}

func (r fakeItems) Search(ctx context.Context, text string, page repositories.Page) ([]*entities.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.searchCalls++
	needle := strings.ToUpper(text)
	return paginate(r.collect(func(i entities.Item) bool {
		return i.Available && (strings.Contains(strings.ToUpper(i.Name), needle) ||
			strings.Contains(strings.ToUpper(i.Description), needle))
	}), page), nil
}

func (r fakeItems) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*entities.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := map[int64]bool{}
	for _, id := range requestIDs {
		wanted[id] = true
	}
	return r.collect(func(i entities.Item) bool { return i.RequestID != nil && wanted[*i.RequestID] }), nil
}

// item requests

type fakeRequests struct{ s *memStore }

func (r fakeRequests) Create(ctx context.Context, request *entities.ItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request.ID = r.s.id()
	stored := *request
	stored.Items = nil
	r.s.requests[request.ID] = stored
	return nil
}

func (r fakeRequests) GetByID(ctx context.Context, id int64) (*entities.ItemRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, notFound("item request", id)
	}
	return &req, nil
}

func (r fakeRequests) newestFirst(match func(entities.ItemRequest) bool) []*entities.ItemRequest {
	out := []*entities.ItemRequest{}
	for _, req := range r.s.requests {
		if match(req) {
			req := req
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID > out[j].ID
		}
		return out[i].Created.After(out[j].Created)
	})
	return out
}

func (r fakeRequests) ListByRequester(ctx context.Context, requesterID int64) ([]*entities.ItemRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.newestFirst(func(req entities.ItemRequest) bool { return req.RequesterID == requesterID }), nil
}

func (r fakeRequests) ListExcludingRequester(ctx context.Context, requesterID int64, page repositories.Page) ([]*entities.ItemRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return paginate(r.newestFirst(func(req entities.ItemRequest) bool { return req.RequesterID != requesterID }), page), nil
}

// bookings

type fakeBookings struct{ s *memStore }

func (r fakeBookings) Create(ctx context.Context, booking *entities.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking.ID = r.s.id()
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r fakeBookings) UpdateStatus(ctx context.Context, id int64, status entities.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return notFound("booking", id)
	}
	b.Status = status
	r.s.bookings[id] = b
	return nil
}

func (r fakeBookings) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}
	return &b, nil
}

// matchesFilter evaluates the store predicates of f against b in memory
func matchesFilter(f repositories.BookingFilter, b *entities.Booking) bool {
	switch {
	case f.BookerID != 0 && b.Booker.ID != f.BookerID:
		return false
	case f.OwnerID != 0 && b.Item.OwnerID != f.OwnerID:
		return false
	case f.StartBefore != nil && !b.Start.Before(*f.StartBefore):
		return false
	case f.StartAfter != nil && !b.Start.After(*f.StartAfter):
		return false
	case f.EndBefore != nil && !b.End.Before(*f.EndBefore):
		return false
	case f.EndAfter != nil && !b.End.After(*f.EndAfter):
		return false
	case f.Status != "" && b.Status != f.Status:
		return false
	}
	return true
}

func (r fakeBookings) collect(match func(*entities.Booking) bool) []*entities.Booking {
	out := []*entities.Booking{}
	for _, b := range r.s.bookings {
		b := b
		if match(&b) {
			out = append(out, &b)
		}
	}
	return out
}

func (r fakeBookings) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.collect(func(b *entities.Booking) bool { return matchesFilter(filter, b) })
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return paginate(out, filter.Page), nil
}

func (r fakeBookings) first(match func(*entities.Booking) bool, less func(a, b *entities.Booking) bool) *entities.Booking {
	out := r.collect(match)
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out[0]
}

func (r fakeBookings) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.first(func(b *entities.Booking) bool {
		return b.Item.ID == itemID && b.Status == entities.BookingStatusApproved && b.Start.Before(now)
	}, func(a, b *entities.Booking) bool { return a.Start.After(b.Start) }), nil
}

func (r fakeBookings) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.first(func(b *entities.Booking) bool {
		return b.Item.ID == itemID && b.Status == entities.BookingStatusApproved && b.Start.After(now)
	}, func(a, b *entities.Booking) bool { return a.Start.Before(b.Start) }), nil
}

func (r fakeBookings) FindLatestFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.first(func(b *entities.Booking) bool {
		return b.Booker.ID == bookerID && b.Item.ID == itemID &&
			b.Status == entities.BookingStatusApproved && b.End.Before(now)
	}, func(a, b *entities.Booking) bool { return a.End.After(b.End) }), nil
}

// comments

type fakeComments struct{ s *memStore }

func (r fakeComments) Create(ctx context.Context, comment *entities.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = r.s.id()
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r fakeComments) list(match func(entities.Comment) bool) []*entities.Comment {
	out := []*entities.Comment{}
	for _, c := range r.s.comments {
		if match(c) {
			c := c
			c.AuthorName = r.s.users[c.AuthorID].Name
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}

func (r fakeComments) ListByItem(ctx context.Context, itemID int64) ([]*entities.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(c entities.Comment) bool { return c.ItemID == itemID }), nil
}

func (r fakeComments) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*entities.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := map[int64]bool{}
	for _, id := range itemIDs {
		wanted[id] = true
	}
	return r.list(func(c entities.Comment) bool { return wanted[c.ItemID] }), nil
}

// event bus

type recordingEventBus struct {
	mu     sync.Mutex
	events []*entities.BookingEvent
	err    error
}

func (b *recordingEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, event)
	return nil
}

func (b *recordingEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	return nil, nil
}

func (b *recordingEventBus) Close() error { return nil }

// clock

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// app wires every service over one store, as cmd/api does over PostgreSQL
type app struct {
	store    *memStore
	tx       *fakeTransactor
	clock    *fakeClock
	bus      *recordingEventBus
	users    *services.UserService
	items    *services.ItemService
	requests *services.ItemRequestService
	bookings *services.BookingService
	comments *services.CommentService
}

func newApp() *app {
	store := newMemStore()
	tx := &fakeTransactor{}
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	bus := &recordingEventBus{}

	users, items, requests, bookings, comments := fakeUsers{store}, fakeItems{store}, fakeRequests{store}, fakeBookings{store}, fakeComments{store}

	a := &app{
		store:    store,
		tx:       tx,
		clock:    clock,
		bus:      bus,
		users:    services.NewUserService(users, tx),
		comments: services.NewCommentService(comments, users, items, bookings, tx),
		requests: services.NewItemRequestService(requests, users, items, tx),
		bookings: services.NewBookingService(bookings, items, users, tx),
	}
	a.items = services.NewItemService(items, users, requests, bookings, a.comments, tx)

	a.comments.SetClock(clock.Now)
	a.items.SetClock(clock.Now)
	a.requests.SetClock(clock.Now)
	a.bookings.SetClock(clock.Now)
	a.bookings.SetEventBus(bus, nil)
	return a
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }
