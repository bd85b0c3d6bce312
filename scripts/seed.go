package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shareit/backend/internal/adapters/database"
	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	"github.com/shareit/backend/internal/infrastructure/observability"
	"github.com/shareit/backend/pkg/config"
)

// seed fills a development database through the services
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("shareit-seed", cfg.Server.Env)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				comments,
				bookings,
				items,
				item_requests,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	itemRepo := database.NewItemAdapter(pgClient)
	requestRepo := database.NewItemRequestAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	commentRepo := database.NewCommentAdapter(pgClient)
	tx := database.NewTransactor(pgClient)

	userService := services.NewUserService(userRepo, tx)
	commentService := services.NewCommentService(commentRepo, userRepo, itemRepo, bookingRepo, tx)
	itemService := services.NewItemService(itemRepo, userRepo, requestRepo, bookingRepo, commentService, tx)
	requestService := services.NewItemRequestService(requestRepo, userRepo, itemRepo, tx)
	bookingService := services.NewBookingService(bookingRepo, itemRepo, userRepo, tx)

	// 1. Seed users
	people := []struct{ name, email string }{
		{"Alice Lender", "alice@shareit.dev"},
		{"Bob Borrower", "bob@shareit.dev"},
		{"Carol Neighbour", "carol@shareit.dev"},
	}
	users := make([]*entities.User, 0, len(people))
	for _, p := range people {
		u, err := userService.Create(ctx, p.name, p.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", p.email).Msg("Failed to create user")
		}
		users = append(users, u)
	}
	alice, bob, carol := users[0], users[1], users[2]

	// 2. Seed an item request and an item answering it
	tentRequest, err := requestService.Create(ctx, carol.ID, "Looking for a two person tent for the weekend")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create item request")
	}

	available := true
	catalog := []services.NewItem{
		{Name: "Cordless drill", Description: "18V drill with two batteries", Available: &available},
		{Name: "Ladder", Description: "Three metre aluminium ladder", Available: &available},
		{Name: "Tent", Description: "Two person dome tent", Available: &available, RequestID: &tentRequest.ID},
	}
	items := make([]*entities.Item, 0, len(catalog))
	for _, in := range catalog {
		item, err := itemService.Create(ctx, alice.ID, in)
		if err != nil {
			log.Fatal().Err(err).Str("item", in.Name).Msg("Failed to create item")
		}
		items = append(items, item)
	}
	drill, ladder := items[0], items[1]

	// 3. Seed bookings: one finished and approved, one waiting in the future
	now := time.Now()
	finished, err := bookingService.Create(ctx, bob.ID, services.NewBooking{
		ItemID: drill.ID,
		Start:  now.AddDate(0, 0, -7),
		End:    now.AddDate(0, 0, -5),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create past booking")
	}
	if _, err := bookingService.Decide(ctx, finished.ID, alice.ID, true); err != nil {
		log.Fatal().Err(err).Msg("Failed to approve past booking")
	}

	if _, err := bookingService.Create(ctx, carol.ID, services.NewBooking{
		ItemID: ladder.ID,
		Start:  now.AddDate(0, 0, 2),
		End:    now.AddDate(0, 0, 3),
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to create future booking")
	}

	// 4. Seed a comment from the finished booking
	if _, err := commentService.Add(ctx, bob.ID, drill.ID, "Worked great, batteries lasted all day"); err != nil {
		log.Fatal().Err(err).Msg("Failed to create comment")
	}

	log.Info().
		Int("users", len(users)).
		Int("items", len(items)).
		Msg("Seeding completed")
}
