package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/config"
	"github.com/frontandrew/crosspass/internal/pkg/database"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository/postgres"
	"github.com/frontandrew/crosspass/internal/usecase/identity"
	"github.com/frontandrew/crosspass/internal/usecase/pass"
	"github.com/frontandrew/crosspass/internal/usecase/traveller"
	"github.com/frontandrew/crosspass/internal/usecase/vehicle"
)

// Демо-данные для локальной разработки: четыре путешественника,
// четыре автомобиля и один пропуск на сегодня
func main() {
	fmt.Println("=========================================")
	fmt.Println("CROSSPASS Seed Data")
	fmt.Println("=========================================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, &cfg.Database); err != nil {
		fmt.Printf("❌ Failed to run migrations: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Connected, migrations applied")
	fmt.Println()

	log := logger.NewNoop()
	tokenService := jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessExpiry)

	identityRepo := postgres.NewIdentityRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	travellerLinkRepo := postgres.NewTravellerLinkRepository(db)
	passRepo := postgres.NewPassRepository(db)

	identityService := identity.NewService(identityRepo, tokenService, log)
	vehicleService := vehicle.NewService(vehicleRepo, identityRepo, log)
	travellerService := traveller.NewService(travellerLinkRepo, identityRepo, log)
	passService := pass.NewService(passRepo, identityRepo, vehicleRepo, log)

	middleName := "Jane"
	seedIdentities := []*identity.RegisterRequest{
		{
			Email: "alice@example.com", Password: "password123",
			FirstName: "Alice", MiddleName: &middleName, LastName: "Wong",
			DateOfBirth: "1988-03-12", PassportIssuingCountry: "Singapore",
			PassportNumber: "A12345678", PassportExpiry: "2030-03-12",
		},
		{
			Email: "bob@example.com", Password: "password123",
			FirstName: "Bob", LastName: "Tan",
			DateOfBirth: "1985-07-01", PassportIssuingCountry: "Singapore",
			PassportNumber: "C98765432", PassportExpiry: "2029-07-01",
		},
		{
			Email: "charlie@example.com", Password: "password123",
			FirstName: "Charlie", LastName: "Lim",
			DateOfBirth: "1992-11-23", PassportIssuingCountry: "United Kingdom",
			PassportNumber: "UK7654321", PassportExpiry: "2031-11-23",
		},
		{
			Email: "dave@example.com", Password: "password123",
			FirstName: "Dave", LastName: "Ng",
			DateOfBirth: "1979-05-05", PassportIssuingCountry: "Australia",
			PassportNumber: "AU11223344", PassportExpiry: "2028-05-05",
		},
	}

	fmt.Println("Seeding identities...")
	for _, req := range seedIdentities {
		created, err := identityService.Register(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrPassportTaken) {
				fmt.Printf("   %s already exists, skipping\n", req.Email)
				continue
			}
			fmt.Printf("❌ Failed to register %s: %v\n", req.Email, err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s %s (%s)\n", created.FirstName, created.LastName, created.PassportNumber)
	}
	fmt.Println()

	alice, err := identityRepo.GetByPassportNumber(ctx, "A12345678")
	if err != nil {
		fmt.Printf("❌ Failed to load Alice: %v\n", err)
		os.Exit(1)
	}

	seedVehicles := []struct {
		number string
		label  string
	}{
		{"SKR9859E", "Honda Vezel"},
		{"SGB267D", "Toyota Prius"},
		{"GBH1206B", "Mazda 3"},
		{"GBL1368X", "Kia Cerato"},
	}

	fmt.Println("Seeding vehicles...")
	for _, v := range seedVehicles {
		if _, err := vehicleService.RegisterVehicle(ctx, &vehicle.RegisterVehicleRequest{
			UserID:        alice.ID,
			VehicleNumber: v.number,
			Label:         v.label,
		}); err != nil {
			fmt.Printf("❌ Failed to register vehicle %s: %v\n", v.number, err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s (%s)\n", v.number, v.label)
	}
	fmt.Println()

	fmt.Println("Seeding traveller list...")
	for _, passport := range []string{"C98765432", "UK7654321", "AU11223344"} {
		if _, err := travellerService.AddKnownTraveller(ctx, &traveller.AddTravellerRequest{
			CreatorID:      alice.ID,
			PassportNumber: passport,
		}); err != nil {
			if errors.Is(err, domain.ErrTravellerLinkExists) {
				fmt.Printf("   %s already linked, skipping\n", passport)
				continue
			}
			fmt.Printf("❌ Failed to link traveller %s: %v\n", passport, err)
			os.Exit(1)
		}
		fmt.Printf("✅ linked %s\n", passport)
	}
	fmt.Println()

	fmt.Println("Seeding pass for today...")
	today := time.Now().UTC().Format("2006-01-02")
	created, err := passService.CreatePass(ctx, &pass.CreatePassRequest{
		CreatorID:                alice.ID,
		PassDate:                 today,
		VehicleNumber:            "SKR9859E",
		TravellerPassportNumbers: []string{"A12345678", "C98765432"},
	})
	if err != nil {
		fmt.Printf("❌ Failed to create pass: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ pass %s valid until %s\n", created.ID, created.ExpiryDatetime.Format(time.RFC3339))

	fmt.Println()
	fmt.Println("Seed complete.")
}
