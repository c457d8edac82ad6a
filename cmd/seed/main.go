package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"forestinv/internal/auth"
	"forestinv/internal/config"
	"forestinv/internal/db"
	"forestinv/internal/model"
	"forestinv/internal/repository"
)

const (
	adminEmail    = "admin@forestinventory.local"
	adminPassword = "Admin123!"
)

func density(v float64) *float64 { return &v }

// baseSpecies is the starter catalog loaded into fresh installs. Wood density
// values are oven-dry, in kg/m3 to match the column unit.
var baseSpecies = []model.Species{
	{CommonName: "Pino", ScientificName: "Pinus oocarpa", Family: "Pinaceae", WoodDensity: density(550), Active: true},
	{CommonName: "Encino", ScientificName: "Quercus spp.", Family: "Fagaceae", WoodDensity: density(700), Active: true},
	{CommonName: "Cedro", ScientificName: "Cedrela odorata", Family: "Meliaceae", WoodDensity: density(420), Active: true},
	{CommonName: "Caoba", ScientificName: "Swietenia macrophylla", Family: "Meliaceae", WoodDensity: density(450), Active: true},
	{CommonName: "Ciprés", ScientificName: "Cupressus lusitanica", Family: "Cupressaceae", WoodDensity: density(430), Active: true},
	{CommonName: "Eucalipto", ScientificName: "Eucalyptus globulus", Family: "Myrtaceae", WoodDensity: density(600), Active: true},
	{CommonName: "Guanacaste", ScientificName: "Enterolobium cyclocarpum", Family: "Fabaceae", WoodDensity: density(340), Active: true},
	{CommonName: "Laurel", ScientificName: "Cordia alliodora", Family: "Boraginaceae", WoodDensity: density(480), Active: true},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Species{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedSpecies(ctx, gormDB, repository.NewSpeciesRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed species catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Species created: %d", created)
	log.Printf("  - Species already present: %d", skipped)
}

// seedAdmin creates the bootstrap administrator unless one already exists.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	existing, err := users.FindByEmail(ctx, adminEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("error checking admin user: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &model.User{
		FullName:     "Administrador del Sistema",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdministrador,
		Active:       true,
		Organization: "Forest Inventory",
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}
	log.Printf("Admin user created: %s (change the default password after first login)", adminEmail)
	return nil
}

// seedSpecies inserts the base catalog, skipping species already present by
// common name.
func seedSpecies(ctx context.Context, gormDB *gorm.DB, species repository.SpeciesRepository) (created int, skipped int, err error) {
	for _, s := range baseSpecies {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Species{}).
			Where("common_name = ?", s.CommonName).Count(&count).Error; err != nil {
			return created, skipped, fmt.Errorf("error checking species %s: %w", s.CommonName, err)
		}
		if count > 0 {
			skipped++
			continue
		}
		entry := s
		if err := species.Create(ctx, &entry); err != nil {
			return created, skipped, fmt.Errorf("error creating species %s: %w", s.CommonName, err)
		}
		created++
	}
	return created, skipped, nil
}
