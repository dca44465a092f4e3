package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/stemsi/cbity-backend/internal/authn"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/database"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/logger"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/repository"
)

var names = []string{
	"Adebayo Oluwaseun", "Chioma Okafor", "Emeka Nwosu", "Fatima Bello", "Tunde Bakare",
	"Ngozi Eze", "Ibrahim Musa", "Aisha Lawal", "Segun Adeyemi", "Kemi Ogunleye",
	"Chinedu Obi", "Halima Sani", "Olumide Ajayi", "Blessing Udo", "Yusuf Garba",
	"Funmilayo Adeola", "Ikenna Okeke", "Zainab Abubakar", "Femi Olatunji", "Amaka Nnamdi",
	"Musa Danjuma", "Titilayo Ojo", "Obinna Chukwu", "Hauwa Ibrahim", "Kunle Afolabi",
	"Nkechi Onyeka", "Sadiq Usman", "Bukola Akinwale", "Uche Agu", "Rukayat Salami",
}

func main() {
	subdomain := flag.String("school", "lagosmodel", "Subdomain of the school to seed")
	count := flag.Int("count", len(names), "Number of students to create")
	password := flag.String("password", "password123", "Password of every seeded student")
	class := flag.String("class", "SS3A", "Class assigned to the seeded students")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "seed-students", Stderr: true})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	auth := authn.NewService(pool, nil, localstore.NewMemoryStore(), authn.NewLogMailer(log), cfg, log)
	store := repository.NewStore(pool)

	school, err := findOrCreateSchool(ctx, store, *subdomain)
	if err != nil {
		log.Fatal().Err(err).Str("subdomain", *subdomain).Msg("Failed to prepare school")
	}

	fmt.Printf("=== Seeding %d students into %s ===\n", *count, school.Name)

	successCount := 0
	for i := 0; i < *count; i++ {
		name := names[i%len(names)]
		studentID := fmt.Sprintf("STD%03d", i+1)
		email := fmt.Sprintf("%s@%s.cbity.test", strings.ToLower(studentID), school.Subdomain)

		cred, err := auth.CreateConfirmedUser(ctx, email, *password)
		if err != nil {
			fmt.Printf("Error creating credential for %s (%s): %v\n", name, email, err)
			continue
		}

		_, err = store.CreateUser(ctx, &model.User{
			ID:        cred.ID,
			Email:     email,
			Name:      name,
			Role:      model.RoleStudent,
			SchoolID:  &school.ID,
			StudentID: studentID,
			Class:     *class,
			Status:    model.StatusActive,
		})
		if err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", name, studentID, err)
			continue
		}

		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Created %d students...\n", successCount)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, *count)
}

// findOrCreateSchool returns the school using subdomain, creating an active
// one when none exists.
func findOrCreateSchool(ctx context.Context, store *repository.Store, subdomain string) (*model.School, error) {
	schools, err := store.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range schools {
		if schools[i].Subdomain == subdomain {
			fmt.Printf("Found existing school with ID: %s\n", schools[i].ID)
			return &schools[i], nil
		}
	}

	fmt.Printf("School %q not found. Creating it...\n", subdomain)
	return store.CreateSchool(ctx, &model.School{
		Name:         "Seeded School " + subdomain,
		Subdomain:    subdomain,
		Subscription: model.PlanStarter,
		Status:       model.StatusActive,
	})
}
