package database

import (
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/mkobayashi/relationship-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relationship vocabulary, grouped by category. Content is product data:
// names may repeat across groups (e.g. "Spouse" is both family and romantic)
// but each is stored exactly once.
var (
	familyRelationships = []string{
		"Father", "Mother", "Son", "Daughter", "Brother", "Sister", "Parent", "Sibling", "Child",
		"Grand Father", "Grand Mother", "Grand Son", "Grand Daughter",
		"Great Grand Father", "Great Grand Mother", "Great Grand Son", "Great Grand Daughter",
		"Uncle", "Aunt", "Nephew", "Niece", "Cousin",
		"Step Father", "Step Mother", "Step Brother", "Step Sister", "Step Son", "Step Daughter",
		"Father-in-law", "Mother-in-law", "Brother-in-law", "Sister-in-law", "Son-in-law", "Daughter-in-law",
		"Husband", "Wife", "Spouse",
	}
	exFamilyRelationships = []string{
		"Ex-Father", "Ex-Mother", "Ex-Son", "Ex-Daughter", "Ex-Brother", "Ex-Sister", "Ex-Parent", "Ex-Sibling", "Ex-Child",
		"Ex-Grand Father", "Ex-Grand Mother", "Ex-Grand Son", "Ex-Grand Daughter",
		"Ex-Great Grand Father", "Ex-Great Grand Mother", "Ex-Great Grand Son", "Ex-Great Grand Daughter",
		"Ex-Uncle", "Ex-Aunt", "Ex-Nephew", "Ex-Niece", "Ex-Cousin",
		"Ex-Step Father", "Ex-Step Mother", "Ex-Step Brother", "Ex-Step Sister", "Ex-Step Son", "Ex-Step Daughter",
		"Ex-Father-in-law", "Ex-Mother-in-law", "Ex-Brother-in-law", "Ex-Sister-in-law", "Ex-Son-in-law", "Ex-Daughter-in-law",
		"Ex-Husband", "Ex-Wife",
	}
	romanticRelationships = []string{
		"Boy Friend", "Girl Friend", "Fiancé", "Fiancée", "Lover", "Spouse", "Husband", "Wife", "Crush", "Time Pass",
	}
	exRomanticRelationships = []string{
		"Ex-Boy Friend", "Ex-Girl Friend", "Ex-Fiancé", "Ex-Fiancée", "Ex-Lover", "Ex-Spouse", "Ex-Husband", "Ex-Wife", "Ex-Crush", "Ex-Time Pass",
	}
	socialRelationships   = []string{"Friend"}
	exSocialRelationships = []string{"Ex-Friend"}
)

// DefaultRelationshipNames returns the full catalog with cross-group
// duplicates removed, in catalog order.
func DefaultRelationshipNames() []string {
	groups := [][]string{
		familyRelationships,
		exFamilyRelationships,
		romanticRelationships,
		exRomanticRelationships,
		socialRelationships,
		exSocialRelationships,
	}

	seen := make(map[string]struct{})
	var names []string
	for _, group := range groups {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// SeedRelationshipTypes inserts the relationship vocabulary, skipping names
// that already exist. Safe to invoke on every start; repeated runs never
// duplicate a row.
func SeedRelationshipTypes(db *gorm.DB) error {
	names := DefaultRelationshipNames()
	types := make([]models.RelationshipType, len(names))
	for i, name := range names {
		types[i] = models.RelationshipType{Name: name}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(&types).Error; err != nil {
			return fmt.Errorf("failed to seed relationship types: %w", err)
		}
		return nil
	})
}

// demoProfilePicture is a 1x1 transparent PNG used for the demo persons.
const demoProfilePicture = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/w8AAgMBAp6n1e8AAAAASUVORK5CYII="

// SeedDemoData creates a demo account ("test"/"test") and two persons linked
// to it. Idempotent: existing rows are left untouched. Intended for local
// development behind the SEED_DEMO flag.
func SeedDemoData(db *gorm.DB) error {
	picture, err := base64.StdEncoding.DecodeString(demoProfilePicture)
	if err != nil {
		return fmt.Errorf("failed to decode demo picture: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("test"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         "Test User",
			Username:     "test",
			Email:        "test@example.com",
			PasswordHash: string(hash),
		}
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "username"}},
				DoNothing: true,
			}).
			Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}

		// On conflict the returned id is zero; re-read the existing row.
		if user.ID == 0 {
			if err := tx.Where("username = ?", "test").First(&user).Error; err != nil {
				return fmt.Errorf("failed to load demo user: %w", err)
			}
		}

		persons := []models.Person{
			{
				Name:           "Alice Johnson",
				DateOfBirth:    datePtr(1990, time.May, 15),
				TimeOfBirth:    strPtr("08:30:00"),
				ProfilePicture: picture,
				Address:        strPtr("123 Main St, Springfield"),
				Email:          strPtr("alice.johnson@example.com"),
				PhoneNumber:    strPtr("+1234567890"),
				OwnerID:        &user.ID,
			},
			{
				Name:           "Bob Smith",
				DateOfBirth:    datePtr(1985, time.November, 23),
				TimeOfBirth:    strPtr("14:45:00"),
				ProfilePicture: picture,
				Address:        strPtr("456 Elm St, Metropolis"),
				Email:          strPtr("bob.smith@example.com"),
				PhoneNumber:    strPtr("+0987654321"),
				OwnerID:        &user.ID,
			},
		}
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).
			Create(&persons).Error; err != nil {
			return fmt.Errorf("failed to seed demo persons: %w", err)
		}

		return nil
	})
}

// Seed runs the startup seeding sequence.
func Seed(db *gorm.DB, includeDemo bool) error {
	if err := SeedRelationshipTypes(db); err != nil {
		return err
	}
	if includeDemo {
		log.Println("Seeding demo data")
		if err := SeedDemoData(db); err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
