package main

import (
	"flag"
	"log"
	"time"

	"refund-decision-be/internal/config"
	"refund-decision-be/internal/model"
	"refund-decision-be/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	seed := flag.Bool("seed", false, "insert a demo account and case after migrating")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	log.Println("Step 1: Setting up Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.Account{},
		&model.Case{},
		&model.RefundDecisionAudit{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating Indexes...")
	postMigrationSQL := []string{
		// Serves the approved-refund rollup
		`CREATE INDEX IF NOT EXISTS idx_cases_account_refund_approved ON cases (account_id) WHERE refund_approved = true;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	if *seed {
		log.Println("Step 4: Seeding demo data...")
		approvedAt := time.Now().AddDate(-1, -2, 0)
		account := model.Account{ID: uuid.New(), Name: "Demo Staffing Ltd", ApprovedAt: &approvedAt}
		kase := model.Case{
			ID:                       uuid.New(),
			AccountID:                &account.ID,
			CaseNumber:               "00001001",
			Subject:                  "Refund for unused shortlists",
			AmountRefunded:           decimal.Zero,
			RefundRequestTotalAmount: decimal.Zero,
		}
		if err := db.Create(&account).Error; err != nil {
			log.Fatalf("Error: seeding account failed: %v", err)
		}
		if err := db.Create(&kase).Error; err != nil {
			log.Fatalf("Error: seeding case failed: %v", err)
		}
		log.Printf("Seeded case %s (%s)", kase.CaseNumber, kase.ID)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
