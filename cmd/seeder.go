package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"budgets", "transactions", "categories", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		demoEmail := "demo@mail.com"
		demoUsername := "demo"
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		var demoID int64
		err = db.QueryRow("SELECT id FROM users WHERE email = $1", demoEmail).Scan(&demoID)
		if err != nil {
			err = db.QueryRow(
				"INSERT INTO users (email, username, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now()) RETURNING id",
				demoEmail, demoUsername, string(hash),
			).Scan(&demoID)
			if err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoEmail)
		} else {
			fmt.Println("demo user already exists:", demoEmail)
		}

		categories := []string{"Salary", "Groceries", "Rent", "Transport", "Entertainment"}
		categoryIDs := make(map[string]int64, len(categories))
		for _, name := range categories {
			var id int64
			err := db.QueryRow("SELECT id FROM categories WHERE user_id = $1 AND name = $2", demoID, name).Scan(&id)
			if err != nil {
				err = db.QueryRow(
					"INSERT INTO categories (user_id, name, created_at, updated_at) VALUES ($1, $2, now(), now()) RETURNING id",
					demoID, name,
				).Scan(&id)
				if err != nil {
					log.Fatalf("failed to insert category %s: %v", name, err)
				}
				fmt.Printf("Seeded category: %s\n", name)
			}
			categoryIDs[name] = id
		}

		transactions := []struct {
			Category    string
			Amount      string
			Type        string
			Description string
			Date        string
		}{
			{"Salary", "3500.00", "income", "monthly salary", "2026-08-01"},
			{"Groceries", "240.50", "expense", "weekly groceries", "2026-08-05"},
			{"Rent", "1200.00", "expense", "august rent", "2026-08-03"},
			{"Transport", "85.25", "expense", "bus pass", "2026-08-10"},
		}

		for _, t := range transactions {
			var exists int
			err := db.QueryRow(
				"SELECT 1 FROM transactions WHERE user_id = $1 AND description = $2 AND date = $3",
				demoID, t.Description, t.Date,
			).Scan(&exists)
			if err == nil {
				continue
			}
			_, err = db.Exec(
				"INSERT INTO transactions (user_id, category_id, amount, transaction_type, description, date, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, now(), now())",
				demoID, categoryIDs[t.Category], t.Amount, t.Type, t.Description, t.Date,
			)
			if err != nil {
				log.Fatalf("failed to insert transaction %s: %v", t.Description, err)
			}
			fmt.Printf("Seeded transaction: %s\n", t.Description)
		}

		budgets := []struct {
			Category string
			Amount   string
			Month    string
		}{
			{"Groceries", "400.00", "2026-08-01"},
			{"Transport", "120.00", "2026-08-01"},
			{"Entertainment", "150.00", "2026-08-01"},
		}

		for _, b := range budgets {
			var exists int
			err := db.QueryRow(
				"SELECT 1 FROM budgets WHERE user_id = $1 AND category_id = $2 AND month = $3",
				demoID, categoryIDs[b.Category], b.Month,
			).Scan(&exists)
			if err == nil {
				continue
			}
			_, err = db.Exec(
				"INSERT INTO budgets (user_id, category_id, amount, month, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				demoID, categoryIDs[b.Category], b.Amount, b.Month,
			)
			if err != nil {
				log.Fatalf("failed to insert budget for %s: %v", b.Category, err)
			}
			fmt.Printf("Seeded budget: %s %s\n", b.Category, b.Month)
		}

		fmt.Println("Sample data seeded successfully")
	},
}
