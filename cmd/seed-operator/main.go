package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/shotclock/backend/internal/config"
	"github.com/shotclock/backend/internal/database"
	"github.com/shotclock/backend/internal/operator"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	username := os.Getenv("OPERATOR_USERNAME")
	if username == "" {
		username = "court-desk"
		log.Printf("Using default operator username: %s", username)
	}

	token := os.Getenv("OPERATOR_TOKEN")
	if token == "" {
		token = "change-me-in-production"
		log.Printf("WARNING: Using default operator token. Set OPERATOR_TOKEN env var in production!")
	}

	displayName := os.Getenv("OPERATOR_DISPLAY_NAME")
	if displayName == "" {
		displayName = "Court Desk"
	}

	roles := []string{operator.RoleOperator, operator.RoleSensor}
	var allowedIPs []string // empty = allow from any IP
	if ips := os.Getenv("OPERATOR_ALLOWED_IPS"); ips != "" {
		for _, ip := range strings.Split(ips, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				allowedIPs = append(allowedIPs, ip)
			}
		}
	}

	err = operator.NewDesk(db).Enroll(context.Background(), operator.Enrollment{
		Username:    username,
		DisplayName: displayName,
		Token:       token,
		Roles:       roles,
		AllowedIPs:  allowedIPs,
	})
	if err != nil {
		log.Fatalf("Failed to create operator account: %v", err)
	}

	log.Printf("Operator account created/updated")
	log.Printf("  Username: %s", username)
	log.Printf("  Display Name: %s", displayName)
	log.Printf("  Roles: %v", roles)
	log.Printf("  Allowed IPs: %v", allowedIPs)
	log.Println("Log in with POST /api/v1/operator/login {\"username\", \"token\"}")
}
