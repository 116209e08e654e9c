// Command fleetops_token mints a bearer token for local runs against the API.
//
//	go run ./cmd/fleetops_token -user alice -role FINANCE
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	"github.com/SscSPs/fleetops_finance/internal/platform/config"
	"github.com/SscSPs/fleetops_finance/internal/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	userID := flag.String("user", "", "subject (user id) of the token")
	role := flag.String("role", string(domain.RoleReadOnly), "ADMIN, FINANCE, DISPATCHER or READONLY")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.GenerateJWT(domain.Actor{UserID: *userID, Role: domain.UserRole(*role)}, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
