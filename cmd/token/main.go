package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/campuskit/rollcall/internal/auth"
	"github.com/campuskit/rollcall/internal/config"
	"github.com/campuskit/rollcall/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	userID := flag.Int64("user", 0, "User id to issue the token for")
	email := flag.String("email", "", "User email")
	role := flag.String("role", string(domain.RoleLecturer), "User role: admin, lecturer, student")
	flag.Parse()

	if *userID <= 0 {
		return fmt.Errorf("user flag is required")
	}

	parsedRole, err := domain.ParseRole(*role)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpiryHrs)*time.Hour)

	token, err := jwtService.GenerateToken(*userID, *email, parsedRole)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
