// Command token mints a bearer token for a user id, for operators and local
// testing. There is no login flow in the service itself.
package main

import (
	"flag"
	"fmt"
	"os"
	"pantry-manager/internal/utils"
	"pantry-manager/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

func main() {
	userID := flag.String("user", "", "user id (uuid) to put in the token")
	ttl := flag.Duration("ttl", jwt.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	utils.LoadConfig()

	if _, err := uuid.Parse(*userID); err != nil {
		log.Errorf("invalid -user %q: %v", *userID, err)
		os.Exit(2)
	}

	token, err := jwt.NewJWTService().GenerateTokenUser(*userID, *ttl)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
