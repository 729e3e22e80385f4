package main

import (
	"flag"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lavarapido/wash-scheduler/internal/config"
	dbpkg "github.com/lavarapido/wash-scheduler/internal/db"
	"github.com/lavarapido/wash-scheduler/internal/logger"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// Cria (ou promove) um usuário admin. Uso:
//
//	createadmin -name "Admin" -email admin@example.com -password secret
func main() {
	name := flag.String("name", "Admin", "nome do admin")
	email := flag.String("email", "", "e-mail do admin")
	password := flag.String("password", "", "senha do admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	if *email == "" || *password == "" {
		log.Fatal().Msg("email e password são obrigatórios")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	addr := strings.ToLower(strings.TrimSpace(*email))

	var user models.User
	err = db.Where("email = ?", addr).First(&user).Error
	if err == nil {
		user.Role = models.RoleAdmin
		if err := db.Save(&user).Error; err != nil {
			log.Fatal().Err(err).Msg("failed to promote user")
		}
		log.Info().Str("email", addr).Msg("existing user promoted to admin")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	user = models.User{
		Name:         *name,
		Email:        addr,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	log.Info().Str("email", addr).Msg("admin created")
}
