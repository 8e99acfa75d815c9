// issue_token emite un JWT firmado con JWT_SECRET para operar la API sin servicio de login.
//
// Uso: go run ./cmd/issue_token -user <id> [-role admin|staff] [-minutes 60]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/tiles-api/pkg/config"
	"github.com/jhoicas/tiles-api/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	userID := flag.String("user", "", "ID del usuario (vacío: se genera uno)")
	role := flag.String("role", jwt.RoleStaff, "rol: admin o staff")
	minutes := flag.Int("minutes", cfg.JWT.Expiration, "minutos de validez")
	flag.Parse()

	if *role != jwt.RoleAdmin && *role != jwt.RoleStaff {
		fmt.Fprintf(os.Stderr, "Rol no soportado: %q\n", *role)
		os.Exit(2)
	}
	if *userID == "" {
		*userID = uuid.New().String()
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, *minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
