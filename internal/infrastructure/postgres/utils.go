package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/tiles-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isInvalidText verifica si un parámetro no se pudo convertir al tipo de la columna (22P02),
// p. ej. un ID que no es UUID.
func isInvalidText(err error) bool {
	return pgCode(err) == codeInvalidText
}

// isMissing indica que la lectura no encontró la fila. Un ID malformado no puede existir.
func isMissing(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// writeError traduce errores de INSERT/UPDATE: duplicado o referencia inexistente.
func writeError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err), isInvalidText(err):
		return domain.ErrInvalidInput
	}
	return wrap(op, err)
}

// deleteError traduce errores de DELETE: una fila referenciada no se puede borrar.
func deleteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	case isInvalidText(err):
		return domain.ErrNotFound
	}
	return wrap(op, err)
}

// listError traduce errores de listados: un filtro con un ID malformado no coincide con ninguna fila.
func listError(op string, err error) error {
	if isInvalidText(err) {
		return nil
	}
	return wrap(op, err)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// affectedOrNotFound convierte "0 filas" en ErrNotFound.
func affectedOrNotFound(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
