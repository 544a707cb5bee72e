// Package cli holds the interactive prompts of the maintenance commands.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/jobportal/internal/server/models"
)

const minPasswordLength = 8

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
)

// AdminInitializer creates or promotes the administrator account.
type AdminInitializer interface {
	InitAdmin(ctx context.Context, email, password, firstName, lastName string) (*models.User, bool, error)
}

// InitAdmin asks for the administrator's details on reader/w and passes them
// to svc. The password is read twice without echo.
func InitAdmin(ctx context.Context, svc AdminInitializer, reader *bufio.Reader, w io.Writer) error {
	email, err := GetSimpleText(reader, "Admin email", w)
	if err != nil {
		return err
	}
	first, err := GetSimpleText(reader, "First name", w)
	if err != nil {
		return err
	}
	last, err := GetSimpleText(reader, "Last name", w)
	if err != nil {
		return err
	}

	password, err := GetPassword("Password", w)
	if err != nil {
		return err
	}
	defer Wipe(password)

	confirm, err := GetPassword("Repeat password", w)
	if err != nil {
		return err
	}
	defer Wipe(confirm)

	if !bytes.Equal(password, confirm) {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, created, err := svc.InitAdmin(ctx, email, string(password), first, last)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(w, "Created administrator %s\n", user.Email)
	} else {
		fmt.Fprintf(w, "Granted administrator rights to %s\n", user.Email)
	}
	return nil
}
