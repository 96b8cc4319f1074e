package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/KennethL27/personal-cloud-service/internal/services"
)

// RunShareCommand grants guest access to email rooted at path, bypassing the
// administrator check that guards the HTTP endpoint.
func RunShareCommand(dbPath string, email string, name string, path string, out io.Writer) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("path is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	_, shares := services.NewSQLiteServices(database)
	guest, err := shares.Grant(services.ShareRequest{
		Name:                   name,
		Email:                  normalizedEmail,
		HardDrivePathSelection: path,
	})
	if err != nil {
		return fmt.Errorf("share access: %w", err)
	}

	fmt.Fprintln(out, "✅ Access shared")
	fmt.Fprintf(out, "Guest: %s\n", guest.Email)
	fmt.Fprintf(out, "Root:  %s\n", strings.TrimSpace(path))
	return nil
}
