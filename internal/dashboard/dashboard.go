// Package dashboard holds the page logic of the Guest, HotelManager, and
// Admin dashboards, independent of how they are rendered.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

// Describe turns a failed action into the message shown to the user.
func Describe(action string, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, dto.ErrInvalid) {
		return err.Error()
	}
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("Failed to %s: %v", action, err)
	}
	switch apiErr.Kind {
	case apiclient.KindAuth:
		return "Your session has expired. Please log in again."
	case apiclient.KindNetwork:
		return fmt.Sprintf("Failed to %s: the server could not be reached", action)
	case apiclient.KindServer:
		return fmt.Sprintf("Failed to %s: the server reported an error", action)
	default:
		return fmt.Sprintf("Failed to %s: %s", action, apiErr.Message)
	}
}

func logFailure(logger *slog.Logger, action string, err error) {
	logger.Error("dashboard action failed", "action", action, "error", err)
}

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
