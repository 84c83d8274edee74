package notification

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"github.com/google/uuid"
	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// ShoutrrrAdapter delivers reminders over any shoutrrr-supported channel
// (ntfy, telegram, pushover, ...). Fire and forget: the caller treats an
// attempted send as sent.
type ShoutrrrAdapter struct {
	sender *router.ServiceRouter
	logger ports.LoggerPort
}

func NewShoutrrrAdapter(serviceURL string, logger ports.LoggerPort) (*ShoutrrrAdapter, error) {
	sender, err := shoutrrr.CreateSender(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notification URL: %w", err)
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &ShoutrrrAdapter{
		sender: sender,
		logger: logger,
	}, nil
}

func (a *ShoutrrrAdapter) Send(ctx context.Context, intervalID uuid.UUID, title, body string) error {
	_ = ctx // the router handles its own timeouts

	params := stypes.Params{}
	params.SetTitle(title)

	errs := a.sender.Send(body, &params)
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	a.logger.Info("Reminder dispatched", map[string]interface{}{
		"interval_id": intervalID.String(),
	})
	return nil
}

// NoopAdapter is used when no notification URL is configured. Reminders
// are logged instead of dispatched.
type NoopAdapter struct {
	logger ports.LoggerPort
}

func NewNoopAdapter(logger ports.LoggerPort) *NoopAdapter {
	return &NoopAdapter{logger: logger}
}

func (a *NoopAdapter) Send(ctx context.Context, intervalID uuid.UUID, title, body string) error {
	a.logger.Info("Notification channel disabled, reminder not sent", map[string]interface{}{
		"interval_id": intervalID.String(),
		"title":       title,
	})
	return nil
}
