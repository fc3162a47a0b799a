package activation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/logging"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage/settings"
)

type State int

const (
	// StateUnactivated means no valid activation is on record for this machine.
	StateUnactivated State = iota
	// StatePendingVerification means a key was submitted and is being checked.
	StatePendingVerification
	// StateActivated means a stored record re-verified against this machine.
	StateActivated
)

func (s State) String() string {
	switch s {
	case StatePendingVerification:
		return "pending_verification"
	case StateActivated:
		return "activated"
	}
	return "unactivated"
}

type Service struct {
	settings settings.Repository
	logger   logging.Logger
	secret   string
	state    State
}

func NewService(repo settings.Repository, logger logging.Logger, secret string) *Service {
	return &Service{
		settings: repo,
		logger:   logger,
		secret:   secret,
		state:    StateUnactivated,
	}
}

func (s *Service) State() State { return s.state }

// HardwareID exposes this machine's serial token so the UI can show it to
// the user requesting a key.
func (s *Service) HardwareID() string { return HardwareID() }

// Status loads the persisted activation record and re-verifies it against
// the current machine. The check fails closed: a missing record, a storage
// error or a record bound to different hardware all come back unactivated.
func (s *Service) Status(ctx context.Context) State {
	rec, err := s.settings.ActivationGet(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "could not load activation record", "error", err)
		}
		s.state = StateUnactivated
		return s.state
	}

	if VerifyKey(rec.Email, rec.Mobile, HardwareID(), rec.Key, s.secret) {
		s.state = StateActivated
	} else {
		s.logger.Warn(ctx, "stored activation record does not match this machine")
		s.state = StateUnactivated
	}
	return s.state
}

// Activate checks the submitted key against this machine and, when valid,
// persists the activation record so later starts re-verify silently.
// An invalid key is a normal outcome, not an error; err is non-nil only
// when a valid activation could not be stored.
func (s *Service) Activate(ctx context.Context, name, email, mobile, key string) (bool, error) {
	s.state = StatePendingVerification

	hwid := HardwareID()
	if !VerifyKey(email, mobile, hwid, key, s.secret) {
		s.state = StateUnactivated
		return false, nil
	}

	rec := &models.ActivationRecord{
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Mobile:      strings.TrimSpace(mobile),
		Key:         strings.ToUpper(strings.TrimSpace(key)),
		HardwareID:  hwid,
		ActivatedAt: time.Now().UTC(),
	}
	if err := s.settings.ActivationSave(ctx, rec); err != nil {
		s.state = StateUnactivated
		return false, fmt.Errorf("store activation record: %w", err)
	}

	s.logger.Info(ctx, "application activated", "hardware_id", hwid)
	s.state = StateActivated
	return true, nil
}
