package activation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/logging"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	activation *models.ActivationRecord
	getErr     error
	saveErr    error
	saved      *models.ActivationRecord
}

func (s *stubSettings) EmailConfigGet(ctx context.Context) (*models.EmailConfig, error) {
	return nil, common.ErrNotFound
}
func (s *stubSettings) EmailConfigSave(ctx context.Context, cfg *models.EmailConfig) error {
	return nil
}
func (s *stubSettings) EmailConfigDelete(ctx context.Context) error { return nil }
func (s *stubSettings) MetadataGet(ctx context.Context) (*models.Metadata, error) {
	return nil, common.ErrNotFound
}
func (s *stubSettings) MetadataSave(ctx context.Context, m *models.Metadata) error { return nil }
func (s *stubSettings) MetadataUpdateField(ctx context.Context, field string, values []string) error {
	return nil
}
func (s *stubSettings) ActivationGet(ctx context.Context) (*models.ActivationRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.activation == nil {
		return nil, common.ErrNotFound
	}
	return s.activation, nil
}
func (s *stubSettings) ActivationSave(ctx context.Context, rec *models.ActivationRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = rec
	s.activation = rec
	return nil
}
func (s *stubSettings) AppSettingsGet(ctx context.Context) (*models.AppSettings, error) {
	return nil, common.ErrNotFound
}
func (s *stubSettings) AppSettingsSave(ctx context.Context, st *models.AppSettings) error {
	return nil
}

func newServiceWithMachine(t *testing.T, repo *stubSettings, uuid string) *Service {
	t.Helper()
	orig := machineUUID
	machineUUID = func() (string, error) { return uuid, nil }
	t.Cleanup(func() { machineUUID = orig })

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(repo, logger, testSecret)
}

func TestStatus_NoRecord_Unactivated(t *testing.T) {
	svc := newServiceWithMachine(t, &stubSettings{}, "machine-a")
	assert.Equal(t, StateUnactivated, svc.Status(context.Background()))
}

func TestStatus_StorageError_FailsClosed(t *testing.T) {
	svc := newServiceWithMachine(t, &stubSettings{getErr: errors.New("backend unreachable")}, "machine-a")
	assert.Equal(t, StateUnactivated, svc.Status(context.Background()))
}

func TestActivate_ThenSilentReverify(t *testing.T) {
	repo := &stubSettings{}
	svc := newServiceWithMachine(t, repo, "machine-a")

	key := GenerateKey("holder@example.com", "9999900000", HardwareID(), testSecret)
	ok, err := svc.Activate(context.Background(), "Holder", "holder@example.com", "9999900000", key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateActivated, svc.State())

	require.NotNil(t, repo.saved)
	assert.Equal(t, HardwareID(), repo.saved.HardwareID)

	// a fresh service on the same machine re-verifies without a new key
	again := newServiceWithMachine(t, repo, "machine-a")
	assert.Equal(t, StateActivated, again.Status(context.Background()))
}

func TestStatus_DifferentMachine_FailsClosed(t *testing.T) {
	repo := &stubSettings{}
	svc := newServiceWithMachine(t, repo, "machine-a")

	key := GenerateKey("holder@example.com", "9999900000", HardwareID(), testSecret)
	ok, err := svc.Activate(context.Background(), "Holder", "holder@example.com", "9999900000", key)
	require.NoError(t, err)
	require.True(t, ok)

	moved := newServiceWithMachine(t, repo, "machine-b")
	assert.Equal(t, StateUnactivated, moved.Status(context.Background()))
}

func TestActivate_InvalidKey_NoPersist(t *testing.T) {
	repo := &stubSettings{}
	svc := newServiceWithMachine(t, repo, "machine-a")

	ok, err := svc.Activate(context.Background(), "Holder", "holder@example.com", "9999900000", "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, repo.saved)
	assert.Equal(t, StateUnactivated, svc.State())
}

func TestActivate_SaveFailure_ReturnsError(t *testing.T) {
	repo := &stubSettings{saveErr: errors.New("backend unreachable")}
	svc := newServiceWithMachine(t, repo, "machine-a")

	key := GenerateKey("holder@example.com", "9999900000", HardwareID(), testSecret)
	ok, err := svc.Activate(context.Background(), "Holder", "holder@example.com", "9999900000", key)
	require.Error(t, err)
	assert.False(t, ok)
}
