package pairing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainDevice "eldercare-monitor/internal/domain/device"
	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/logger"
)

func init() {
	_ = logger.Init("development")
}

type MockPairingRepository struct {
	mock.Mock
}

func (m *MockPairingRepository) Create(ctx context.Context, request *domainPairing.Request) error {
	args := m.Called(ctx, request)
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPairingRepository) GetByCode(ctx context.Context, pairingCode string) (*domainPairing.Request, error) {
	args := m.Called(ctx, pairingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainPairing.Request), args.Error(1)
}

func (m *MockPairingRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*domainPairing.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainPairing.Request), args.Error(1)
}

func (m *MockPairingRepository) MarkExpired(ctx context.Context, requestID uuid.UUID) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockPairingRepository) Approve(ctx context.Context, request *domainPairing.Request, dev *domainDevice.Device, entries []*domainPairing.AssociationLogEntry) error {
	args := m.Called(ctx, request, dev, entries)
	return args.Error(0)
}

func (m *MockPairingRepository) Reject(ctx context.Context, request *domainPairing.Request, entry *domainPairing.AssociationLogEntry) error {
	args := m.Called(ctx, request, entry)
	return args.Error(0)
}

func (m *MockPairingRepository) AppendLog(ctx context.Context, entry *domainPairing.AssociationLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPairingRepository) ListLogs(ctx context.Context, requestID uuid.UUID) ([]*domainPairing.AssociationLogEntry, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainPairing.AssociationLogEntry), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyStatusChange(ctx context.Context, requestID uuid.UUID, status domainPairing.Status) error {
	args := m.Called(ctx, requestID, status)
	return args.Error(0)
}

func newTestService(repo *MockPairingRepository, notifier *MockNotifier, now time.Time) *Service {
	var n domainPairing.Notifier
	if notifier != nil {
		n = notifier
	}
	svc := NewService(repo, n, 15*time.Minute)
	svc.now = func() time.Time { return now }
	return svc
}

func pendingRequest(now time.Time) *domainPairing.Request {
	deviceType := "motion_sensor"
	return &domainPairing.Request{
		ID:              uuid.New(),
		DeviceID:        "sensor-001-abcdef",
		DeviceType:      &deviceType,
		PairingCode:     "482913",
		ElderlyPersonID: uuid.New(),
		RequestedBy:     uuid.New(),
		Status:          domainPairing.StatusPending,
		ExpiresAt:       now.Add(10 * time.Minute),
		CreatedAt:       now.Add(-5 * time.Minute),
		UpdatedAt:       now.Add(-5 * time.Minute),
	}
}

func TestCreatePairing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, now)

	var created *domainPairing.Request
	repo.On("Create", mock.Anything, mock.AnythingOfType("*pairing.Request")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domainPairing.Request)
		}).
		Return(nil)
	repo.On("AppendLog", mock.Anything, mock.AnythingOfType("*pairing.AssociationLogEntry")).Return(nil)

	requestedBy := uuid.New()
	resp, err := svc.CreatePairing(context.Background(), &CreatePairingRequest{
		DeviceID:        "sensor-001",
		ElderlyPersonID: uuid.New(),
	}, requestedBy)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), resp.PairingCode)
	assert.Equal(t, domainPairing.StatusPending, resp.PairingRequest.Status)
	assert.Equal(t, now.Add(15*time.Minute), resp.PairingRequest.ExpiresAt)

	require.NotNil(t, created)
	assert.Equal(t, requestedBy, created.RequestedBy)

	repo.AssertCalled(t, "AppendLog", mock.Anything, mock.MatchedBy(func(e *domainPairing.AssociationLogEntry) bool {
		return e.EventType == domainPairing.EventPairingStarted && e.PairingRequestID == created.ID
	}))
}

func TestCreatePairing_ValidationError(t *testing.T) {
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, time.Now())

	_, err := svc.CreatePairing(context.Background(), &CreatePairingRequest{}, uuid.New())
	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetStatus_Pending(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, now)

	request := pendingRequest(now)
	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)

	resp, err := svc.GetStatus(context.Background(), "482913")
	require.NoError(t, err)
	assert.Equal(t, domainPairing.StatusPending, resp.Status)
	repo.AssertNotCalled(t, "MarkExpired", mock.Anything, mock.Anything)
}

func TestGetStatus_LazyExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	notifier := new(MockNotifier)
	svc := newTestService(repo, notifier, now)

	request := pendingRequest(now)
	request.ExpiresAt = now.Add(-time.Minute)

	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("MarkExpired", mock.Anything, request.ID).Return(nil)
	notifier.On("NotifyStatusChange", mock.Anything, request.ID, domainPairing.StatusExpired).Return(nil)

	resp, err := svc.GetStatus(context.Background(), "482913")
	require.NoError(t, err)
	assert.Equal(t, domainPairing.StatusExpired, resp.Status)
	repo.AssertCalled(t, "MarkExpired", mock.Anything, request.ID)
	notifier.AssertExpectations(t)
}

func TestGetStatus_LazyExpiry_RacedByAnotherReader(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	notifier := new(MockNotifier)
	svc := newTestService(repo, notifier, now)

	request := pendingRequest(now)
	request.ExpiresAt = now.Add(-time.Minute)

	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("MarkExpired", mock.Anything, request.ID).Return(domainPairing.ErrNotPending)

	resp, err := svc.GetStatus(context.Background(), "482913")
	require.NoError(t, err)
	assert.Equal(t, domainPairing.StatusExpired, resp.Status)
	notifier.AssertNotCalled(t, "NotifyStatusChange", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStatus_NotFound(t *testing.T) {
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, time.Now())

	repo.On("GetByCode", mock.Anything, "000000").Return(nil, domainPairing.ErrNotFound)

	_, err := svc.GetStatus(context.Background(), "000000")
	assert.ErrorIs(t, err, domainPairing.ErrNotFound)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestVerify_Approve_WithDeviceName(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	notifier := new(MockNotifier)
	svc := newTestService(repo, notifier, now)

	request := pendingRequest(now)
	approvedBy := uuid.New()

	var boundDevice *domainDevice.Device
	var logEntries []*domainPairing.AssociationLogEntry

	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("Approve", mock.Anything, request, mock.AnythingOfType("*device.Device"), mock.Anything).
		Run(func(args mock.Arguments) {
			boundDevice = args.Get(2).(*domainDevice.Device)
			logEntries = args.Get(3).([]*domainPairing.AssociationLogEntry)
		}).
		Return(nil)
	notifier.On("NotifyStatusChange", mock.Anything, request.ID, domainPairing.StatusPaired).Return(nil)

	resp, err := svc.Verify(context.Background(), "482913", &VerifyRequest{
		Approve:    boolPtr(true),
		DeviceName: strPtr("Hallway Sensor"),
	}, approvedBy)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Rejected)
	require.NotNil(t, resp.Device)
	assert.Equal(t, "Hallway Sensor", resp.Device.DeviceName)
	assert.Equal(t, domainDevice.StatusActive, resp.Device.Status)

	require.NotNil(t, boundDevice)
	assert.Equal(t, request.DeviceID, boundDevice.DeviceID)
	assert.Equal(t, request.ElderlyPersonID, boundDevice.ElderlyPersonID)

	require.Len(t, logEntries, 2)
	assert.Equal(t, domainPairing.EventVerified, logEntries[0].EventType)
	assert.Equal(t, domainPairing.EventPaired, logEntries[1].EventType)
	assert.Equal(t, "Hallway Sensor", logEntries[0].Details["device_name"])

	assert.Equal(t, domainPairing.StatusPaired, request.Status)
	require.NotNil(t, request.PairedAt)
	assert.Equal(t, now, *request.PairedAt)
	require.NotNil(t, request.ApprovedBy)
	assert.Equal(t, approvedBy, *request.ApprovedBy)
	notifier.AssertExpectations(t)
}

func TestVerify_Approve_SynthesizedName(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, now)

	request := pendingRequest(now)

	var boundDevice *domainDevice.Device
	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("Approve", mock.Anything, request, mock.AnythingOfType("*device.Device"), mock.Anything).
		Run(func(args mock.Arguments) {
			boundDevice = args.Get(2).(*domainDevice.Device)
		}).
		Return(nil)

	_, err := svc.Verify(context.Background(), "482913", &VerifyRequest{
		Approve: boolPtr(true),
	}, uuid.New())

	require.NoError(t, err)
	require.NotNil(t, boundDevice)
	assert.Equal(t, "motion_sensor (sensor-0)", boundDevice.DeviceName)
}

func TestVerify_Reject(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	notifier := new(MockNotifier)
	svc := newTestService(repo, notifier, now)

	request := pendingRequest(now)
	approvedBy := uuid.New()

	var rejectEntry *domainPairing.AssociationLogEntry
	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("Reject", mock.Anything, request, mock.AnythingOfType("*pairing.AssociationLogEntry")).
		Run(func(args mock.Arguments) {
			rejectEntry = args.Get(2).(*domainPairing.AssociationLogEntry)
		}).
		Return(nil)
	notifier.On("NotifyStatusChange", mock.Anything, request.ID, domainPairing.StatusRejected).Return(nil)

	resp, err := svc.Verify(context.Background(), "482913", &VerifyRequest{
		Approve: boolPtr(false),
	}, approvedBy)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Rejected)
	assert.Nil(t, resp.Device)

	require.NotNil(t, rejectEntry)
	assert.Equal(t, domainPairing.EventRejected, rejectEntry.EventType)
	assert.Equal(t, domainPairing.StatusRejected, request.Status)
	assert.Nil(t, request.PairedAt)
	repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	notifier := new(MockNotifier)
	svc := newTestService(repo, notifier, now)

	request := pendingRequest(now)
	request.ExpiresAt = now.Add(-time.Second)

	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("MarkExpired", mock.Anything, request.ID).Return(nil)
	notifier.On("NotifyStatusChange", mock.Anything, request.ID, domainPairing.StatusExpired).Return(nil)

	for _, approve := range []bool{true, false} {
		request.Status = domainPairing.StatusPending
		_, err := svc.Verify(context.Background(), "482913", &VerifyRequest{
			Approve: boolPtr(approve),
		}, uuid.New())
		assert.ErrorIs(t, err, domainPairing.ErrExpired)
	}

	repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_AlreadyTerminal(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, now)

	request := pendingRequest(now)
	request.Status = domainPairing.StatusPaired

	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)

	_, err := svc.Verify(context.Background(), "482913", &VerifyRequest{Approve: boolPtr(true)}, uuid.New())
	assert.ErrorIs(t, err, domainPairing.ErrNotPending)
}

func TestVerify_ConcurrentLoser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockPairingRepository)
	svc := newTestService(repo, nil, now)

	request := pendingRequest(now)
	repo.On("GetByCode", mock.Anything, "482913").Return(request, nil)
	repo.On("Approve", mock.Anything, request, mock.Anything, mock.Anything).Return(domainPairing.ErrNotPending)

	_, err := svc.Verify(context.Background(), "482913", &VerifyRequest{Approve: boolPtr(true)}, uuid.New())
	assert.ErrorIs(t, err, domainPairing.ErrNotPending)
}

func TestMintPairingCodeRange(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := mintPairingCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
