package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/mocks"
	"carehome-backend/internal/repository"
	"carehome-backend/internal/service/alert"
)

var fixedNow = time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

func newService(alertRepo *mocks.AlertRepository, auditRepo *mocks.AuditLogRepository) alert.Service {
	svc := alert.NewService(alertRepo, new(mocks.ResidentRepository), auditRepo, nil, zap.NewNop())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func TestAlertService_Create(t *testing.T) {
	ctx := context.Background()
	residentID := uuid.New()
	orgID := uuid.New()
	teamID := uuid.New()
	morning := domain.PeriodMorning

	input := domain.CreateAlertInput{
		ResidentID:     residentID,
		OrganizationID: orgID,
		TeamID:         teamID,
		AlertType:      domain.AlertFoodFluid,
		Severity:       domain.SeverityWarning,
		Title:          "Food/fluid intake not logged",
		Message:        "No food or fluid intake recorded for the morning period",
		TimePeriod:     &morning,
	}

	t.Run("creates a new alert when none is open", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newService(alertRepo, auditRepo)

		alertRepo.On("FindOpen", ctx, residentID, domain.AlertFoodFluid, &morning, (*uuid.UUID)(nil)).Return(nil, nil).Once()
		alertRepo.On("Insert", ctx, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.ResidentID == residentID && a.AlertType == domain.AlertFoodFluid &&
				a.TimePeriod != nil && *a.TimePeriod == morning && a.Timestamp.Equal(fixedNow)
		})).Return(true, nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		result, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.True(t, result.Created)
		assert.NotEqual(t, uuid.Nil, result.AlertID)
		alertRepo.AssertExpectations(t)
	})

	t.Run("returns the open alert instead of duplicating", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		existing := &domain.Alert{ID: uuid.New(), ResidentID: residentID, AlertType: domain.AlertFoodFluid, TimePeriod: &morning}
		alertRepo.On("FindOpen", ctx, residentID, domain.AlertFoodFluid, &morning, (*uuid.UUID)(nil)).Return(existing, nil).Once()

		result, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, existing.ID, result.AlertID)
		alertRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("losing an insert race hands back the winner", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		winner := &domain.Alert{ID: uuid.New()}
		alertRepo.On("FindOpen", ctx, residentID, domain.AlertFoodFluid, &morning, (*uuid.UUID)(nil)).Return(nil, nil).Once()
		alertRepo.On("Insert", ctx, mock.Anything).Return(false, nil).Once()
		alertRepo.On("FindOpen", ctx, residentID, domain.AlertFoodFluid, &morning, (*uuid.UUID)(nil)).Return(winner, nil).Once()

		result, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, winner.ID, result.AlertID)
	})

	t.Run("rejects unknown alert type", func(t *testing.T) {
		svc := newService(new(mocks.AlertRepository), new(mocks.AuditLogRepository))

		_, err := svc.Create(ctx, domain.CreateAlertInput{AlertType: "bogus", Severity: domain.SeverityInfo})

		assert.ErrorIs(t, err, alert.ErrInvalidInput)
	})

	t.Run("night checks dedupe per configuration", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newService(alertRepo, auditRepo)

		firstConfig := uuid.New()
		secondConfig := uuid.New()

		nightInput := domain.CreateAlertInput{
			ResidentID:     residentID,
			OrganizationID: orgID,
			TeamID:         teamID,
			AlertType:      domain.AlertNightCheck,
			Severity:       domain.SeverityWarning,
			Title:          "Night check missed",
			Message:        "No positional check recorded",
			Metadata:       domain.AlertMetadata{CheckType: "positional", ConfigurationID: &firstConfig},
		}

		// First configuration already has an open alert; the second must
		// still get its own.
		open := &domain.Alert{ID: uuid.New(), ResidentID: residentID, AlertType: domain.AlertNightCheck}
		alertRepo.On("FindOpen", ctx, residentID, domain.AlertNightCheck, (*domain.TimePeriod)(nil), &firstConfig).Return(open, nil).Once()
		alertRepo.On("FindOpen", ctx, residentID, domain.AlertNightCheck, (*domain.TimePeriod)(nil), &secondConfig).Return(nil, nil).Once()
		alertRepo.On("Insert", ctx, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Metadata.ConfigurationID != nil && *a.Metadata.ConfigurationID == secondConfig
		})).Return(true, nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		first, err := svc.Create(ctx, nightInput)
		assert.NoError(t, err)
		assert.False(t, first.Created)
		assert.Equal(t, open.ID, first.AlertID)

		nightInput.Metadata.ConfigurationID = &secondConfig
		second, err := svc.Create(ctx, nightInput)
		assert.NoError(t, err)
		assert.True(t, second.Created)
		alertRepo.AssertExpectations(t)
	})

	t.Run("drops the period for non-period alert types", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newService(alertRepo, auditRepo)

		medInput := input
		medInput.AlertType = domain.AlertMedication

		alertRepo.On("FindOpen", ctx, residentID, domain.AlertMedication, (*domain.TimePeriod)(nil), (*uuid.UUID)(nil)).Return(nil, nil).Once()
		alertRepo.On("Insert", ctx, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.TimePeriod == nil
		})).Return(true, nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		result, err := svc.Create(ctx, medInput)

		assert.NoError(t, err)
		assert.True(t, result.Created)
		alertRepo.AssertExpectations(t)
	})
}

func TestAlertService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves an open alert", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newService(alertRepo, auditRepo)

		existing := &domain.Alert{ID: uuid.New(), ResidentID: uuid.New(), OrganizationID: uuid.New()}
		input := domain.ResolveAlertInput{}

		alertRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		alertRepo.On("Resolve", ctx, existing.ID, input, fixedNow).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		assert.NoError(t, svc.Resolve(ctx, existing.ID, input))
		alertRepo.AssertExpectations(t)
	})

	t.Run("resolving an already resolved alert is a no-op overwrite", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newService(alertRepo, auditRepo)

		resolvedAt := fixedNow.Add(-time.Hour)
		existing := &domain.Alert{ID: uuid.New(), ResidentID: uuid.New(), IsResolved: true, ResolvedAt: &resolvedAt}
		input := domain.ResolveAlertInput{}

		alertRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		alertRepo.On("Resolve", ctx, existing.ID, input, fixedNow).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.Anything).Return(nil).Maybe()

		assert.NoError(t, svc.Resolve(ctx, existing.ID, input))
	})

	t.Run("unknown alert", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		id := uuid.New()
		alertRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.Resolve(ctx, id, domain.ResolveAlertInput{})

		assert.ErrorIs(t, err, alert.ErrAlertNotFound)
	})
}

func TestAlertService_AutoResolve(t *testing.T) {
	ctx := context.Background()
	residentID := uuid.New()

	t.Run("food fluid matches type and period exactly", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		alertRepo.On("ResolveMatching", ctx, mock.MatchedBy(func(m repository.AlertMatch) bool {
			return m.ResidentID == residentID && m.AlertType == domain.AlertFoodFluid &&
				m.TimePeriod != nil && *m.TimePeriod == domain.PeriodMorning &&
				m.CheckType == nil && m.IntakeID == nil
		}), mock.AnythingOfType("string"), fixedNow).Return(int64(1), nil).Once()

		count, err := svc.AutoResolveFoodFluid(ctx, residentID, domain.PeriodMorning)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		alertRepo.AssertExpectations(t)
	})

	t.Run("night check matches check type and configuration", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		configID := uuid.New()
		alertRepo.On("ResolveMatching", ctx, mock.MatchedBy(func(m repository.AlertMatch) bool {
			return m.AlertType == domain.AlertNightCheck &&
				m.CheckType != nil && *m.CheckType == "positional" &&
				m.ConfigurationID != nil && *m.ConfigurationID == configID
		}), mock.AnythingOfType("string"), fixedNow).Return(int64(2), nil).Once()

		count, err := svc.AutoResolveNightCheck(ctx, residentID, "positional", configID)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("zero matches is not an error", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		intakeID := uuid.New()
		alertRepo.On("ResolveMatching", ctx, mock.Anything, mock.AnythingOfType("string"), fixedNow).Return(int64(0), nil).Once()

		count, err := svc.AutoResolveMedication(ctx, residentID, intakeID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestSortAlerts(t *testing.T) {
	base := fixedNow
	alerts := []domain.Alert{
		{Severity: domain.SeverityInfo, Timestamp: base.Add(3 * time.Minute)},
		{Severity: domain.SeverityCritical, Timestamp: base.Add(1 * time.Minute)},
		{Severity: domain.SeverityWarning, Timestamp: base.Add(4 * time.Minute)},
		{Severity: domain.SeverityCritical, Timestamp: base.Add(2 * time.Minute)},
	}

	alert.SortAlerts(alerts)

	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, base.Add(2*time.Minute), alerts[0].Timestamp)
	assert.Equal(t, domain.SeverityCritical, alerts[1].Severity)
	assert.Equal(t, base.Add(1*time.Minute), alerts[1].Timestamp)
	assert.Equal(t, domain.SeverityWarning, alerts[2].Severity)
	assert.Equal(t, domain.SeverityInfo, alerts[3].Severity)
}

func TestAlertService_Counts(t *testing.T) {
	ctx := context.Background()

	t.Run("single resident tally", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		residentID := uuid.New()
		alertRepo.On("ListUnresolvedByResident", ctx, residentID).Return([]domain.Alert{
			{Severity: domain.SeverityCritical},
			{Severity: domain.SeverityCritical},
			{Severity: domain.SeverityInfo},
		}, nil).Once()

		counts, err := svc.CountsForResident(ctx, residentID)

		assert.NoError(t, err)
		assert.Equal(t, domain.AlertCounts{Total: 3, Critical: 2, Info: 1}, counts)
	})

	t.Run("batch counts zero-fill residents without alerts", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		withAlerts := uuid.New()
		without := uuid.New()
		withInfo := uuid.New()
		ids := []uuid.UUID{withAlerts, without, withInfo}

		alertRepo.On("ListUnresolvedByResidents", ctx, ids).Return([]domain.Alert{
			{ResidentID: withAlerts, Severity: domain.SeverityCritical},
			{ResidentID: withAlerts, Severity: domain.SeverityCritical},
			{ResidentID: withAlerts, Severity: domain.SeverityWarning},
			{ResidentID: withInfo, Severity: domain.SeverityInfo},
			{ResidentID: uuid.New(), Severity: domain.SeverityCritical}, // not requested
		}, nil).Once()

		counts, err := svc.CountsForResidents(ctx, ids)

		assert.NoError(t, err)
		assert.Len(t, counts, 3)
		assert.Equal(t, domain.AlertCounts{Total: 3, Critical: 2, Warning: 1}, counts[withAlerts])
		assert.Equal(t, domain.AlertCounts{}, counts[without])
		assert.Equal(t, domain.AlertCounts{Total: 1, Info: 1}, counts[withInfo])
	})

	t.Run("empty request returns empty map without querying", func(t *testing.T) {
		alertRepo := new(mocks.AlertRepository)
		svc := newService(alertRepo, new(mocks.AuditLogRepository))

		counts, err := svc.CountsForResidents(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, counts)
		alertRepo.AssertNotCalled(t, "ListUnresolvedByResidents", mock.Anything, mock.Anything)
	})
}
