package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carehome-backend/internal/domain"
	"carehome-backend/internal/repository"
	"carehome-backend/internal/service/email"
)

const countsCacheTTL = 30 * time.Second

var (
	ErrAlertNotFound = errors.New("alert not found")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateAlertInput) (*domain.CreateAlertResult, error)
	Resolve(ctx context.Context, alertID uuid.UUID, input domain.ResolveAlertInput) error
	AutoResolveFoodFluid(ctx context.Context, residentID uuid.UUID, period domain.TimePeriod) (int64, error)
	AutoResolveNightCheck(ctx context.Context, residentID uuid.UUID, checkType string, configurationID uuid.UUID) (int64, error)
	AutoResolveMedication(ctx context.Context, residentID uuid.UUID, intakeID uuid.UUID) (int64, error)
	ListByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error)
	CountsForResident(ctx context.Context, residentID uuid.UUID) (domain.AlertCounts, error)
	CountsForResidents(ctx context.Context, residentIDs []uuid.UUID) (map[uuid.UUID]domain.AlertCounts, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Alert], error)
	ClearAllUnresolved(ctx context.Context, organizationID uuid.UUID, staffID *uuid.UUID) (int64, error)

	SetEscalationService(svc email.Service)
	SetClock(now func() time.Time)
}

type service struct {
	alertRepo    repository.AlertRepository
	residentRepo repository.ResidentRepository
	auditRepo    repository.AuditLogRepository
	redis        *redis.Client
	escalation   email.Service
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(alertRepo repository.AlertRepository, residentRepo repository.ResidentRepository, auditRepo repository.AuditLogRepository, redis *redis.Client, logger *zap.Logger) Service {
	return &service{
		alertRepo:    alertRepo,
		residentRepo: residentRepo,
		auditRepo:    auditRepo,
		redis:        redis,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *service) SetEscalationService(svc email.Service) {
	s.escalation = svc
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

// Create raises an alert unless an unresolved one already exists for the
// same (resident, type, period) slot, extended by the configuration for
// night checks. The second caller gets the existing ID and created=false;
// the partial unique index covers the window between the lookup and the
// insert.
func (s *service) Create(ctx context.Context, input domain.CreateAlertInput) (*domain.CreateAlertResult, error) {
	if !input.AlertType.Valid() {
		return nil, fmt.Errorf("%w: unknown alert type %q", ErrInvalidInput, input.AlertType)
	}
	if !input.Severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, input.Severity)
	}
	if input.TimePeriod != nil && !input.TimePeriod.Valid() {
		return nil, fmt.Errorf("%w: unknown time period %q", ErrInvalidInput, *input.TimePeriod)
	}

	// Non-period alert types ignore a supplied period.
	period := input.TimePeriod
	if !input.AlertType.PeriodScoped() {
		period = nil
	}

	// Night checks dedupe per configuration, so two overdue configurations
	// for the same resident each get their own alert.
	var configurationID *uuid.UUID
	if input.AlertType == domain.AlertNightCheck {
		configurationID = input.Metadata.ConfigurationID
	}

	existing, err := s.alertRepo.FindOpen(ctx, input.ResidentID, input.AlertType, period, configurationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for open alert: %w", err)
	}
	if existing != nil {
		return &domain.CreateAlertResult{AlertID: existing.ID, Created: false}, nil
	}

	now := s.now()
	alert := &domain.Alert{
		ID:             uuid.New(),
		ResidentID:     input.ResidentID,
		OrganizationID: input.OrganizationID,
		TeamID:         input.TeamID,
		AlertType:      input.AlertType,
		Severity:       input.Severity,
		Title:          input.Title,
		Message:        input.Message,
		TimePeriod:     period,
		Metadata:       input.Metadata,
		Timestamp:      now,
	}

	created, err := s.alertRepo.Insert(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("failed to insert alert: %w", err)
	}
	if !created {
		// Lost the race to a concurrent check; hand back the winner.
		winner, err := s.alertRepo.FindOpen(ctx, input.ResidentID, input.AlertType, period, configurationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load deduplicated alert: %w", err)
		}
		if winner == nil {
			return nil, fmt.Errorf("alert insert conflicted but no open alert found")
		}
		return &domain.CreateAlertResult{AlertID: winner.ID, Created: false}, nil
	}

	s.audit(ctx, alert.OrganizationID, nil, domain.AuditActionAlertCreated, alert.ID, alert)
	s.invalidateCounts(ctx, alert.ResidentID)
	s.escalate(ctx, alert)

	return &domain.CreateAlertResult{AlertID: alert.ID, Created: true}, nil
}

// Resolve marks an alert resolved on explicit human (or caller-supplied)
// action. Resolving an already resolved alert is a harmless overwrite.
func (s *service) Resolve(ctx context.Context, alertID uuid.UUID, input domain.ResolveAlertInput) error {
	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return fmt.Errorf("failed to load alert: %w", err)
	}
	if alert == nil {
		return ErrAlertNotFound
	}

	if err := s.alertRepo.Resolve(ctx, alertID, input, s.now()); err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}

	s.audit(ctx, alert.OrganizationID, input.ResolvedBy, domain.AuditActionAlertResolved, alertID, input)
	s.invalidateCounts(ctx, alert.ResidentID)
	return nil
}

func (s *service) AutoResolveFoodFluid(ctx context.Context, residentID uuid.UUID, period domain.TimePeriod) (int64, error) {
	match := repository.AlertMatch{
		ResidentID: residentID,
		AlertType:  domain.AlertFoodFluid,
		TimePeriod: &period,
	}
	note := fmt.Sprintf("Auto-resolved: food/fluid intake logged for %s period", period)
	return s.autoResolve(ctx, match, note)
}

func (s *service) AutoResolveNightCheck(ctx context.Context, residentID uuid.UUID, checkType string, configurationID uuid.UUID) (int64, error) {
	match := repository.AlertMatch{
		ResidentID:      residentID,
		AlertType:       domain.AlertNightCheck,
		CheckType:       &checkType,
		ConfigurationID: &configurationID,
	}
	note := fmt.Sprintf("Auto-resolved: %s check recorded", checkType)
	return s.autoResolve(ctx, match, note)
}

func (s *service) AutoResolveMedication(ctx context.Context, residentID uuid.UUID, intakeID uuid.UUID) (int64, error) {
	match := repository.AlertMatch{
		ResidentID: residentID,
		AlertType:  domain.AlertMedication,
		IntakeID:   &intakeID,
	}
	return s.autoResolve(ctx, match, "Auto-resolved: medication intake updated")
}

func (s *service) autoResolve(ctx context.Context, match repository.AlertMatch, note string) (int64, error) {
	count, err := s.alertRepo.ResolveMatching(ctx, match, note, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to auto-resolve alerts: %w", err)
	}
	if count > 0 {
		s.invalidateCounts(ctx, match.ResidentID)
		s.logger.Info("auto-resolved alerts",
			zap.String("resident_id", match.ResidentID.String()),
			zap.String("alert_type", string(match.AlertType)),
			zap.Int64("count", count))
	}
	return count, nil
}

func (s *service) ListByResident(ctx context.Context, residentID uuid.UUID) ([]domain.Alert, error) {
	alerts, err := s.alertRepo.ListUnresolvedByResident(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	SortAlerts(alerts)
	return alerts, nil
}

func (s *service) CountsForResident(ctx context.Context, residentID uuid.UUID) (domain.AlertCounts, error) {
	cacheKey := countsCacheKey(residentID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var counts domain.AlertCounts
			if json.Unmarshal([]byte(cached), &counts) == nil {
				return counts, nil
			}
		}
	}

	alerts, err := s.alertRepo.ListUnresolvedByResident(ctx, residentID)
	if err != nil {
		return domain.AlertCounts{}, fmt.Errorf("failed to count alerts: %w", err)
	}
	counts := tally(alerts)

	if s.redis != nil {
		if countsJSON, err := json.Marshal(counts); err == nil {
			_ = s.redis.Set(ctx, cacheKey, countsJSON, countsCacheTTL).Err()
		}
	}

	return counts, nil
}

// CountsForResidents answers the dashboard's batched count lookup with a
// single query, partitioning the rows per resident afterwards. Residents
// without alerts get explicit zero entries.
func (s *service) CountsForResidents(ctx context.Context, residentIDs []uuid.UUID) (map[uuid.UUID]domain.AlertCounts, error) {
	result := make(map[uuid.UUID]domain.AlertCounts, len(residentIDs))
	if len(residentIDs) == 0 {
		return result, nil
	}

	alerts, err := s.alertRepo.ListUnresolvedByResidents(ctx, residentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	requested := make(map[uuid.UUID]bool, len(residentIDs))
	for _, id := range residentIDs {
		requested[id] = true
		result[id] = domain.AlertCounts{}
	}

	for _, a := range alerts {
		if !requested[a.ResidentID] {
			continue
		}
		counts := result[a.ResidentID]
		bump(&counts, a.Severity)
		result[a.ResidentID] = counts
	}

	return result, nil
}

func (s *service) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeResolved bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Alert], error) {
	params.Validate()

	alerts, total, err := s.alertRepo.ListByOrganization(ctx, organizationID, includeResolved, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Alert]{}, fmt.Errorf("failed to list organization alerts: %w", err)
	}
	SortAlerts(alerts)

	return domain.NewPaginatedResponse(alerts, params.Page, params.PageSize, total), nil
}

// ClearAllUnresolved is the one-off administrative cleanup. Residents'
// cached counts are dropped wholesale.
func (s *service) ClearAllUnresolved(ctx context.Context, organizationID uuid.UUID, staffID *uuid.UUID) (int64, error) {
	count, err := s.alertRepo.ClearUnresolved(ctx, organizationID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear alerts: %w", err)
	}

	s.audit(ctx, organizationID, staffID, domain.AuditActionAlertsCleared, organizationID, map[string]int64{"cleared_count": count})

	if s.redis != nil {
		iter := s.redis.Scan(ctx, 0, "alerts:counts:*", 0).Iterator()
		for iter.Next(ctx) {
			_ = s.redis.Del(ctx, iter.Val()).Err()
		}
	}

	return count, nil
}

// SortAlerts orders alerts for display: severity buckets critical, warning,
// info; newest first within a bucket. An explicit comparator, so the
// tie-break stays stable if severity ranks ever change.
func SortAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
}

func tally(alerts []domain.Alert) domain.AlertCounts {
	var counts domain.AlertCounts
	for _, a := range alerts {
		bump(&counts, a.Severity)
	}
	return counts
}

func bump(counts *domain.AlertCounts, severity domain.Severity) {
	counts.Total++
	switch severity {
	case domain.SeverityCritical:
		counts.Critical++
	case domain.SeverityWarning:
		counts.Warning++
	case domain.SeverityInfo:
		counts.Info++
	}
}

func countsCacheKey(residentID uuid.UUID) string {
	return "alerts:counts:" + residentID.String()
}

func (s *service) invalidateCounts(ctx context.Context, residentID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, countsCacheKey(residentID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate counts cache", zap.Error(err))
	}
}

func (s *service) audit(ctx context.Context, organizationID uuid.UUID, staffID *uuid.UUID, action string, entityID uuid.UUID, detail interface{}) {
	if err := repository.WriteAuditLog(ctx, s.auditRepo, organizationID, staffID, action, domain.AuditEntityAlert, entityID, detail); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) escalate(ctx context.Context, alert *domain.Alert) {
	if s.escalation == nil || alert.Severity != domain.SeverityCritical {
		return
	}

	residentName := alert.ResidentID.String()
	if resident, err := s.residentRepo.GetByID(ctx, alert.ResidentID); err == nil && resident != nil {
		residentName = resident.FirstName + " " + resident.LastName
	}

	if err := s.escalation.SendCriticalAlertEmail(ctx, alert, residentName); err != nil {
		s.logger.Warn("failed to send escalation email", zap.String("alert_id", alert.ID.String()), zap.Error(err))
	}
}
