package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/otel"
	"comanda/internal/domains/servicecall/model"
	"comanda/internal/domains/servicecall/model/dto"
	"comanda/internal/domains/servicecall/repository"
	tableModel "comanda/internal/domains/table/model"
	tableRepository "comanda/internal/domains/table/repository"
	"comanda/shared"
	"comanda/shared/cache"
	"comanda/shared/constant"
	gDto "comanda/shared/dto"
	"comanda/shared/event"
	"comanda/shared/failure"
	gRepo "comanda/shared/repository"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

const (
	errCallNotFound  = "service call not found"
	errTableNotFound = "table not found"
	errNotPending    = "service call is no longer pending"

	defaultCooldown   = 3 * time.Minute
	defaultPendingTTL = 5
)

type ServiceCall interface {
	Create(ctx context.Context, tableUUID string, req dto.CreateCallRequest) (dto.CallResponse, error)
	Attend(ctx context.Context, id int64, staffID string) (dto.CallResponse, error)
	Cancel(ctx context.Context, id int64, tableUUID string) (dto.CallResponse, error)
	Get(ctx context.Context, id int64, tableUUID string) (dto.CallResponse, error)
	ListPending(ctx context.Context) (dto.GetCallsResponse, error)
	History(ctx context.Context, filter dto.HistoryFilter) (dto.GetCallsResponse, error)
}

type serviceImpl struct {
	repo       repository.ServiceCall
	tableRepo  tableRepository.Table
	transactor gRepo.Transactor
	cache      cache.RedisCache
	events     event.Publisher
	clock      timezone.Clock
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.ServiceCall,
	tableRepo tableRepository.Table,
	transactor gRepo.Transactor,
	redisCache cache.RedisCache,
	events event.Publisher,
	clock timezone.Clock,
	cfg *config.Config,
	otl otel.Otel,
) ServiceCall {
	return &serviceImpl{
		repo:       repo,
		tableRepo:  tableRepo,
		transactor: transactor,
		cache:      redisCache,
		events:     events,
		clock:      clock,
		cfg:        cfg,
		otel:       otl,
	}
}

func (s *serviceImpl) cooldown() time.Duration {
	if seconds := s.cfg.App.ServiceCall.CooldownSeconds; seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultCooldown
}

// pendingTTL is the shorter of the pending snapshot ttl and the general cache ttl.
func (s *serviceImpl) pendingTTL() int {
	ttl := s.cfg.App.ServiceCall.PendingCacheTTL
	if ttl <= 0 {
		ttl = defaultPendingTTL
	}

	if general := s.cfg.Cache.TTL; general > 0 && general < ttl {
		return general
	}

	return ttl
}

func pendingFilter(tableUUID string, reason status.CallReason) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldTableUUID, tableUUID),
		gDto.Eq(model.TableName, model.FieldReasonID, reason),
		gDto.Eq(model.TableName, model.FieldStatusID, status.CallPending),
	)
}

func scopedFilter(id int64, tableUUID string) gDto.FilterGroup {
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldID, id))
	if tableUUID != "" {
		filter.Filters = append(filter.Filters, gDto.Eq(model.TableName, model.FieldTableUUID, tableUUID))
	}

	return filter
}

func (s *serviceImpl) Create(ctx context.Context, tableUUID string, req dto.CreateCallRequest) (res dto.CallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !tableModel.ValidUUID(tableUUID) {
		return res, failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	reason, err := req.Target()
	if err != nil {
		return res, err
	}

	now := s.clock.Now()
	call := model.ServiceCall{
		TableUUID: tableUUID,
		ReasonID:  reason,
		Details:   req.NormalizedDetails(),
		StatusID:  status.CallPending,
		CreatedAt: now,
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		table, err := s.tableRepo.GetForUpdateTx(ctx, sqltx, tableRepository.ByUUID(tableUUID))
		if err != nil {
			return err
		}

		if !table.Exists() {
			return failure.NotFound(errTableNotFound) // nolint:wrapcheck
		}

		call.TableName = table.Name

		duplicate, err := s.repo.ExistTx(ctx, sqltx, pendingFilter(tableUUID, reason))
		if err != nil {
			return err
		}

		if duplicate {
			return failure.Conflict(fmt.Sprintf("a %s call is already pending for this table", reason)) // nolint:wrapcheck
		}

		if reason.Alternating() {
			if err = s.checkCooldownTx(ctx, sqltx, tableUUID, reason, now); err != nil {
				return err
			}
		}

		id, err := s.repo.InsertReturningIDTx(ctx, sqltx, call)
		if err != nil {
			return err
		}

		call.ID = id

		return nil
	})
	if err != nil {
		if gRepo.IsUniqueViolation(err, model.PendingIndex) {
			return res, failure.Conflict(fmt.Sprintf("a %s call is already pending for this table", reason)) // nolint:wrapcheck
		}

		if failure.IsDomain(err) {
			return res, err
		}

		log.Error().Err(err).Str("table_uuid", tableUUID).Msg("failed to create service call")

		return res, fmt.Errorf("failed to create service call: %w", err)
	}

	res.FromModel(call)
	s.afterChange(ctx, event.CallCreated, tableUUID, now, res)

	return res, nil
}

// checkCooldownTx rejects reason while the table's latest assistance or urgent
// call of the other reason is younger than the cooldown.
func (s *serviceImpl) checkCooldownTx(ctx context.Context, sqltx *sqlx.Tx, tableUUID string, reason status.CallReason, now time.Time) error {
	params := gDto.QueryParams{SortBy: model.ReferenceTimeExpr, SortDir: gDto.SortDirDesc, Limit: 1}
	filter := gDto.And(
		gDto.Eq(model.TableName, model.FieldTableUUID, tableUUID),
		gDto.In(model.TableName, model.FieldReasonID, []status.CallReason{status.CallAssistance, status.CallUrgent}),
	)

	latest, err := s.repo.GetAllTx(ctx, sqltx, params, filter)
	if err != nil {
		return err
	}

	if len(latest) == 0 {
		return nil
	}

	remaining := model.CooldownRemaining(latest[0], reason, now, s.cooldown())
	if remaining <= 0 {
		return nil
	}

	seconds := int(math.Ceil(remaining.Seconds()))

	return failure.TooManyRequests( // nolint:wrapcheck
		fmt.Sprintf("wait %d seconds before calling with reason %s", seconds, reason),
		remaining,
	)
}

func (s *serviceImpl) Attend(ctx context.Context, id int64, staffID string) (res dto.CallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.Attend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	call, err := s.resolve(ctx, scopedFilter(id, ""), map[string]any{
		model.FieldStatusID:   status.CallAttended,
		model.FieldAttendedAt: now,
		model.FieldAttendedBy: staffID,
	})
	if err != nil {
		return res, err
	}

	call.StatusID = status.CallAttended
	call.AttendedAt = &now
	call.AttendedBy = &staffID

	res.FromModel(call)
	s.afterChange(ctx, event.CallAttended, call.TableUUID, now, res)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64, tableUUID string) (res dto.CallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !tableModel.ValidUUID(tableUUID) {
		return res, failure.NotFound(errCallNotFound) // nolint:wrapcheck
	}

	now := s.clock.Now()

	call, err := s.resolve(ctx, scopedFilter(id, tableUUID), map[string]any{
		model.FieldStatusID:    status.CallCancelled,
		model.FieldCancelledAt: now,
	})
	if err != nil {
		return res, err
	}

	call.StatusID = status.CallCancelled
	call.CancelledAt = &now

	res.FromModel(call)
	s.afterChange(ctx, event.CallCancelled, call.TableUUID, now, res)

	return res, nil
}

// resolve moves the pending call matched by filter to a terminal state.
func (s *serviceImpl) resolve(ctx context.Context, filter gDto.FilterGroup, mod map[string]any) (call model.ServiceCall, err error) {
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, sqltx, filter)
		if err != nil {
			return err
		}

		if !locked.Exists() {
			return failure.NotFound(errCallNotFound) // nolint:wrapcheck
		}

		if locked.StatusID != status.CallPending {
			return failure.Conflict(errNotPending) // nolint:wrapcheck
		}

		call = locked

		return s.repo.UpdateTx(ctx, sqltx, mod, gDto.And(gDto.Eq(model.TableName, model.FieldID, locked.ID)))
	})
	if err != nil {
		if failure.IsDomain(err) {
			return call, err
		}

		log.Error().Err(err).Msg("failed to update service call")

		return call, fmt.Errorf("failed to update service call: %w", err)
	}

	return call, nil
}

// afterChange runs the post-commit side effects of a mutation.
func (s *serviceImpl) afterChange(ctx context.Context, name event.Name, tableUUID string, at time.Time, res dto.CallResponse) {
	shared.InvalidateCaches(ctx, s.cache, model.PendingCachePrefix)
	s.events.Publish(ctx, event.New(name, tableUUID, at, res))
}

func (s *serviceImpl) Get(ctx context.Context, id int64, tableUUID string) (res dto.CallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !tableModel.ValidUUID(tableUUID) {
		return res, failure.NotFound(errCallNotFound) // nolint:wrapcheck
	}

	call, err := s.repo.Get(ctx, scopedFilter(id, tableUUID))
	if err != nil {
		log.Error().Err(err).Int64("call_id", id).Msg("failed to get service call")

		return res, fmt.Errorf("failed to get service call: %w", err)
	}

	if !call.Exists() {
		return res, failure.NotFound(errCallNotFound) // nolint:wrapcheck
	}

	res.FromModel(call)

	return res, nil
}

func (s *serviceImpl) ListPending(ctx context.Context) (res dto.GetCallsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.ListPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.PendingCachePrefix, "all")

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for pending service calls")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCreatedAt, SortDir: gDto.SortDirAsc}
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldStatusID, status.CallPending))

	calls, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending service calls")

		return res, fmt.Errorf("failed to get pending service calls: %w", err)
	}

	res.FromModels(calls)

	if err := s.cache.Save(ctx, cacheKey, res, s.pendingTTL()); err != nil {
		log.Error().Err(err).Msg("failed to save pending service calls to cache")
	}

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, filter dto.HistoryFilter) (res dto.GetCallsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicecall.History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	limits := s.cfg.App.ServiceCall
	fallback := limits.HistoryLimit

	group := gDto.And()

	if filter.TableUUID != "" {
		if err = s.ensureTable(ctx, filter.TableUUID); err != nil {
			return res, err
		}

		fallback = limits.TableHistoryLimit
		group.Filters = append(group.Filters, gDto.Eq(model.TableName, model.FieldTableUUID, filter.TableUUID))
	}

	if filter.Status != nil {
		group.Filters = append(group.Filters, gDto.Eq(model.TableName, model.FieldStatusID, *filter.Status))
	}

	if filter.Since != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldCreatedAt,
			Value:    *filter.Since,
			Operator: gDto.FilterOperatorGreaterEq,
		})
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
		Limit:   gDto.Capped(filter.Limit, fallback, limits.MaxHistoryLimit),
	}

	calls, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service call history")

		return res, fmt.Errorf("failed to get service call history: %w", err)
	}

	res.FromModels(calls)

	return res, nil
}

func (s *serviceImpl) ensureTable(ctx context.Context, tableUUID string) error {
	if !tableModel.ValidUUID(tableUUID) {
		return failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	table, err := s.tableRepo.Get(ctx, tableRepository.ByUUID(tableUUID), tableModel.FieldID)
	if err != nil {
		log.Error().Err(err).Str("table_uuid", tableUUID).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if !table.Exists() {
		return failure.NotFound(errTableNotFound) // nolint:wrapcheck
	}

	return nil
}
