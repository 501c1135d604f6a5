package overtime

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/events"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/messaging/kafka"
	overtimeerrors "github.com/Ayabe1990/management-pro-project-sub001/internal/overtime/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateRequestRequest) (RequestResponse, error)
	GetAll(ctx context.Context, filter ListRequestsFilter) ([]RequestResponse, error)
	GetByID(ctx context.Context, id string) (RequestResponse, error)
	Approve(ctx context.Context, actorID, id string) (RequestResponse, error)
	Reject(ctx context.Context, actorID, id string) (RequestResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateRequestRequest) (RequestResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RequestResponse{}, overtimeerrors.ErrInvalidEmployeeID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return RequestResponse{}, err
	}
	if req.RequestedMinutes < 0 {
		return RequestResponse{}, overtimeerrors.ErrNegativeMinutes
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request := &Request{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		Date:             date,
		RequestedMinutes: req.RequestedMinutes,
		Reason:           req.Reason,
		Status:           StatusPending,
	}

	if err := qtx.Create(ctx, request); err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	return mapToResponse(*request), nil
}

func (s *service) GetAll(ctx context.Context, filter ListRequestsFilter) ([]RequestResponse, error) {
	queryFilter := QueryFilter{}

	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, overtimeerrors.ErrInvalidEmployeeID
		}
		queryFilter.EmployeeID = &filter.EmployeeID
	}
	if filter.Status != "" {
		status, err := ParseStatus(filter.Status)
		if err != nil {
			return nil, overtimeerrors.ErrInvalidStatusFilter
		}
		queryFilter.Status = &status
	}
	if filter.DateFrom != "" {
		from, err := parseDate(filter.DateFrom)
		if err != nil {
			return nil, err
		}
		queryFilter.DateFrom = &from
	}
	if filter.DateTo != "" {
		to, err := parseDate(filter.DateTo)
		if err != nil {
			return nil, err
		}
		queryFilter.DateTo = &to
	}

	requests, err := s.repo.FindAll(ctx, queryFilter)
	if err != nil {
		return nil, err
	}

	resp := make([]RequestResponse, len(requests))
	for i, req := range requests {
		resp[i] = mapToResponse(req)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, overtimeerrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, overtimeerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	return mapToResponse(*request), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.decide(ctx, actorID, id, StatusRejected)
}

func (s *service) decide(ctx context.Context, actorID, id string, status Status) (RequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, overtimeerrors.ErrInvalidRequestID
	}
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, overtimeerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, overtimeerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}

	if request.Status != StatusPending {
		return RequestResponse{}, overtimeerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	request.Status = status
	request.DecidedBy = &actorUUID
	request.DecidedAt = &now

	if err := qtx.Update(ctx, request); err != nil {
		return RequestResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueDecidedEvent(ctx, tx, request, actorID); err != nil {
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	return mapToResponse(*request), nil
}

func (s *service) queueDecidedEvent(ctx context.Context, tx *sql.Tx, request *Request, actorID string) error {
	payload, err := json.Marshal(events.OvertimeDecidedEvent{
		EventType:  "overtime.decided",
		RequestID:  request.ID.String(),
		EmployeeID: request.EmployeeID.String(),
		Status:     string(request.Status),
		DecidedBy:  actorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "overtime_request",
		AggregateID:   request.ID.String(),
		EventType:     "overtime.decided",
		Topic:         events.OvertimeDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return overtimeerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return overtimeerrors.ErrRequestNotFound
		}
		return err
	}
	if request.Status != StatusPending {
		return overtimeerrors.ErrAlreadyDecided
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, overtimeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(req Request) RequestResponse {
	resp := RequestResponse{
		ID:               req.ID.String(),
		EmployeeID:       req.EmployeeID.String(),
		Date:             req.Date.Format("2006-01-02"),
		RequestedMinutes: req.RequestedMinutes,
		Reason:           req.Reason,
		Status:           string(req.Status),
	}

	if req.DecidedBy != nil {
		v := req.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if req.DecidedAt != nil {
		v := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}

	return resp
}
