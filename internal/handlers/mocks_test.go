package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/fleetops_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/fleetops_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fleetops_finance/internal/core/ports/services"
	"github.com/SscSPs/fleetops_finance/internal/dto"
	"github.com/SscSPs/fleetops_finance/internal/handlers"
	"github.com/SscSPs/fleetops_finance/internal/platform/config"
	"github.com/SscSPs/fleetops_finance/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TripService ---
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripService) ValidateTransition(ctx context.Context, tripID string, req domain.TransitionRequest) ([]string, error) {
	args := m.Called(ctx, tripID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockTripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, actor domain.Actor) (*domain.Trip, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripService) UpdateTrip(ctx context.Context, tripID string, req dto.UpdateTripRequest, actor domain.Actor) (*domain.Trip, error) {
	args := m.Called(ctx, tripID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripService) RequestTransition(ctx context.Context, tripID string, req domain.TransitionRequest) (*domain.TransitionResult, error) {
	args := m.Called(ctx, tripID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}
func (m *MockTripService) transition(ctx context.Context, tripID string, target domain.TripStatus, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: target, Actor: actor})
}
func (m *MockTripService) Confirm(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.transition(ctx, tripID, domain.TripConfirmed, actor)
}
func (m *MockTripService) Dispatch(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.transition(ctx, tripID, domain.TripDispatched, actor)
}
func (m *MockTripService) Start(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.transition(ctx, tripID, domain.TripInProgress, actor)
}
func (m *MockTripService) Complete(ctx context.Context, tripID string, arrivalTime time.Time, distanceKm decimal.Decimal, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.RequestTransition(ctx, tripID, domain.TransitionRequest{Target: domain.TripCompleted, Actor: actor, ArrivalTime: &arrivalTime, DistanceKm: &distanceKm})
}
func (m *MockTripService) Close(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.transition(ctx, tripID, domain.TripClosed, actor)
}
func (m *MockTripService) Cancel(ctx context.Context, tripID string, actor domain.Actor) (*domain.TransitionResult, error) {
	return m.transition(ctx, tripID, domain.TripCancelled, actor)
}

// Ensure mock implements the interface
var _ portssvc.TripSvcFacade = (*MockTripService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) expenseResult(args mock.Arguments) (*domain.Expense, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, expenseID))
}
func (m *MockExpenseService) ListAllocations(ctx context.Context, expenseID string) ([]domain.ExpenseAllocation, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseAllocation), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor domain.Actor) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, req, actor))
}
func (m *MockExpenseService) ConfirmExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, expenseID, actor))
}
func (m *MockExpenseService) CancelExpense(ctx context.Context, expenseID string, actor domain.Actor) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, expenseID, actor))
}
func (m *MockExpenseService) AssignExpense(ctx context.Context, expenseID string, tripID string, actor domain.Actor) (*domain.Expense, error) {
	return m.expenseResult(m.Called(ctx, expenseID, tripID, actor))
}
func (m *MockExpenseService) CreateAllocation(ctx context.Context, expenseID string, tripID string, percentage decimal.Decimal, actor domain.Actor) (*domain.ExpenseAllocation, error) {
	args := m.Called(ctx, expenseID, tripID, percentage, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseAllocation), args.Error(1)
}
func (m *MockExpenseService) DeleteAllocation(ctx context.Context, allocationID string, actor domain.Actor) error {
	args := m.Called(ctx, allocationID, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock PeriodLockService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) IsDateLocked(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockPeriodService) LockingPeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, appender portsrepo.AuditAppender, rec portssvc.AuditRecord) (*domain.TripAuditLogEntry, error) {
	args := m.Called(ctx, appender, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripAuditLogEntry), args.Error(1)
}
func (m *MockAuditService) GetAuditTrail(ctx context.Context, tripID string, limit int, nextToken *string) (*domain.AuditPage, error) {
	args := m.Called(ctx, tripID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditPage), args.Error(1)
}
func (m *MockAuditService) History(ctx context.Context, tripID string) ([]domain.TripAuditLogEntry, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TripAuditLogEntry), args.Error(1)
}

// --- Mock FinancialService ---
type MockFinancialService struct {
	mock.Mock
}

func (m *MockFinancialService) Aggregate(ctx context.Context, tripID string) (*domain.TripFinancials, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripFinancials), args.Error(1)
}

var (
	_ portssvc.PeriodLockSvc          = (*MockPeriodService)(nil)
	_ portssvc.AuditTrailSvc          = (*MockAuditService)(nil)
	_ portssvc.FinancialAggregatorSvc = (*MockFinancialService)(nil)
)

// handlerSuite wires the real router and AuthMiddleware over mocked services.
type handlerSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	trips      *MockTripService
	expenses   *MockExpenseService
	periods    *MockPeriodService
	audit      *MockAuditService
	financials *MockFinancialService
}

func (suite *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.trips = new(MockTripService)
	suite.expenses = new(MockExpenseService)
	suite.periods = new(MockPeriodService)
	suite.audit = new(MockAuditService)
	suite.financials = new(MockFinancialService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Trip:       suite.trips,
		Expense:    suite.expenses,
		Period:     suite.periods,
		Audit:      suite.audit,
		Financials: suite.financials,
	}, nil)
}

// generateTestToken creates a signed JWT carrying the role claim.
func (suite *handlerSuite) generateTestToken(userID string, role domain.UserRole) string {
	signed, err := utils.GenerateJWT(domain.Actor{UserID: userID, Role: role}, suite.jwtSecret, time.Hour, "fleetops-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do serves one request as the given actor. A nil body sends no payload; an empty actor
// sends no Authorization header.
func (suite *handlerSuite) do(method, url string, body any, actor domain.Actor) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, url, payload)
	req.Header.Set("Content-Type", "application/json")
	if actor.UserID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actor.UserID, actor.Role))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "Failed to unmarshal response body")
}

var (
	dispatcher = domain.Actor{UserID: "dispatcher-1", Role: domain.RoleDispatcher}
	finance    = domain.Actor{UserID: "finance-1", Role: domain.RoleFinance}
	readonly   = domain.Actor{UserID: "viewer-1", Role: domain.RoleReadOnly}
)
