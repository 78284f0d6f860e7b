package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/requisition_portal/internal/apperrors"
	"github.com/SscSPs/requisition_portal/internal/core/domain"
	portssvc "github.com/SscSPs/requisition_portal/internal/core/ports/services"
	"github.com/SscSPs/requisition_portal/internal/core/services"
	"github.com/SscSPs/requisition_portal/internal/dto"
	"github.com/SscSPs/requisition_portal/internal/handlers"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/SscSPs/requisition_portal/internal/platform/config"
	"github.com/SscSPs/requisition_portal/internal/repositories/database/memory"
)

const testJWTSecret = "test-secret"

// --- Mock PaymentSvc ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) PayBatch(ctx context.Context, requisitionIDs []string, actor domain.Actor) (*domain.BatchPaymentSummary, error) {
	args := m.Called(ctx, requisitionIDs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchPaymentSummary), args.Error(1)
}

var _ portssvc.PaymentSvc = (*MockPaymentService)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	services    *portssvc.ServiceContainer
	mockPayment *MockPaymentService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		IsProduction:      true,
		JWTSecret:         testJWTSecret,
		ReferenceCurrency: "USD",
		SecondaryCurrency: "CDF",
	}
	store := memory.NewStore(cfg.Currencies()...)
	suite.services = services.NewServiceContainer(cfg, memory.NewRepositoryProvider(store))
	suite.mockPayment = new(MockPaymentService)
	suite.services.Payment = suite.mockPayment

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, suite.services)
}

func generateTestToken(userID string, role domain.Role) string {
	token, err := middleware.IssueToken(domain.Actor{UserID: userID, Role: role}, testJWTSecret, time.Hour, "test")
	if err != nil {
		panic(fmt.Sprintf("failed to sign test token: %v", err))
	}
	return token
}

func (suite *HandlersTestSuite) do(method, path string, role domain.Role, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+generateTestToken("user-"+string(role), role))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func createBody() map[string]any {
	return map[string]any{
		"objet":    "cartouches",
		"rubrique": "fournitures",
		"devise":   "USD",
		"items": []map[string]any{
			{"description": "toner", "quantite": "2", "prix_unitaire": "45.50", "prix_total": "1"},
		},
	}
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestAuth_MissingAndUnknownRole() {
	w := suite.do(http.MethodGet, "/api/v1/requisitions", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/requisitions", domain.Role("stagiaire"), nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestCreateThenApprove() {
	w := suite.do(http.MethodPost, "/api/v1/requisitions", domain.RoleInitiator, createBody())
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.RequisitionResponse
	suite.decode(w, &created)
	suite.Equal("91", created.Amount.String())
	suite.Equal(domain.StageInitiator, created.Stage)
	suite.Equal(domain.StatusSubmitted, created.Status)

	w = suite.do(http.MethodPut, "/api/v1/requisitions/"+created.RequisitionID+"/action", domain.RoleInitiator, map[string]any{"action": "approve"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.ActionResponse
	suite.decode(w, &res)
	suite.Equal(domain.StageAnalyst, res.StageAfter)
	suite.Equal(domain.StatusInProgress, res.StatusAfter)
	suite.NotEmpty(res.ActionID)

	w = suite.do(http.MethodGet, "/api/v1/requisitions/"+created.RequisitionID+"/actions", domain.RoleAnalyst, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var actions []dto.ActionRecordResponse
	suite.decode(w, &actions)
	suite.Len(actions, 1)
}

func (suite *HandlersTestSuite) TestSubmitAction_ErrorMapping() {
	w := suite.do(http.MethodPost, "/api/v1/requisitions", domain.RoleInitiator, createBody())
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created dto.RequisitionResponse
	suite.decode(w, &created)
	path := "/api/v1/requisitions/" + created.RequisitionID + "/action"

	w = suite.do(http.MethodPut, path, domain.RoleGM, map[string]any{"action": "approve"})
	suite.Equal(http.StatusForbidden, w.Code)
	var body dto.ErrorResponse
	suite.decode(w, &body)
	suite.Equal(apperrors.KindPermissionDenied, body.Error)

	w = suite.do(http.MethodPut, path, domain.RoleAnalyst, map[string]any{"action": "reject"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, path, domain.RoleAnalyst, map[string]any{"action": "teleport"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, path, domain.RoleAccountant, map[string]any{"action": "pay"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.decode(w, &body)
	suite.Equal(apperrors.KindInvalidTransition, body.Error)

	w = suite.do(http.MethodPut, "/api/v1/requisitions/missing/action", domain.RoleAnalyst, map[string]any{"action": "approve"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestCreate_BindingErrors() {
	body := createBody()
	body["devise"] = "usd"
	w := suite.do(http.MethodPost, "/api/v1/requisitions", domain.RoleInitiator, body)
	suite.Equal(http.StatusBadRequest, w.Code)

	body = createBody()
	body["items"] = []map[string]any{}
	w = suite.do(http.MethodPost, "/api/v1/requisitions", domain.RoleInitiator, body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestBatchPay_Shortfall() {
	ids := []string{"r1", "r2"}
	shortfall := &apperrors.ShortfallError{Shortfalls: []apperrors.Shortfall{
		{Currency: "USD", Required: "110.00", Available: "100.00", Missing: "10.00"},
	}}
	suite.mockPayment.On("PayBatch", mock.Anything, ids, mock.MatchedBy(func(a domain.Actor) bool {
		return a.Role == domain.RoleAccountant
	})).Return(nil, shortfall).Once()

	w := suite.do(http.MethodPost, "/api/v1/requisitions/batch-pay", domain.RoleAccountant, dto.BatchPayRequest{RequisitionIDs: ids})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var body dto.ErrorResponse
	suite.decode(w, &body)
	suite.Equal(apperrors.KindInsufficientFunds, body.Error)
	suite.Equal([]string{"USD: required 110.00, available 100.00, missing 10.00"}, body.Details)
	suite.mockPayment.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestBatchPay_Success() {
	ids := []string{"r1"}
	summary := &domain.BatchPaymentSummary{Count: 1, Totals: map[string]decimal.Decimal{"CDF": decimal.RequireFromString("2500")}}
	suite.mockPayment.On("PayBatch", mock.Anything, ids, mock.Anything).Return(summary, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requisitions/batch-pay", domain.RoleAccountant, dto.BatchPayRequest{RequisitionIDs: ids})

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.BatchPayResponse
	suite.decode(w, &body)
	suite.Equal("1 requisition(s) paid", body.Message)
	suite.Equal([]string{"CDF: 2500.00"}, body.Details)
}

func (suite *HandlersTestSuite) TestBatchPay_InternalErrorIsHidden() {
	suite.mockPayment.On("PayBatch", mock.Anything, []string{"r1"}, mock.Anything).Return(nil, fmt.Errorf("failed to apply batch payment: %w", assert.AnError)).Once()

	w := suite.do(http.MethodPost, "/api/v1/requisitions/batch-pay", domain.RoleAccountant, dto.BatchPayRequest{RequisitionIDs: []string{"r1"}})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), assert.AnError.Error())
}

func (suite *HandlersTestSuite) TestFunds_CreditAndList() {
	w := suite.do(http.MethodPost, "/api/v1/payments/ravitaillement", domain.RoleAccountant, map[string]any{
		"devise": "CDF", "montant": "150000", "description": "approvisionnement",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/payments/fonds", domain.RoleAnalyst, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var funds []dto.FundResponse
	suite.decode(w, &funds)
	suite.Len(funds, 2)

	w = suite.do(http.MethodGet, "/api/v1/payments/fonds/CDF/reconcile", domain.RoleAccountant, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var rec domain.Reconciliation
	suite.decode(w, &rec)
	suite.True(rec.Consistent)

	w = suite.do(http.MethodGet, "/api/v1/payments/mouvements?devise=CDF", domain.RoleAccountant, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page []dto.MovementResponse
	suite.decode(w, &page)
	suite.Len(page, 1)
	suite.Empty(w.Header().Get(dto.NextTokenHeader))

	w = suite.do(http.MethodPost, "/api/v1/payments/ravitaillement", domain.RoleAnalyst, map[string]any{"devise": "CDF", "montant": "1"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestListMovementsReturnsArrayWithCursorHeader() {
	for _, amount := range []string{"10", "20"} {
		w := suite.do(http.MethodPost, "/api/v1/payments/ravitaillement", domain.RoleAccountant, map[string]any{"devise": "USD", "montant": amount})
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w := suite.do(http.MethodGet, "/api/v1/payments/mouvements?devise=USD&limit=1", domain.RoleAccountant, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.True(strings.HasPrefix(strings.TrimSpace(w.Body.String()), "["), w.Body.String())
	var first []dto.MovementResponse
	suite.decode(w, &first)
	suite.Require().Len(first, 1)
	suite.Equal(domain.MovementIn, first[0].Type)
	next := w.Header().Get(dto.NextTokenHeader)
	suite.Require().NotEmpty(next)

	w = suite.do(http.MethodGet, "/api/v1/payments/mouvements?devise=USD&limit=1&nextToken="+url.QueryEscape(next), domain.RoleAccountant, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var second []dto.MovementResponse
	suite.decode(w, &second)
	suite.Require().Len(second, 1)
	suite.NotEqual(first[0].MovementID, second[0].MovementID)
	suite.Empty(w.Header().Get(dto.NextTokenHeader))
}

func (suite *HandlersTestSuite) TestBudgetCheck() {
	month := domain.MonthOf(time.Now().UTC())
	w := suite.do(http.MethodPut, "/api/v1/budgets/envelopes", domain.RoleAccountant, map[string]any{
		"rubrique": "fournitures", "mois": month, "total": "100", "consomme": "90",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/budgets/check", domain.RoleAnalyst, map[string]any{
		"description": "fournitures", "montant": "25", "mois": month,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res domain.BudgetCheckResult
	suite.decode(w, &res)
	suite.False(res.Allowed)
	suite.Equal(domain.BudgetReasonExceeded, res.Reason)

	w = suite.do(http.MethodPost, "/api/v1/budgets/check", domain.RoleAnalyst, map[string]any{
		"description": "fournitures", "montant": "25", "mois": "03-2025",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCompilation_UnknownBatch() {
	w := suite.do(http.MethodGet, "/api/v1/compilations/missing", domain.RoleAccountant, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/compilations", domain.RoleAccountant, map[string]any{"requisition_ids": []string{"missing"}})
	suite.Equal(http.StatusConflict, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
