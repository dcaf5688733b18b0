package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/ports/mocks"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

// =============================================================================
// Storage Failure Test Suite
// =============================================================================
// Storage failures are hard to provoke with real stores, so these cases drive
// the guard through gomock doubles and assert on the compensation path.

type FailureSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	ledger    *mocks.MockCreditLedger
	events    *mocks.MockAuditLog
	catalog   *mocks.MockPlanCatalog
	contacts  *mocks.MockContactDirectory
	publisher *mocks.MockEventPublisher
	service   *Service

	now       time.Time
	requester models.Requester
	target    id.UserID
	account   *models.CreditAccount
}

func TestFailureSuite(t *testing.T) {
	suite.Run(t, new(FailureSuite))
}

func (s *FailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ledger = mocks.NewMockCreditLedger(s.ctrl)
	s.events = mocks.NewMockAuditLog(s.ctrl)
	s.catalog = mocks.NewMockPlanCatalog(s.ctrl)
	s.contacts = mocks.NewMockContactDirectory(s.ctrl)
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)

	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.requester = models.Requester{ID: id.UserID(uuid.New()), Tier: "Basic"}
	s.target = id.UserID(uuid.New())

	var err error
	s.account, err = models.NewCreditAccount(s.requester.ID, 50, 10, 100, s.now, time.Hour)
	s.Require().NoError(err)

	s.service, err = New(s.ledger, s.events, s.catalog, s.contacts,
		WithClock(func() time.Time { return s.now }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPublisher(s.publisher),
	)
	s.Require().NoError(err)
}

func (s *FailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectAllowedEvaluation sets up an evaluate pass followed by the in-transaction recheck.
func (s *FailureSuite) expectAllowedEvaluation() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(false, nil).Times(2)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(s.account, nil).Times(2)
	s.events.EXPECT().CountInWindow(gomock.Any(), s.requester.ID, gomock.Any(), gomock.Any()).Return(0, nil).Times(4)
	s.contacts.EXPECT().ContactFor(gomock.Any(), s.target).Return(&models.ContactRecord{Email: "a@b.com"}, nil)
}

func (s *FailureSuite) requireTransient(err error) {
	var de *models.DisclosureError
	s.Require().True(errors.As(err, &de))
	s.Equal(models.ReasonTransientFailure, de.Reason)
	s.True(de.IsRetryable())
}

func (s *FailureSuite) TestEvaluate_StorageFailureIsTransient() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(false, errors.New("connection reset"))

	_, err := s.service.Evaluate(context.Background(), s.requester, s.target)
	s.requireTransient(err)
}

func (s *FailureSuite) TestEvaluate_CreatesSeededAccountOnce() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(false, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(nil, sentinel.ErrNotFound)
	s.catalog.EXPECT().AllotmentForTier("Basic").Return(50)
	s.ledger.EXPECT().CreateWithDefaults(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, seed *models.CreditAccount) (*models.CreditAccount, error) {
			s.Equal(50, seed.CreditsAvailable)
			s.Equal(s.requester.ID, seed.RequesterID)
			return seed, nil
		})
	s.events.EXPECT().CountInWindow(gomock.Any(), s.requester.ID, gomock.Any(), gomock.Any()).Return(0, nil).Times(2)

	decision, err := s.service.Evaluate(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.True(decision.Allowed)
}

func (s *FailureSuite) TestDisclose_AppendFailureRefundsAndIsTransient() {
	s.expectAllowedEvaluation()
	gomock.InOrder(
		s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(true, nil),
		s.events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
		s.ledger.EXPECT().Refund(gomock.Any(), s.requester.ID, 1, s.now).Return(nil),
	)

	payload, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.Nil(payload)
	s.requireTransient(err)
}

func (s *FailureSuite) TestDisclose_AppendConflictRefundsAndReturnsRevealed() {
	s.expectAllowedEvaluation()
	gomock.InOrder(
		s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(true, nil),
		s.events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict),
		s.ledger.EXPECT().Refund(gomock.Any(), s.requester.ID, 1, s.now).Return(nil),
	)

	payload, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.Equal(models.ReasonAlreadyRevealed, payload.Reason)
	s.Equal(50, payload.CreditsRemaining)
}

func (s *FailureSuite) TestDisclose_LostDeductionRaceIsInsufficientCredits() {
	s.expectAllowedEvaluation()
	s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(false, nil)

	_, err := s.service.Disclose(context.Background(), s.requester, s.target)
	reason, ok := models.ReasonOf(err)
	s.Require().True(ok)
	s.Equal(models.ReasonInsufficientCredits, reason)
}

func (s *FailureSuite) TestDisclose_DeductFailureIsTransient() {
	s.expectAllowedEvaluation()
	s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(false, sentinel.ErrUnavailable)

	_, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.requireTransient(err)
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *FailureSuite) TestDisclose_PublishesEventInsideTransaction() {
	s.expectAllowedEvaluation()
	s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(true, nil)
	var appended *models.DisclosureEvent
	s.events.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *models.DisclosureEvent) error {
			appended = event
			return nil
		})
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *models.DisclosureEvent) error {
			s.Same(appended, event)
			return nil
		})

	payload, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.Equal(49, payload.CreditsRemaining)
	s.Equal(s.now, appended.OccurredAt)
	s.Equal(1, appended.CreditsUsed)
}

func (s *FailureSuite) TestDisclose_TransactionRunnerFailureIsTransient() {
	tx := mocks.NewMockTxRunner(s.ctrl)
	svc, err := New(s.ledger, s.events, s.catalog, s.contacts,
		WithClock(func() time.Time { return s.now }),
		WithTxRunner(tx),
	)
	s.Require().NoError(err)

	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(false, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(s.account, nil)
	s.events.EXPECT().CountInWindow(gomock.Any(), s.requester.ID, gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
	s.contacts.EXPECT().ContactFor(gomock.Any(), s.target).Return(&models.ContactRecord{}, nil)
	tx.EXPECT().RunInTx(gomock.Any(), s.requester.ID, gomock.Any()).Return(errors.New("serialization failure"))

	_, err = svc.Disclose(context.Background(), s.requester, s.target)
	s.requireTransient(err)
}

func (s *FailureSuite) TestDisclose_ContactLookupFailureIsTransient() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(false, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(s.account, nil)
	s.events.EXPECT().CountInWindow(gomock.Any(), s.requester.ID, gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
	s.contacts.EXPECT().ContactFor(gomock.Any(), s.target).Return(nil, errors.New("timeout"))

	_, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.requireTransient(err)
}

func (s *FailureSuite) TestSyncContact_StoreFailureIsTransient() {
	record := models.ContactRecord{Email: "jane@example.com"}
	s.contacts.EXPECT().Upsert(gomock.Any(), s.target, record).Return(errors.New("connection reset"))

	err := s.service.SyncContact(context.Background(), s.target, record)
	s.requireTransient(err)
}

// =============================================================================
// Already-Revealed Short Circuit
// =============================================================================

func (s *FailureSuite) TestEvaluate_RevealedPairIgnoresLedgerOutage() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(true, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(nil, errors.New("ledger unreachable"))

	decision, err := s.service.Evaluate(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.True(decision.Allowed)
	s.Equal(models.ReasonAlreadyRevealed, decision.Reason)
	s.Zero(decision.CreditsAvailable)
}

func (s *FailureSuite) TestView_RevealedPairDoesNotCreateAccount() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(true, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(nil, sentinel.ErrNotFound)
	s.ledger.EXPECT().CreateWithDefaults(gomock.Any(), gomock.Any()).Times(0)
	s.contacts.EXPECT().ContactFor(gomock.Any(), s.target).Return(&models.ContactRecord{Email: "jane@example.com"}, nil)

	view, err := s.service.View(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.False(view.Masked)
	s.Equal("jane@example.com", view.Contact.Email)
}

func (s *FailureSuite) TestDisclose_RevealedPairIgnoresLedgerOutage() {
	s.events.EXPECT().Exists(gomock.Any(), s.requester.ID, s.target).Return(true, nil)
	s.ledger.EXPECT().Load(gomock.Any(), s.requester.ID).Return(nil, errors.New("ledger unreachable"))
	s.contacts.EXPECT().ContactFor(gomock.Any(), s.target).Return(&models.ContactRecord{Phone: "4165550123"}, nil)

	payload, err := s.service.Disclose(context.Background(), s.requester, s.target)
	s.Require().NoError(err)
	s.Equal(models.ReasonAlreadyRevealed, payload.Reason)
	s.Equal("4165550123", payload.Contact.Phone)
}

// =============================================================================
// SQL Transaction Compensation
// =============================================================================

func (s *FailureSuite) TestDisclose_AppendFailureInsideSQLTransactionSkipsRefund() {
	var logs bytes.Buffer
	tx := mocks.NewMockTxRunner(s.ctrl)
	svc, err := New(s.ledger, s.events, s.catalog, s.contacts,
		WithClock(func() time.Time { return s.now }),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithTxRunner(tx),
	)
	s.Require().NoError(err)

	s.expectAllowedEvaluation()
	tx.EXPECT().RunInTx(gomock.Any(), s.requester.ID, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ id.UserID, fn func(context.Context) error) error {
			return fn(txcontext.WithTx(ctx, new(sql.Tx)))
		})
	s.ledger.EXPECT().TryDeduct(gomock.Any(), s.requester.ID, 1, s.now).Return(true, nil)
	s.events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("current transaction is aborted"))
	s.ledger.EXPECT().Refund(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err = svc.Disclose(context.Background(), s.requester, s.target)
	s.requireTransient(err)
	s.NotContains(logs.String(), "credit refund failed")
	s.Contains(logs.String(), "event=contact_disclosure_failed")
	s.Contains(logs.String(), "operation=disclose_commit")
}
