package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/plan"
	"skilloncall/internal/disclosure/service"
	contactstore "skilloncall/internal/disclosure/store/contacts"
	eventstore "skilloncall/internal/disclosure/store/events"
	ledgerstore "skilloncall/internal/disclosure/store/ledger"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/testutil"
)

// newFlowRouter serves the handlers over the real guard and in-memory stores,
// with authentication supplied per request through testutil.WithRequester.
func newFlowRouter(t *testing.T, contacts *contactstore.InMemoryStore) chi.Router {
	t.Helper()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(ledgerstore.NewInMemory(), eventstore.NewInMemory(), plan.Default(), contacts,
		service.WithClock(func() time.Time { return now }),
		service.WithLogger(logger),
	)
	require.NoError(t, err)

	h := New(svc, logger, nil, nil)
	r := chi.NewRouter()
	r.Get("/contacts/{targetID}", h.handleView)
	r.Post("/contacts/{targetID}/reveal", h.handleDisclose)
	r.Get("/credits", h.handleCreditsSummary)
	r.Get("/credits/history", h.handleHistory)
	r.Post("/contacts/revealed", h.handleRevealedTargets)
	return r
}

func TestRevealFlow(t *testing.T) {
	contacts := contactstore.NewInMemory()
	worker := uuid.NewString()
	line2 := "Unit 4"
	contacts.Put(id.UserID(uuid.MustParse(worker)), models.ContactRecord{
		Email:        "john.doe@example.com",
		Phone:        "4165550123",
		AddressLine1: "123 Main St",
		AddressLine2: &line2,
		City:         "Toronto",
		Province:     "ON",
		PostalCode:   "M5V 2T6",
	})
	router := newFlowRouter(t, contacts)
	employer := uuid.NewString()

	testutil.Given(t, "a Basic employer who never revealed the worker", func(t *testing.T) {
		testutil.When(t, "the employer views the profile", func(t *testing.T) {
			req := testutil.WithRequester(testutil.NewRequest(t, http.MethodGet, "/contacts/"+worker), employer, "Basic")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the contact is masked and free", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				view := testutil.UnmarshalResponse[models.ContactView](t, rr)
				assert.True(t, view.Masked)
				assert.Equal(t, "joh***@e***.com", view.Contact.Email)
				assert.Equal(t, "41**123", view.Contact.Phone)
				assert.Equal(t, 50, view.CreditsRemaining)
			})
		})

		testutil.When(t, "the employer reveals the contact twice", func(t *testing.T) {
			first := testutil.DoRequest(router,
				testutil.WithRequester(testutil.NewRequest(t, http.MethodPost, "/contacts/"+worker+"/reveal"), employer, "Basic"))
			second := testutil.DoRequest(router,
				testutil.WithRequester(testutil.NewRequest(t, http.MethodPost, "/contacts/"+worker+"/reveal"), employer, "Basic"))

			testutil.Then(t, "only the first reveal costs a credit", func(t *testing.T) {
				testutil.AssertStatus(t, first, http.StatusOK)
				testutil.AssertJSONContains(t, first, "credits_remaining", float64(49))
				testutil.AssertStatus(t, second, http.StatusOK)
				payload := testutil.UnmarshalResponse[models.ContactPayload](t, second)
				assert.Equal(t, models.ReasonAlreadyRevealed, payload.Reason)
				assert.Equal(t, 49, payload.CreditsRemaining)
				assert.Equal(t, "john.doe@example.com", payload.Contact.Email)
			})

			testutil.Then(t, "the summary and history show one disclosure", func(t *testing.T) {
				summaryResp := testutil.DoRequest(router,
					testutil.WithRequester(testutil.NewRequest(t, http.MethodGet, "/credits"), employer, "Basic"))
				summary := testutil.UnmarshalResponse[models.Summary](t, summaryResp)
				assert.Equal(t, 49, summary.CreditsAvailable)
				assert.Equal(t, 1, summary.DailyUsed)
				assert.Equal(t, 9, summary.DailyRemaining)

				historyResp := testutil.DoRequest(router,
					testutil.WithRequester(testutil.NewRequest(t, http.MethodGet, "/credits/history"), employer, "Basic"))
				history := testutil.UnmarshalResponse[models.HistoryResponse](t, historyResp)
				require.Len(t, history.Events, 1)
				assert.Equal(t, worker, history.Events[0].TargetID)
			})

			testutil.Then(t, "the listing marks only that worker as revealed", func(t *testing.T) {
				other := uuid.NewString()
				req := testutil.NewJSONRequest(t, http.MethodPost, "/contacts/revealed",
					models.RevealedTargetsRequest{TargetIDs: []string{worker, other, " " + worker + " "}})
				rr := testutil.DoRequest(router, testutil.WithRequester(req, employer, "Basic"))

				testutil.AssertStatus(t, rr, http.StatusOK)
				resp := testutil.UnmarshalResponse[models.RevealedTargetsResponse](t, rr)
				assert.Equal(t, []string{worker}, resp.Revealed)
			})
		})
	})

	testutil.Given(t, "an employer who already revealed ten workers today", func(t *testing.T) {
		busy := uuid.NewString()
		reveal := func(target string) *httptest.ResponseRecorder {
			return testutil.DoRequest(router,
				testutil.WithRequester(testutil.NewRequest(t, http.MethodPost, "/contacts/"+target+"/reveal"), busy, "Basic"))
		}
		for i := 0; i < 10; i++ {
			target := uuid.NewString()
			contacts.Put(id.UserID(uuid.MustParse(target)), models.ContactRecord{Phone: "4165550100"})
			testutil.AssertStatus(t, reveal(target), http.StatusOK)
		}

		testutil.When(t, "the employer reveals an eleventh worker", func(t *testing.T) {
			rr := reveal(worker)

			testutil.Then(t, "the daily limit refuses it", func(t *testing.T) {
				testutil.AssertDenial(t, rr, http.StatusTooManyRequests, string(models.ReasonDailyLimitReached))
				testutil.AssertJSONContains(t, rr, "credits_available", float64(40))
			})
		})
	})

	testutil.Given(t, "an unknown worker", func(t *testing.T) {
		rr := testutil.DoRequest(router,
			testutil.WithRequester(testutil.NewRequest(t, http.MethodPost, "/contacts/"+uuid.NewString()+"/reveal"), employer, "Basic"))

		testutil.Then(t, "the reveal is not found", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusNotFound)
			testutil.AssertErrorCode(t, rr, "not_found")
		})
	})

	testutil.Given(t, "a request without a requester", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/credits"))

		testutil.Then(t, "the handler refuses it", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusInternalServerError)
		})
	})
}
