package disclosure

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SignIn(alias, tier string, admin bool) error
	UserID(alias string) string
	GET(path string) error
	POST(path string, body any) error
	PUT(path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers contact disclosure step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &disclosureSteps{tc: tc}

	ctx.Step(`^worker "([^"]*)" has email "([^"]*)" and phone "([^"]*)"$`, steps.workerHasContact)
	ctx.Step(`^"([^"]*)" on the "([^"]*)" plan has a daily limit of (\d+) and a monthly limit of (\d+)$`, steps.requesterHasLimits)
	ctx.Step(`^"([^"]*)" is granted (\d+) credits$`, steps.requesterIsGranted)
	ctx.Step(`^I view the contact of worker "([^"]*)"$`, steps.viewContact)
	ctx.Step(`^I check access to worker "([^"]*)"$`, steps.checkAccess)
	ctx.Step(`^I reveal the contact of worker "([^"]*)"$`, steps.revealContact)
	ctx.Step(`^I request my credits summary$`, steps.requestSummary)
	ctx.Step(`^I request my disclosure history$`, steps.requestHistory)
}

type disclosureSteps struct {
	tc TestContext
}

// adminAlias is the operator used to set up fixtures.
const adminAlias = "fixture-admin"

// asAdmin performs a fixture call as admin; the caller signs in again afterwards.
func (s *disclosureSteps) asAdmin(path string, body any) error {
	if err := s.tc.SignIn(adminAlias, "", true); err != nil {
		return err
	}
	if err := s.tc.PUT(path, body); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status >= 300 {
		return fmt.Errorf("fixture %s failed with %d: %s", path, status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *disclosureSteps) workerHasContact(ctx context.Context, worker, email, phone string) error {
	return s.asAdmin("/admin/contacts/"+s.tc.UserID(worker), map[string]any{
		"email":          email,
		"phone":          phone,
		"address_line_1": "123 King St W",
		"city":           "Toronto",
		"province":       "ON",
		"postal_code":    "M5V 3A8",
	})
}

func (s *disclosureSteps) requesterHasLimits(ctx context.Context, requester, tier string, daily, monthly int) error {
	return s.asAdmin("/admin/credits/"+s.tc.UserID(requester)+"/limits", map[string]any{
		"daily_limit":   daily,
		"monthly_limit": monthly,
		"tier":          tier,
	})
}

func (s *disclosureSteps) requesterIsGranted(ctx context.Context, requester string, amount int) error {
	if err := s.tc.SignIn(adminAlias, "", true); err != nil {
		return err
	}
	if err := s.tc.POST("/admin/credits/"+s.tc.UserID(requester)+"/grant", map[string]any{"amount": amount}); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("grant failed with %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *disclosureSteps) viewContact(ctx context.Context, worker string) error {
	return s.tc.GET("/contacts/" + s.tc.UserID(worker))
}

func (s *disclosureSteps) checkAccess(ctx context.Context, worker string) error {
	return s.tc.GET("/contacts/" + s.tc.UserID(worker) + "/access")
}

func (s *disclosureSteps) revealContact(ctx context.Context, worker string) error {
	return s.tc.POST("/contacts/"+s.tc.UserID(worker)+"/reveal", nil)
}

func (s *disclosureSteps) requestSummary(ctx context.Context) error {
	return s.tc.GET("/credits")
}

func (s *disclosureSteps) requestHistory(ctx context.Context) error {
	return s.tc.GET("/credits/history")
}
