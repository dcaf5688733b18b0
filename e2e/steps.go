package e2e

import (
	"github.com/cucumber/godog"

	"skilloncall/e2e/steps/common"
	"skilloncall/e2e/steps/disclosure"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (sign-in, status and field assertions)
	common.RegisterSteps(ctx, tc)

	// Register contact disclosure steps
	disclosure.RegisterSteps(ctx, tc)
}
