package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/islandepoch/islandepoch-go/test/bdd/steps"
	"github.com/islandepoch/islandepoch-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeLedgerScenario(sc)
	steps.InitializeEconomyScenario(sc)
}

func TestMain(m *testing.M) {
	// Save scenarios share one in-memory database and truncate it between scenarios
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
