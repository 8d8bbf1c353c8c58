package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

type ledgerContext struct {
	ledger *resource.Ledger
	err    error
}

func (lc *ledgerContext) reset() {
	lc.ledger = nil
	lc.err = nil
}

// Given steps

func (lc *ledgerContext) anEmptyLedger() error {
	lc.ledger = resource.NewLedger()
	return nil
}

func (lc *ledgerContext) aLedgerHolding(table *godog.Table) error {
	amounts, err := parseAmounts(table)
	if err != nil {
		return err
	}
	lc.ledger, err = resource.ReconstructLedger(amounts)
	return err
}

// When steps

func (lc *ledgerContext) iAdd(qty int, kind string) error {
	k, err := resource.ParseKind(kind)
	if err != nil {
		return err
	}
	lc.err = lc.ledger.Add(k, qty)
	return nil
}

func (lc *ledgerContext) iRemove(table *godog.Table) error {
	amounts, err := parseAmounts(table)
	if err != nil {
		return err
	}
	lc.err = lc.ledger.RemoveAll(amounts)
	return nil
}

// Then steps

func (lc *ledgerContext) theLedgerShouldHold(table *godog.Table) error {
	expected, err := parseAmounts(table)
	if err != nil {
		return err
	}
	return compareAmounts(lc.ledger, expected)
}

func (lc *ledgerContext) theRemovalShouldFailFor(kind string) error {
	var shortage *resource.InsufficientResourceError
	if !errors.As(lc.err, &shortage) {
		return fmt.Errorf("expected an insufficient resource error, got %v", lc.err)
	}
	if string(shortage.Kind) != kind {
		return fmt.Errorf("expected shortage of %s, got %s", kind, shortage.Kind)
	}
	return nil
}

func (lc *ledgerContext) theLedgerOperationShouldSucceed() error {
	if lc.err != nil {
		return fmt.Errorf("expected success, got %v", lc.err)
	}
	return nil
}

func (lc *ledgerContext) theCategoryTotalShouldBe(category string, expected int) error {
	c, err := resource.ParseCategory(category)
	if err != nil {
		return err
	}
	if got := lc.ledger.CategoryTotal(c); got != expected {
		return fmt.Errorf("expected %s total %d, got %d", category, expected, got)
	}
	return nil
}

func (lc *ledgerContext) theLedgerShouldBeEmpty() error {
	if !lc.ledger.IsEmpty() {
		return fmt.Errorf("expected empty ledger, got %v", lc.ledger.Quantities())
	}
	return nil
}

func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	lc := &ledgerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty ledger$`, lc.anEmptyLedger)
	ctx.Step(`^a ledger holding:$`, lc.aLedgerHolding)

	// When steps
	ctx.Step(`^I add (\d+) "([^"]*)" to the ledger$`, lc.iAdd)
	ctx.Step(`^I remove from the ledger:$`, lc.iRemove)

	// Then steps
	ctx.Step(`^the ledger should hold:$`, lc.theLedgerShouldHold)
	ctx.Step(`^the ledger should be empty$`, lc.theLedgerShouldBeEmpty)
	ctx.Step(`^the removal should fail for "([^"]*)"$`, lc.theRemovalShouldFailFor)
	ctx.Step(`^the ledger operation should succeed$`, lc.theLedgerOperationShouldSucceed)
	ctx.Step(`^the "([^"]*)" category total should be (\d+)$`, lc.theCategoryTotalShouldBe)
}
