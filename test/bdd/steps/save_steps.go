package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/test/helpers"
)

// Given steps

func (ec *economyContext) aLegacySave(doc *godog.DocString) error {
	now := ec.clock.Now()
	return helpers.SharedTestDB.Create(&persistence.SaveGameModel{
		Slot:      saveSlot,
		Version:   1,
		Encoding:  "json",
		Payload:   []byte(doc.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

// When steps

func (ec *economyContext) iSaveTheGame() error {
	_, ec.err = ec.send(&commands.SaveGameCommand{})
	return nil
}

func (ec *economyContext) iLoadTheGame() error {
	resp, err := ec.send(&commands.LoadGameCommand{})
	ec.err = err
	if err == nil {
		ec.lastLoad = resp.(*commands.LoadGameResponse)
	}
	return nil
}

// theGameRestarts drops the in-memory session and loads from the database
func (ec *economyContext) theGameRestarts() error {
	if err := ec.wire(); err != nil {
		return err
	}
	return ec.iLoadTheGame()
}

func (ec *economyContext) iDeleteTheSave() error {
	_, ec.err = ec.send(&commands.DeleteSaveCommand{})
	return nil
}

func (ec *economyContext) theBuildingInSlotIsCalled(slot, index int, name string) error {
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	s, ok := isl.Slot(slot)
	if !ok {
		return fmt.Errorf("island %d has no slot %d", index, slot)
	}
	b, ok := s.Building()
	if !ok {
		return fmt.Errorf("slot %d on island %d is empty", slot, index)
	}
	ec.buildings[name] = placed{id: b.ID().String(), island: index}
	return nil
}

// Then steps

func (ec *economyContext) theLoadedGameShouldBeFresh() error {
	if ec.lastLoad == nil {
		return fmt.Errorf("no game was loaded: %v", ec.err)
	}
	if !ec.lastLoad.Fresh {
		return fmt.Errorf("expected a fresh game, got a restored one at tick %d", ec.lastLoad.Snapshot.Tick)
	}
	return nil
}

func (ec *economyContext) theLoadedGameShouldBeRestored() error {
	if ec.lastLoad == nil {
		return fmt.Errorf("no game was loaded: %v", ec.err)
	}
	if ec.lastLoad.Fresh {
		return fmt.Errorf("expected a restored game, got a fresh one")
	}
	return nil
}

func (ec *economyContext) aSaveShouldExist() error {
	return ec.expectSave(true)
}

func (ec *economyContext) noSaveShouldExist() error {
	return ec.expectSave(false)
}

func (ec *economyContext) expectSave(want bool) error {
	exists, err := ec.repo.Exists(ec.ctx)
	if err != nil {
		return err
	}
	if exists != want {
		return fmt.Errorf("expected save exists=%t, got %t", want, exists)
	}
	return nil
}

func (ec *economyContext) theStoredSaveShouldBeVersion(expected int) error {
	var row persistence.SaveGameModel
	if err := helpers.SharedTestDB.Where("slot = ?", saveSlot).First(&row).Error; err != nil {
		return err
	}
	if row.Version != expected {
		return fmt.Errorf("expected stored version %d, got %d", expected, row.Version)
	}
	return nil
}

func (ec *economyContext) islandShouldHaveSlots(index, expected int) error {
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	if got := isl.MaxSlots(); got != expected {
		return fmt.Errorf("expected island %d to have %d slots, got %d", index, expected, got)
	}
	return nil
}

func (ec *economyContext) registerSaveSteps(ctx *godog.ScenarioContext) {
	// Given steps
	ctx.Step(`^a legacy save:$`, ec.aLegacySave)

	// When steps
	ctx.Step(`^I save the game$`, ec.iSaveTheGame)
	ctx.Step(`^I load the game$`, ec.iLoadTheGame)
	ctx.Step(`^the game restarts$`, ec.theGameRestarts)
	ctx.Step(`^I delete the save$`, ec.iDeleteTheSave)
	ctx.Step(`^the building in slot (\d+) of island (\d+) is called "([^"]*)"$`, ec.theBuildingInSlotIsCalled)

	// Then steps
	ctx.Step(`^the loaded game should be fresh$`, ec.theLoadedGameShouldBeFresh)
	ctx.Step(`^the loaded game should be restored$`, ec.theLoadedGameShouldBeRestored)
	ctx.Step(`^a save should exist$`, ec.aSaveShouldExist)
	ctx.Step(`^no save should exist$`, ec.noSaveShouldExist)
	ctx.Step(`^the stored save should be version (\d+)$`, ec.theStoredSaveShouldBeVersion)
	ctx.Step(`^island (\d+) should have (\d+) slots$`, ec.islandShouldHaveSlots)
}
