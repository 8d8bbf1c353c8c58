package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

// getCellValueFromTable gets a cell value from a table row by column name.
// The first row is the header.
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

// parseAmounts reads a | resource | quantity | table
func parseAmounts(table *godog.Table) (map[resource.Kind]int, error) {
	amounts := make(map[resource.Kind]int)
	if len(table.Rows) < 2 {
		return amounts, nil
	}
	for _, row := range table.Rows[1:] {
		kind, err := resource.ParseKind(getCellValueFromTable(table, row, "resource"))
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(getCellValueFromTable(table, row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %s: %w", kind, err)
		}
		amounts[kind] = qty
	}
	return amounts, nil
}

// compareAmounts checks that ledger holds exactly the amounts listed
func compareAmounts(ledger *resource.Ledger, expected map[resource.Kind]int) error {
	for kind, want := range expected {
		if got := ledger.Quantity(kind); got != want {
			return fmt.Errorf("expected %d %s, got %d", want, kind, got)
		}
	}
	return nil
}
