package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

func printGame(w io.Writer, view queries.GameView) {
	titleColor.Fprintf(w, "Epoch %d: %s\n", view.Epoch, view.EpochName)
	fmt.Fprintf(w, "Tick %d  Playtime %s  Gold %d\n", view.Tick, view.Playtime.Round(1e9), view.Gold)
	fmt.Fprintf(w, "Research: %s\n\n", joinOrDash(view.CompletedResearch))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Island", "Status", "Slots", "Workers", "Idle", "Inventory"}),
	)
	for _, isl := range view.Islands {
		status := "open"
		if !isl.Unlocked {
			status = "locked"
		}
		_ = table.Append([]string{
			strconv.Itoa(isl.Index),
			isl.Name,
			status,
			fmt.Sprintf("%d/%d", isl.UsedSlots, isl.MaxSlots),
			fmt.Sprintf("%d/%d", isl.WorkersAssigned, isl.WorkersAvailable),
			strconv.Itoa(isl.UnassignedWorkers),
			formatEntries(isl.Inventory),
		})
	}
	_ = table.Render()
}

func printIsland(w io.Writer, view queries.IslandView) {
	titleColor.Fprintf(w, "%s (island %d)\n", view.Name, view.Index)
	fmt.Fprintf(w, "Terrain: %s\n", joinOrDash(view.Fertilities))
	if len(view.UnlockRequirements) > 0 {
		fmt.Fprintf(w, "Unlocked by: %s\n", strings.Join(view.UnlockRequirements, ", "))
	}
	fmt.Fprintf(w, "Workers: %d assigned of %d, %d idle\n\n", view.WorkersAssigned, view.WorkersAvailable, view.UnassignedWorkers)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Slot", "Building", "ID", "Workers", "Productivity"}),
	)
	for _, slot := range view.Slots {
		if slot.Empty() {
			_ = table.Append([]string{strconv.Itoa(slot.Index), "(empty)", "", "", ""})
			continue
		}
		workers := fmt.Sprintf("%d/%d", slot.AssignedWorkers, slot.Capacity)
		if slot.ProvidesWorkers > 0 {
			workers = fmt.Sprintf("+%d", slot.ProvidesWorkers)
		}
		name := slot.BlueprintName
		if name == "" {
			name = slot.BlueprintID
		}
		_ = table.Append([]string{strconv.Itoa(slot.Index), name, slot.BuildingID, workers, slot.Percent})
	}
	_ = table.Render()

	fmt.Fprintln(w)
	printInventory(w, view.Inventory, view.Rates)
}

func printInventory(w io.Writer, entries []resource.Entry, rates production.Rates) {
	quantities := make(map[resource.Kind]int)
	for _, e := range entries {
		quantities[e.Kind] = e.Quantity
	}
	for k := range rates.Production {
		quantities[k] += 0
	}
	for k := range rates.Consumption {
		quantities[k] += 0
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Category", "Stock", "Produced/tick", "Consumed/tick", "Net"}),
	)
	for _, k := range resource.SortedKinds(quantities) {
		_ = table.Append([]string{
			k.DisplayName(),
			k.Category().String(),
			strconv.Itoa(quantities[k]),
			strconv.Itoa(rates.Production[k]),
			strconv.Itoa(rates.Consumption[k]),
			signed(rates.Net(k)),
		})
	}
	_ = table.Render()
}

func printRates(w io.Writer, rates production.Rates) {
	kinds := make(map[resource.Kind]int)
	for _, m := range []map[resource.Kind]int{rates.NominalProduction, rates.NominalConsumption, rates.Production, rates.Consumption} {
		for k := range m {
			kinds[k] = 0
		}
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Nominal +", "Nominal -", "Actual +", "Actual -", "Net"}),
	)
	for _, k := range resource.SortedKinds(kinds) {
		_ = table.Append([]string{
			k.DisplayName(),
			strconv.Itoa(rates.NominalProduction[k]),
			strconv.Itoa(rates.NominalConsumption[k]),
			strconv.Itoa(rates.Production[k]),
			strconv.Itoa(rates.Consumption[k]),
			signed(rates.Net(k)),
		})
	}
	_ = table.Render()

	fmt.Fprintln(w)
	for _, c := range resource.AllCategories() {
		fmt.Fprintf(w, "%-10s %s/tick\n", c.String(), signed(rates.NetByCategory(c)))
	}
	if rates.GoldIncome > 0 {
		fmt.Fprintf(w, "%-10s %s/tick\n", "gold", signed(rates.GoldIncome))
	}
}

func printBuildOptions(w io.Writer, options []construction.BuildOption) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Blueprint", "Name", "Cost", "Workers", "Inputs", "Outputs", "Epoch", "Available"}),
	)
	for _, o := range options {
		bp := o.Blueprint
		workers := strconv.Itoa(bp.Workers())
		if bp.IsHousing() {
			workers = fmt.Sprintf("+%d", bp.ProvidesWorkers())
		}
		_ = table.Append([]string{
			bp.ID().String(),
			bp.Name(),
			strconv.Itoa(bp.GoldCost()),
			workers,
			formatAmounts(bp.Inputs()),
			formatAmounts(bp.Outputs()),
			strconv.Itoa(bp.Epoch()),
			availability(o),
		})
	}
	_ = table.Render()
}

func availability(o construction.BuildOption) string {
	var missing []string
	if !o.IslandUnlocked {
		missing = append(missing, "island locked")
	}
	if !o.EpochUnlocked {
		missing = append(missing, "later epoch")
	}
	if !o.TerrainMatches {
		missing = append(missing, "terrain")
	}
	if !o.Affordable {
		missing = append(missing, "gold")
	}
	if !o.HasFreeSlot {
		missing = append(missing, "no slot")
	}
	if len(missing) == 0 {
		return successColor.Sprint("yes")
	}
	return strings.Join(missing, ", ")
}

func printResearch(w io.Writer, statuses []research.Status) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Research", "Name", "Cost", "Done"}),
	)
	for _, s := range statuses {
		done := ""
		if s.Completed {
			done = successColor.Sprint("yes")
		}
		_ = table.Append([]string{s.Definition.ID().String(), s.Definition.Name(), formatAmounts(s.Definition.Cost()), done})
	}
	_ = table.Render()
}

func formatEntries(entries []resource.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s %d", e.Kind, e.Quantity))
	}
	return joinOrDash(parts)
}

func formatAmounts(amounts map[resource.Kind]int) string {
	parts := make([]string, 0, len(amounts))
	for _, k := range resource.SortedKinds(amounts) {
		parts = append(parts, fmt.Sprintf("%s %d", k, amounts[k]))
	}
	return joinOrDash(parts)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
