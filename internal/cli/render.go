package cli

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// -------------- rendering helpers --------------

// printList draws the active view inside a panel. Indexes are positions in
// the full collection so they stay valid for `done`/`rm` under any filter.
func (a *app) printList(group bool) {
	th := a.theme
	open, done := a.store.Stats()

	positions := map[string]int{}
	for i, it := range a.store.Items() {
		positions[it.ID] = i + 1
	}

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), open,
		th.Accent.Render("Total"), open+done,
	)
	if f := a.store.Filter(); f != model.FilterAll {
		header += "  " + th.Muted.Render("("+f.Label()+")")
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, th.Muted.Render(ui.ProgressBar(done, open+done, 28)))
	lines = append(lines, "")

	view := a.store.View()
	if group {
		lines = append(lines, groupLines(th, view, positions)...)
	} else {
		lines = append(lines, flatLines(th, view, positions)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Muted.Render(ui.Summary(th, open, done)))
	lines = append(lines, th.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	fmt.Fprintln(a.opt.Stdout, ui.Panel(th, lines))
}

func flatLines(th ui.Theme, items []model.Item, positions map[string]int) []string {
	if len(items) == 0 {
		return []string{th.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", positions[it.ID])
		box := th.Muted.Render(th.BoxUnchecked)
		text := ui.Truncate(ui.Sanitize(it.Text), 80)
		if it.Done {
			box = th.Success.Render(th.BoxChecked)
			text = th.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			th.Muted.Render(idx), box, text,
			th.Muted.Render(shortID(it.ID)+" "+it.CreatedAt)))
	}
	return out
}

func groupLines(th ui.Theme, items []model.Item, positions map[string]int) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(th, pend, positions)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(th, done, positions)...)
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
