package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/JPM1118/pawshower/internal/gallery"
	"github.com/JPM1118/pawshower/internal/source"
	"github.com/charmbracelet/lipgloss"
)

const cardWidth = 26 // including border and padding

// animal holds the display text for one source.
type animal struct {
	noun    string
	emoji   string
	title   string
	tagline string
}

var animals = map[string]animal{
	source.NameDog: {
		noun:    "dog",
		emoji:   "🐕",
		title:   "🐕 Random Dog Shower",
		tagline: "Enjoy endless cute dogs on demand!",
	},
	source.NameCat: {
		noun:    "cat",
		emoji:   "😺",
		title:   "😺 Random Cat Shower",
		tagline: "See adorable cats appear instantly!",
	},
}

func animalFor(kind string) animal {
	if a, ok := animals[kind]; ok {
		return a
	}
	return animal{noun: "image", emoji: "🖼", title: "Random " + kind + " Shower"}
}

// View renders the current screen.
func (a App) View() string {
	if a.width < minWidth || a.height < minHeight {
		return fmt.Sprintf("\n  Terminal too small (need %dx%d, got %dx%d)\n", minWidth, minHeight, a.width, a.height)
	}

	var b strings.Builder
	if p := a.current(); p != nil {
		b.WriteString(a.renderGallery(p))
	} else {
		b.WriteString(a.renderHome())
	}

	b.WriteString("\n")
	b.WriteString(a.renderNotificationBar())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderHome() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorDog).Render("🐾 Welcome to the Animal Shower 🐾"))
	b.WriteString("\n\n")

	counts := a.Counts()
	for i, p := range a.panels {
		an := animalFor(p.kind())
		prefix := "  "
		if i == a.home {
			prefix = cursorStyle.Render("▸ ")
		}
		b.WriteString(prefix)
		b.WriteString(titleStyle(p.kind()).Render(an.title))
		b.WriteString("  ")
		b.WriteString(subheaderStyle.Render(fmt.Sprintf("%s · %s", an.tagline, plural(counts[i], an.noun))))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderGallery(p *Panel) string {
	kind := p.kind()
	an := animalFor(kind)
	st := p.Store.State()

	var b strings.Builder
	b.WriteString(titleStyle(kind).Render(an.title))
	b.WriteString("\n")
	b.WriteString(subheaderStyle.Render(fmt.Sprintf("Press f to shower yourself with adorable %ss!", an.noun)))
	b.WriteString("\n\n")

	b.WriteString(a.renderControls(p, an, st))
	b.WriteString("\n\n")

	if st.HasError() {
		b.WriteString(renderErrorBanner(an, st.Err, a.width))
		b.WriteString("\n\n")
	}

	switch {
	case st.Empty() && !st.HasError():
		b.WriteString(renderPlaceholder(an, source.EndpointOf(p.Store.Source())))
	case !st.Empty():
		b.WriteString(a.renderGrid(p, st.Items))
		b.WriteString("\n")
		sel := p.cursor
		if sel >= len(st.Items) {
			sel = len(st.Items) - 1
		}
		b.WriteString(subheaderStyle.Render("  " + truncate(st.Items[sel].URL, a.width-4)))
		b.WriteString("\n")
		b.WriteString(subheaderStyle.Render(fmt.Sprintf("  %s Showing %s", an.emoji, plural(len(st.Items), an.noun))))
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) renderControls(p *Panel, an animal, st gallery.State) string {
	canFetch := p.Store.CanFetchManually() && !p.priming
	fetchLabel := fmt.Sprintf("[f] 🎲 Get Random %s", capitalize(an.noun))
	if st.Loading || p.priming {
		fetchLabel = "[f] ⏳ Loading..."
	}

	canToggle := p.Store.CanStartAutoPlay() && !p.priming
	toggleLabel, toggleColor := "[a] ▶️ Start Shower", colorStart
	if st.AutoPlay {
		toggleLabel, toggleColor = "[a] ⏸️ Stop Shower", colorStop
	}

	parts := []string{
		controlStyle(canFetch, titleColor(p.kind())).Render(fetchLabel),
		controlStyle(canToggle, toggleColor).Render(toggleLabel),
	}
	if !st.Empty() {
		parts = append(parts, controlStyle(true, colorMuted).Render("[x] 🗑️ Clear All"))
	}
	return "  " + strings.Join(parts, "   ")
}

func titleColor(kind string) lipgloss.Color {
	if kind == source.NameCat {
		return colorCat
	}
	return colorDog
}

func renderErrorBanner(an animal, msg string, width int) string {
	title := errorTitleStyle.Render(fmt.Sprintf("⚠️ Unable to Fetch %ss", capitalize(an.noun)))
	body := truncate(msg, width-6)
	return errorBannerStyle.Render(title + "\n" + body)
}

func renderPlaceholder(an animal, endpoint string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  No %ss yet! Press f to start the shower 🚿\n", an.noun))
	if endpoint != "" {
		b.WriteString(subheaderStyle.Render("  API: " + endpoint))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderGrid(p *Panel, items []gallery.Item) string {
	cols := (a.width - 2) / cardWidth
	if cols < 1 {
		cols = 1
	}

	inner := cardWidth - 4
	var rows []string
	for start := 0; start < len(items); start += cols {
		end := start + cols
		if end > len(items) {
			end = len(items)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := cardStyle
			if i == p.cursor {
				style = selectedCardStyle
			}
			label := fmt.Sprintf("#%d", i+1)
			name := truncate(path.Base(items[i].URL), inner)
			cards = append(cards, style.Width(inner+2).Render(label+"\n"+name))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderNotificationBar() string {
	if a.bar == nil {
		return notificationBarStyle.Render("")
	}
	return notificationBarStyle.Render("  " + a.bar.Render(a.width-4, a.now()))
}

func (a App) renderStatusBar() string {
	if a.screen == screenHome {
		return statusBarStyle.Render("  j/k:navigate  Enter:open  1/d:dogs  2/c:cats  q:quit")
	}
	return statusBarStyle.Render("  f:fetch  a:auto-play  x:clear  h/l:select  Tab:switch  Esc:home  q:quit")
}

// Helpers

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
