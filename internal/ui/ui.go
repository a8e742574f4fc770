package ui

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaanHessen/trail-tui/internal/engine"
	"github.com/DaanHessen/trail-tui/internal/store"
	"github.com/DaanHessen/trail-tui/internal/text"
	"github.com/DaanHessen/trail-tui/internal/util"
)

const (
	viewMainMenu = "main_menu"
	viewNewRun   = "new_run"
	viewDay      = "day"
	viewShop     = "shop"
	viewLedger   = "ledger"
	viewEnding   = "ending"
	viewHelp     = "help"
)

var seedEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

type model struct {
	ctx        context.Context
	db         *store.DB
	controller *engine.Controller
	game       *engine.GameState
	formatter  *text.Formatter
	renderer   *glamour.TermRenderer
	version    string

	runID     uuid.UUID
	shareCode string

	view      string
	theme     string
	styles    styles
	status    string
	dayMD     string // rendered summary of the most recent day
	timeline  string
	width     int
	height    int
	scrollOff int
	maxScroll int

	// standing travel orders applied to the next tick
	pace  engine.Pace
	diet  engine.Diet
	bribe bool

	// new-run form
	preSeedText string
	preSeed     *engine.RunSeed // set when preSeedText came from a share code
	preMode     engine.Mode
	prePolicy   engine.Policy
	editField   string // "", "seed" or "share"
	editBuf     string

	ledgerScroll int
}

func randomSeedText() string {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "fallback-seed"
	}
	return strings.ToLower(seedEncoding.EncodeToString(buf))
}

func initialModel(ctx context.Context, db *store.DB, tuning engine.Tuning, cfg util.Config, version string) (model, error) {
	controller, err := engine.NewController(tuning)
	if err != nil {
		return model{}, err
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return model{}, err
	}
	seedText := strings.TrimSpace(cfg.SeedText)
	if seedText == "" {
		seedText = randomSeedText()
	}
	mode := engine.Mode(cfg.Mode)
	if !mode.Validate() {
		mode = engine.ModeStandard
	}
	policy := engine.Policy(cfg.Policy)
	if !policy.Validate() {
		policy = engine.PolicyModerate
	}
	m := model{
		ctx:         ctx,
		db:          db,
		controller:  controller,
		formatter:   text.NewFormatter(text.ParseDensity(cfg.TextDensity)),
		renderer:    renderer,
		version:     version,
		view:        viewMainMenu,
		theme:       cfg.Theme,
		styles:      stylesFor(cfg.Theme),
		pace:        engine.PaceSteady,
		diet:        engine.DietMeager,
		preSeedText: seedText,
		preMode:     mode,
		prePolicy:   policy,
	}
	return m, nil
}

// startNewRun builds fresh state from the form fields and persists the run
// row before the first tick.
func (m *model) startNewRun() {
	seed, err := m.resolveRunSeed()
	if err != nil {
		m.status = "invalid seed text"
		return
	}
	g := engine.NewGameState(seed, m.preMode, m.prePolicy)
	code := engine.EncodeShareCode(g.Mode, g.SeedRoot)
	run, err := store.NewRunRepo(m.db).Create(m.ctx, g, code)
	if err != nil {
		m.status = "start failed: " + err.Error()
		return
	}
	m.game = g
	m.runID = run.ID
	m.shareCode = code
	m.timeline = ""
	m.dayMD = ""
	m.status = "journey begins: " + code
	m.view = viewDay
}

// resolveRunSeed turns the form's seed field into a RunSeed. Text decoded
// from a share code already carries its root and must not be hashed again;
// hand-typed text goes through the usual derivation.
func (m *model) resolveRunSeed() (engine.RunSeed, error) {
	if m.preSeed != nil && m.preSeed.Text == strings.TrimSpace(m.preSeedText) {
		return *m.preSeed, nil
	}
	return engine.NewRunSeed(strings.TrimSpace(m.preSeedText))
}

// applyShareCode replays another run's seed and mode into the form.
func (m *model) applyShareCode(token string) {
	mode, raw, err := engine.DecodeShareCode(token)
	if err != nil {
		m.status = err.Error()
		return
	}
	seed := engine.RunSeedFromRaw(raw)
	m.preSeed = &seed
	m.preSeedText = seed.Text
	m.preMode = mode
	m.status = "share code accepted"
}

// continueRun resumes the latest unfinished run from its snapshot.
func (m *model) continueRun() {
	run, err := store.NewRunRepo(m.db).Latest(m.ctx)
	if err != nil {
		m.status = "no run to continue"
		return
	}
	g, err := store.NewSnapshotRepo(m.db).Load(m.ctx, run.ID)
	if err != nil {
		m.status = "resume failed: " + err.Error()
		return
	}
	m.game = g
	m.runID = run.ID
	m.shareCode = run.ShareCode
	m.timeline = ""
	m.dayMD = ""
	m.status = fmt.Sprintf("resumed %s at day %d", run.ShareCode, g.Day)
	m.view = viewDay
}

// tickDay runs one day with the standing orders plus an optional camp action
// and persists the result.
func (m *model) tickDay(camp engine.CampAction) {
	if m.game == nil {
		return
	}
	d := engine.Decision{Pace: m.pace, Diet: m.diet, Camp: camp, BribeIntent: m.bribe}
	outcome, err := m.controller.TickDay(m.game, d)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := store.PersistDay(m.ctx, m.db, m.runID, m.game, outcome); err != nil {
		m.status = "persist failed: " + err.Error()
	} else {
		m.status = ""
	}
	summary := m.formatter.DaySummary(m.game, outcome)
	rendered, err := m.renderer.Render(summary)
	if err != nil {
		rendered = summary
	}
	m.dayMD = rendered
	if m.timeline == "" {
		m.timeline = rendered
	} else {
		m.timeline += "\n" + rendered
	}
	m.scrollOff = 0
	if outcome.Ended {
		m.view = viewEnding
	}
}

// attemptRepair resolves an active breakdown outside the day loop so the
// player sees the result before committing the next day.
func (m *model) attemptRepair(allowDebt bool) {
	if m.game == nil || m.game.Breakdown == nil {
		m.status = "nothing to repair"
		return
	}
	method, ok := engine.AutoRepair(m.game, m.controller.Tuning().Vehicle, allowDebt)
	if !ok {
		m.status = "no spare fits and the budget is empty"
		return
	}
	err := m.db.WithTx(m.ctx, func(tx *gorm.DB) error {
		return store.NewSnapshotRepo(m.db).Save(m.ctx, tx, m.runID, m.game)
	})
	if err != nil {
		m.status = "repair saved locally only: " + err.Error()
		return
	}
	switch method {
	case engine.RepairMatchingSpare:
		m.status = "swapped in the matching spare"
	case engine.RepairAnySpare:
		m.status = "cannibalized a spare to get rolling"
	default:
		m.status = "paid a roadside mechanic"
	}
}

// buyPart purchases a spare and books the day as a shop stop.
func (m *model) buyPart(part engine.Part) {
	res, err := engine.BuySpare(m.game, m.controller.Tuning().Camp, part)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("bought %s for $%.2f", res.Bought, float64(res.Spent)/100)
	m.view = viewDay
	m.tickDay(engine.CampShop)
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return nil }

func (m model) View() string {
	switch m.view {
	case viewMainMenu:
		return m.renderMainMenu()
	case viewNewRun:
		return m.renderNewRun()
	case viewDay:
		return m.renderDayLayout()
	case viewShop:
		return m.renderShop()
	case viewLedger:
		return m.renderLedger()
	case viewEnding:
		return m.renderEnding()
	case viewHelp:
		return m.renderHelp()
	default:
		return ""
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.view {
	case viewMainMenu:
		switch k {
		case "1":
			m.view = viewNewRun
			m.status = ""
		case "2":
			m.continueRun()
		case "3":
			m.view = viewHelp
		case "q":
			return m, tea.Quit
		}
		return m, nil
	case viewNewRun:
		return m.handleNewRunKey(k)
	case viewShop:
		switch k {
		case "1", "2", "3", "4":
			idx := int(k[0] - '1')
			m.buyPart(engine.AllParts[idx])
		case "esc", "q":
			m.view = viewDay
		}
		return m, nil
	case viewLedger:
		switch k {
		case "down", "j":
			m.ledgerScroll += 3
		case "up", "k":
			m.ledgerScroll -= 3
		case "home":
			m.ledgerScroll = 0
		case "esc", "q":
			m.view = viewDay
		}
		if m.ledgerScroll < 0 {
			m.ledgerScroll = 0
		}
		return m, nil
	case viewEnding:
		switch k {
		case "n":
			m.preSeedText = randomSeedText()
			m.view = viewNewRun
		case "m":
			m.view = viewMainMenu
		case "q":
			return m, tea.Quit
		}
		return m, nil
	case viewHelp:
		if k == "esc" || k == "q" || k == "?" {
			if m.game != nil && !m.game.RunOver {
				m.view = viewDay
			} else {
				m.view = viewMainMenu
			}
		}
		return m, nil
	}

	// day view
	switch k {
	case "enter", " ":
		m.tickDay("")
	case "1":
		m.tickDay(engine.CampRest)
	case "2":
		m.tickDay(engine.CampForage)
	case "3":
		m.tickDay(engine.CampWrench)
	case "4":
		m.view = viewShop
	case "p":
		m.pace = cyclePace(m.pace)
	case "d":
		m.diet = cycleDiet(m.diet)
	case "b":
		m.bribe = !m.bribe
	case "r":
		m.attemptRepair(false)
	case "R":
		m.attemptRepair(true)
	case "l":
		m.ledgerScroll = 0
		m.view = viewLedger
	case "t":
		m.theme = nextThemeName(m.theme, 1)
		m.styles = stylesFor(m.theme)
	case "?":
		m.view = viewHelp
	case "m":
		m.view = viewMainMenu
	case "pgdown", "ctrl+f":
		m.scrollOff += 8
	case "pgup", "ctrl+b":
		m.scrollOff -= 8
	case "home":
		m.scrollOff = 0
	case "end":
		m.scrollOff = m.maxScroll
	}
	if m.scrollOff < 0 {
		m.scrollOff = 0
	}
	return m, nil
}

func (m model) handleNewRunKey(k string) (tea.Model, tea.Cmd) {
	if m.editField != "" {
		switch k {
		case "enter":
			buf := strings.TrimSpace(m.editBuf)
			if m.editField == "share" && buf != "" {
				m.applyShareCode(buf)
			} else if m.editField == "seed" && buf != "" {
				m.preSeedText = buf
			}
			m.editField = ""
			m.editBuf = ""
		case "esc":
			m.editField = ""
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if isRuneInput(k) {
				m.editBuf += k
			}
		}
		return m, nil
	}
	switch k {
	case "enter":
		m.startNewRun()
	case "m":
		m.preMode = cycleMode(m.preMode)
	case "p":
		m.prePolicy = cyclePolicy(m.prePolicy)
	case "r":
		m.preSeedText = randomSeedText()
	case "s":
		m.editField = "seed"
		m.editBuf = ""
	case "c":
		m.editField = "share"
		m.editBuf = ""
	case "esc", "q":
		m.view = viewMainMenu
	}
	return m, nil
}

// Layout rendering -----------------------------------------------------------

func (m *model) renderDayLayout() string {
	w := m.width
	if w <= 0 {
		w = 100
	}
	sidebarWidth := 32
	if w < 90 {
		sidebarWidth = 26
	}
	mainWidth := w - sidebarWidth - 1

	top := m.renderTopBar()
	mainRaw := m.buildMainPane()
	lines := strings.Split(mainRaw, "\n")
	if m.scrollOff > len(lines) {
		m.scrollOff = len(lines)
	}
	viewLines := lines
	availHeight := m.height - 4
	if availHeight > 5 && len(lines) > availHeight {
		if m.scrollOff+availHeight > len(lines) {
			m.scrollOff = len(lines) - availHeight
		}
		viewLines = lines[m.scrollOff : m.scrollOff+availHeight]
		m.maxScroll = len(lines) - availHeight
	}
	main := lipgloss.NewStyle().Width(mainWidth).Render(strings.Join(viewLines, "\n"))
	side := m.styles.panel.Width(sidebarWidth).Render(m.buildSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	return lipgloss.JoinVertical(lipgloss.Left, top, body, m.renderBottomBar())
}

func (m *model) renderTopBar() string {
	g := m.game
	left := strings.Join([]string{
		"TRAIL",
		strings.ToUpper(string(g.Region)),
		string(g.Season),
		string(g.Weather.Today),
	}, " • ")
	right := fmt.Sprintf("Day %d  %.0f/%.0f mi  %s",
		g.Day, g.MilesTraveled, m.controller.Tuning().Pacing.RouteMiles, m.shareCode)
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := w - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.topBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderBottomBar() string {
	keys := "[Enter] travel  [1] rest [2] forage [3] wrench [4] shop  [P]ace [D]iet [B]ribe  [R]epair  [L]edger  [T]heme  [?] help  [M] menu"
	orders := fmt.Sprintf("orders: %s / %s", m.pace, m.diet)
	if m.bribe {
		orders += " / bribe ready"
	}
	line := orders
	if m.status != "" {
		line += "  " + m.styles.warning.Render(m.status)
	}
	return m.styles.muted.Render(keys) + "\n" + line
}

func (m *model) buildMainPane() string {
	var b strings.Builder
	if m.dayMD == "" {
		b.WriteString(m.styles.title.Render("The rig idles at the trailhead.") + "\n\n")
		b.WriteString("Press Enter to drive the first day, or camp first.\n")
	} else {
		b.WriteString(m.dayMD)
	}
	if m.game.Breakdown != nil {
		b.WriteString("\n" + m.styles.danger.Render(
			fmt.Sprintf("BREAKDOWN: %s out of commission. [R] repair with spares or cash, [shift+R] allow debt.", m.game.Breakdown.Part)))
		b.WriteString("\n")
	}
	if m.game.DetourDaysLeft > 0 {
		b.WriteString("\n" + m.styles.warning.Render(fmt.Sprintf("Detour: %d day(s) of backroads remain.", m.game.DetourDaysLeft)) + "\n")
	}
	return b.String()
}

func (m *model) buildSidebar() string {
	g := m.game
	var b strings.Builder
	b.WriteString(m.styles.title.Render("CREW") + "\n")
	b.WriteString(sb("HP", g.Stats.HP))
	b.WriteString(sb("San", g.Stats.Sanity))
	b.WriteString(sb("Sup", g.Stats.Supplies))
	b.WriteString(sb("Cred", g.Stats.Credibility))
	b.WriteString(sb("Mor", g.Stats.Morale))
	b.WriteString(sb("Pants", g.Stats.Pants))
	b.WriteString(fmt.Sprintf("Allies %d\n\n", g.Stats.Allies))

	b.WriteString(m.styles.title.Render("RIG") + "\n")
	b.WriteString(fmt.Sprintf("Wear %.0f%%\n", g.Vehicle.Wear))
	for _, p := range engine.ListParts() {
		if n := g.Inventory.Spares[p]; n > 0 {
			b.WriteString(fmt.Sprintf("%s x%d\n", p, n))
		}
	}
	b.WriteString("\n")

	b.WriteString(m.styles.title.Render("PURSE") + "\n")
	budget := fmt.Sprintf("$%.2f\n", float64(g.BudgetCents)/100)
	if g.BudgetCents < 0 {
		b.WriteString(m.styles.danger.Render(budget))
	} else {
		b.WriteString(budget)
	}
	b.WriteString(fmt.Sprintf("crossings %d\n\n", g.CrossingsCleared))

	b.WriteString(m.styles.title.Render("CAMP") + "\n")
	for _, a := range engine.AllCampActions {
		cd := g.CampCooldowns[a]
		if cd > 0 {
			b.WriteString(m.styles.muted.Render(fmt.Sprintf("%s (%dd)\n", a, cd)))
		} else {
			b.WriteString(string(a) + "\n")
		}
	}
	if len(g.Inventory.Gear) > 0 {
		b.WriteString("\n" + m.styles.title.Render("GEAR") + "\n")
		b.WriteString(strings.Join(g.Inventory.Gear, ", ") + "\n")
	}
	return b.String()
}

func sb(label string, v int) string { return fmt.Sprintf("%-5s %s %3d\n", label, bar(v), v) }

func bar(v int) string {
	width := 10
	fill := int((float64(v)/100.0)*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	return strings.Repeat("█", fill) + strings.Repeat("·", width-fill)
}

func (m *model) renderMainMenu() string {
	content := m.styles.title.Render("TRAIL — MAIN MENU") + "\n\n" +
		"[1] New Journey\n[2] Continue\n[3] About\n\nQ Quit"
	if m.status != "" {
		content += "\n\n" + m.styles.warning.Render(m.status)
	}
	if m.version != "" {
		content += "\n\n" + m.styles.muted.Render("v"+m.version)
	}
	return m.styles.box.Width(50).Render(content)
}

func (m *model) renderNewRun() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("NEW JOURNEY") + "\n\n")
	fmt.Fprintf(&b, "Seed:   %s\n", m.preSeedText)
	fmt.Fprintf(&b, "Mode:   %s (m cycle)\n", m.preMode)
	fmt.Fprintf(&b, "Policy: %s (p cycle)\n\n", m.prePolicy)
	b.WriteString("[R] random seed  [S] type seed  [C] share code\n")
	b.WriteString("[Enter] depart  [Esc] back\n")
	if m.editField != "" {
		fmt.Fprintf(&b, "\n%s> %s_\n", m.editField, m.editBuf)
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.warning.Render(m.status))
	}
	return m.styles.box.Width(60).Render(b.String())
}

func (m *model) renderShop() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("ROADSIDE PARTS STALL") + "\n\n")
	prices := m.controller.Tuning().Camp.SparePriceCents
	for i, p := range engine.AllParts {
		fmt.Fprintf(&b, "[%d] %-10s $%.2f (have %d)\n", i+1, p, float64(prices[p])/100, m.game.Inventory.Spares[p])
	}
	fmt.Fprintf(&b, "\nBudget $%.2f\n", float64(m.game.BudgetCents)/100)
	b.WriteString("\nBuying books today as a shop stop. Esc to back out.\n")
	if m.status != "" {
		b.WriteString("\n" + m.styles.warning.Render(m.status))
	}
	return m.styles.box.Width(52).Render(b.String())
}

func (m *model) renderLedger() string {
	g := m.game
	var b strings.Builder
	b.WriteString(m.styles.title.Render("LEDGER") + " (Up/Down, Esc back)\n")
	for _, rec := range g.Ledger {
		line := fmt.Sprintf("Day %-3d %-8s %6.1f mi", rec.DayIndex, rec.Kind, rec.Miles)
		if len(rec.Tags) > 0 {
			line += "  " + m.styles.muted.Render(strings.Join(rec.Tags, ","))
		}
		b.WriteString(line + "\n")
	}
	lines := strings.Split(b.String(), "\n")
	avail := m.height - 2
	if avail > 3 && len(lines) > avail {
		if m.ledgerScroll > len(lines)-avail {
			m.ledgerScroll = len(lines) - avail
		}
		lines = append(lines[:1], lines[1+m.ledgerScroll:]...)
		if len(lines) > avail {
			lines = lines[:avail]
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderEnding() string {
	g := m.game
	var b strings.Builder
	b.WriteString(m.styles.title.Render("JOURNEY OVER") + "\n\n")
	fmt.Fprintf(&b, "Ending: %s\n", g.Ending)
	fmt.Fprintf(&b, "Days on the road: %d\n", g.Day)
	fmt.Fprintf(&b, "Miles: %.0f\n", g.MilesTraveled)
	fmt.Fprintf(&b, "Score: %d\n\n", engine.FinalScore(g, g.Ending))
	b.WriteString("Share code: " + m.styles.success.Render(m.shareCode) + "\n")
	b.WriteString("\n[N] new journey  [M] menu  [Q] quit\n")
	if m.dayMD != "" {
		b.WriteString("\n" + m.dayMD)
	}
	return m.styles.box.Width(64).Render(b.String())
}

func (m *model) renderHelp() string {
	return fmt.Sprintf("ABOUT\n\nTrail v%s\n\n"+
		"Drive a battered rig across a %.0f mile route before the crew runs out of "+
		"supplies, sanity or dignity. Each day pick standing orders (pace, diet), "+
		"camp when the cooldowns allow, and keep spares for the inevitable breakdowns. "+
		"Checkpoints block the route every so often; carry a permit, offer a bribe or "+
		"take the long way around. The same seed and mode always replay the same "+
		"journey, and the share code names both.\n\n"+
		"Controls: Enter travel | 1-4 camp | P pace | D diet | B bribe | R repair | "+
		"L ledger | T theme | M menu | Ctrl+C quit.\n\nEsc returns from subviews.",
		m.version, m.controller.Tuning().Pacing.RouteMiles)
}

// Cycling helpers ------------------------------------------------------------

// cycleNext steps to the following entry in the canonical ordering,
// wrapping at the end. Unknown values snap back to the first entry.
func cycleNext[T comparable](items []T, cur T) T {
	for i, v := range items {
		if v == cur {
			return items[(i+1)%len(items)]
		}
	}
	return items[0]
}

func cyclePace(p engine.Pace) engine.Pace       { return cycleNext(engine.ListPaces(), p) }
func cycleDiet(d engine.Diet) engine.Diet       { return cycleNext(engine.ListDiets(), d) }
func cycleMode(m engine.Mode) engine.Mode       { return cycleNext(engine.ListModes(), m) }
func cyclePolicy(p engine.Policy) engine.Policy { return cycleNext(engine.ListPolicies(), p) }

func isRuneInput(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && runes[0] >= 32 && runes[0] < 127
}
