package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"Wallboard/internal/domain/models"
	"Wallboard/pkg/logger"
)

var (
	colorAccent = lipgloss.Color("39")
	colorMuted  = lipgloss.Color("244")
	colorUp     = lipgloss.Color("#4caf50")
	colorDown   = lipgloss.Color("#f44336")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	pillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238")).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// terminalState is the last value received for every display channel.
type terminalState struct {
	payloads *models.ScenePayloads
	marquee  string
	scene    models.SceneView
	status   models.StatusReadout
	clock    string
}

type refreshMsg struct{}

// TerminalDisplay draws the wallboard in a terminal with bubbletea. Display
// calls never block: they update shared state and wake the UI loop.
type TerminalDisplay struct {
	log *logger.Logger
	in  io.Reader
	out io.Writer

	mu       sync.Mutex
	state    terminalState
	dirty    chan struct{}
	onSelect func(int)
	onQuit   func()
}

// NewTerminalDisplay creates a terminal display. nil in/out mean stdin/stdout.
func NewTerminalDisplay(log *logger.Logger, in io.Reader, out io.Writer) *TerminalDisplay {
	if log == nil {
		log = logger.Nop()
	}
	return &TerminalDisplay{
		log:   log,
		in:    in,
		out:   out,
		state: terminalState{scene: models.NewSceneView(0)},
		dirty: make(chan struct{}, 1),
	}
}

// OnSelect registers the handler for the 1-5 scene keys. It receives a
// zero-based index.
func (d *TerminalDisplay) OnSelect(fn func(int)) {
	d.mu.Lock()
	d.onSelect = fn
	d.mu.Unlock()
}

// OnQuit registers the handler for q / ctrl+c.
func (d *TerminalDisplay) OnQuit(fn func()) {
	d.mu.Lock()
	d.onQuit = fn
	d.mu.Unlock()
}

func (d *TerminalDisplay) Render(p models.ScenePayloads) {
	d.update(func(s *terminalState) {
		s.payloads = &p
		if p.Marquee != "" {
			s.marquee = p.Marquee
		}
	})
}

func (d *TerminalDisplay) ShowScene(v models.SceneView) {
	d.update(func(s *terminalState) { s.scene = v })
}

func (d *TerminalDisplay) ShowStatus(st models.StatusReadout) {
	d.update(func(s *terminalState) { s.status = st })
}

func (d *TerminalDisplay) ShowClock(now string) {
	d.update(func(s *terminalState) { s.clock = now })
}

// Run drives the UI until the user quits or ctx is cancelled.
func (d *TerminalDisplay) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if d.in != nil {
		opts = append(opts, tea.WithInput(d.in))
	}
	if d.out != nil {
		opts = append(opts, tea.WithOutput(d.out))
	}

	_, err := tea.NewProgram(newTerminalModel(d), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("terminal display: %w", err)
	}
	return nil
}

func (d *TerminalDisplay) update(fn func(*terminalState)) {
	d.mu.Lock()
	fn(&d.state)
	d.mu.Unlock()

	select {
	case d.dirty <- struct{}{}:
	default:
	}
}

func (d *TerminalDisplay) snapshot() terminalState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *TerminalDisplay) selectScene(i int) {
	d.mu.Lock()
	fn := d.onSelect
	d.mu.Unlock()
	if fn != nil {
		fn(i)
	}
}

func (d *TerminalDisplay) quit() {
	d.mu.Lock()
	fn := d.onQuit
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// terminalModel is the bubbletea model.
type terminalModel struct {
	display *TerminalDisplay
	state   terminalState
	width   int
}

func newTerminalModel(d *TerminalDisplay) terminalModel {
	return terminalModel{display: d, state: d.snapshot()}
}

func (m terminalModel) waitForUpdate() tea.Cmd {
	dirty := m.display.dirty
	return func() tea.Msg {
		<-dirty
		return refreshMsg{}
	}
}

func (m terminalModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "ctrl+c", "q":
			m.display.quit()
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			m.display.selectScene(int(k[0] - '1'))
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case refreshMsg:
		m.state = m.display.snapshot()
		return m, m.waitForUpdate()
	}
	return m, nil
}

func (m terminalModel) View() string {
	s := m.state
	sections := []string{m.renderHeader(), m.renderScene()}
	if s.marquee != "" {
		sections = append(sections, mutedStyle.Render(s.marquee))
	}
	sections = append(sections, m.renderStatusBar(), mutedStyle.Render("1-5 切换场景 · q 退出"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m terminalModel) renderHeader() string {
	s := m.state
	dots := make([]string, s.scene.Total)
	for i := range dots {
		if i == s.scene.Index {
			dots[i] = lipgloss.NewStyle().Foreground(colorAccent).Render("●")
		} else {
			dots[i] = mutedStyle.Render("○")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Market Wallboard"),
		pillStyle.Render(s.status.HeaderDataMode),
		" ",
		pillStyle.Render(s.status.HeaderLastUpdate),
		"  ",
		headerStyle.Render(s.clock),
		"  ",
		s.scene.Label,
		" ",
		strings.Join(dots, " "),
	)
}

func (m terminalModel) renderStatusBar() string {
	st := m.state.status
	conn := lipgloss.NewStyle().Foreground(lipgloss.Color(st.ConnectionColor)).Render(st.ConnectionText + " " + st.Indicator)
	fresh := lipgloss.NewStyle().Foreground(lipgloss.Color(st.FreshnessColor)).Render(st.FreshnessText)
	return fmt.Sprintf("数据源: %s │ 最后更新: %s │ %s │ %s", st.DataMode, st.LastUpdate, conn, fresh)
}

func (m terminalModel) renderScene() string {
	p := m.state.payloads
	if p == nil {
		return panelStyle.Render("等待数据...")
	}
	var body string
	switch m.state.scene.Scene {
	case models.SceneGlobalOverview:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			panel("Indices", miniLines(p.IndicesMini)),
			panel("FX", miniLines(p.FXMini)),
		)
	case models.SceneMarketHeatmap:
		stats := fmt.Sprintf("上涨 %s  下跌 %s  平盘 %s", p.Stats.Advancing, p.Stats.Declining, p.Stats.Unchanged)
		body = lipgloss.JoinVertical(lipgloss.Left,
			panel("Indices", detailedLines(p.IndicesDetailed)),
			stats,
			panel("Heatmap", heatLines(p.Heatmap)),
		)
	case models.SceneMacroRates:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			panel("Rates", rateLines(p.Rates)),
			panel("Commodities", commodityLines(p.Commodities)),
		)
	case models.SceneUSMarkets:
		body = panel("US Markets", stockLines(p.USStocks))
	case models.SceneNewsAlerts:
		body = lipgloss.JoinVertical(lipgloss.Left,
			panel("News", newsLines(p.News)),
			panel("Calendar", calendarLines(p.Calendar)),
		)
	}
	return body
}

func panel(title string, lines []string) string {
	content := append([]string{headerStyle.Render(title)}, lines...)
	return panelStyle.Render(strings.Join(content, "\n"))
}

func colored(dir models.Direction, s string) string {
	switch dir {
	case models.DirectionUp:
		return lipgloss.NewStyle().Foreground(colorUp).Render(s)
	case models.DirectionDown:
		return lipgloss.NewStyle().Foreground(colorDown).Render(s)
	default:
		return s
	}
}

func emptyLines(empty string) []string {
	return []string{mutedStyle.Render(empty)}
}

func miniLines(l models.List[models.MiniItem]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("%-12s %12s %s", it.Name, it.Value, colored(it.Direction, it.Change)))
	}
	return out
}

func detailedLines(l models.List[models.DetailedIndex]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("%-10s %-10s %10s %s %s  Vol %s",
			it.Name, it.Code, it.Price,
			colored(it.Direction, it.Change), colored(it.Direction, it.ChangePct),
			it.Volume))
	}
	return out
}

func heatLines(l models.List[models.HeatItem]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	cells := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		cells = append(cells, colored(it.Direction, it.Name+" "+it.Change))
	}
	// four cells per row
	var out []string
	for i := 0; i < len(cells); i += 4 {
		end := i + 4
		if end > len(cells) {
			end = len(cells)
		}
		out = append(out, strings.Join(cells[i:end], "   "))
	}
	return out
}

func rateLines(l models.List[models.RateItem]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("%-12s %9s %s", it.Name, it.Value, colored(it.Direction, it.Change)))
	}
	return out
}

func commodityLines(l models.List[models.CommodityItem]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("%-12s %-6s %8s %s", it.Name, it.Sector, it.Price, colored(it.Direction, it.Change)))
	}
	return out
}

func stockLines(l models.List[models.StockItem]) []string {
	if len(l.Items) == 0 {
		return emptyLines(l.Empty)
	}
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, fmt.Sprintf("%-10s %10s %s", it.Name, it.Price, colored(it.Direction, it.Change)))
	}
	return out
}

func newsLines(items []models.NewsItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, mutedStyle.Render(it.Time)+"  "+it.Content)
	}
	return out
}

func calendarLines(l models.List[models.NewsItem]) []string {
	if len(l.Items) == 0 {
		return []string{mutedStyle.Render("--") + "  " + l.Empty}
	}
	return newsLines(l.Items)
}
