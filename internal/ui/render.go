package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/models"
)

func (m model) viewSetup() string {
	var b strings.Builder
	b.WriteString(bright.Render("WILDFIRE READY-SET-GO") + "\n")
	b.WriteString(faint.Render("Gather supplies, outrun the fire, reach the Safe Zone") + "\n")
	b.WriteString(ember.Render(divider) + "\n\n")

	row := 0
	writeRow := func(label, value string) {
		cursor := "  "
		style := ember
		if row == m.setup.cursor {
			cursor = "> "
			style = bright
		}
		if value == "" {
			b.WriteString(cursor + style.Render(label) + "\n")
		} else {
			b.WriteString(cursor + style.Render(fmt.Sprintf("%-12s %s", label+":", value)) + "\n")
		}
		row++
	}

	writeRow("Players", strconv.Itoa(m.setup.count))
	seed := m.setup.seed
	if seed == "" {
		seed = "random"
	}
	writeRow("Seed", seed)
	for i := 0; i < m.setup.count; i++ {
		writeRow(fmt.Sprintf("Seat %d name", i+1), m.setup.names[i])
	}
	writeRow("Start Game", "")
	writeRow("Quit", "")

	b.WriteString("\n" + ember.Render(divider) + "\n")
	b.WriteString(faint.Render("up/down move  left/right change  type to edit  Enter select") + "\n")
	if m.status != "" {
		b.WriteString("\n" + alert.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) viewGame() string {
	var b strings.Builder
	b.WriteString(bright.Render("WILDFIRE READY-SET-GO") + "  " +
		faint.Render(fmt.Sprintf("phase: %s  round: %d", m.phase, m.round)) + "\n")
	b.WriteString(ember.Render(divider) + "\n")

	switch m.phase {
	case "disaster", "scoring", "done":
		b.WriteString(renderBoard(m.board(), m.players))
	default:
		b.WriteString(renderDecks(m.decks) + "\n")
	}
	b.WriteString(renderPlayers(m.players) + "\n")
	b.WriteString(ember.Render(divider) + "\n")

	for _, line := range tail(m.log, m.logBudget()) {
		b.WriteString(line + "\n")
	}
	b.WriteString(ember.Render(divider) + "\n")

	if m.errMsg != "" {
		b.WriteString(alert.Render("The game stopped: "+m.errMsg) + "\n")
		b.WriteString(faint.Render("Q quit") + "\n")
		return b.String()
	}
	if view := m.promptView(); view != "" {
		b.WriteString(view)
	} else {
		b.WriteString(faint.Render("Playing on... Q quits.") + "\n")
	}
	if m.status != "" {
		b.WriteString(alert.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) board() game.Board {
	if m.session != nil {
		return m.session.Board
	}
	return game.DefaultBoard()
}

// logBudget is how many log lines fit under the board, the tables and
// the prompt.
func (m model) logBudget() int {
	budget := m.h - 30
	if budget < 5 {
		budget = 5
	}
	return budget
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// introLines opens the game log: the combo bonuses in play and who got
// dealt which character.
func introLines(players []models.Player) []string {
	lines := []string{
		bright.Render("=== Wildfire Ready-Set-Go ==="),
		"Bonus combos this game:",
	}
	for _, c := range cards.Combos() {
		lines = append(lines, fmt.Sprintf("  %s (+%d pts): needs %s",
			c.Name, c.Bonus, strings.Join(c.Requires, ", ")))
	}
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("%s plays the %s. Keep it quiet!",
			p.Name, p.Character.Name))
	}
	return lines
}

// renderBoard draws the evacuation route: a shortcut marker row, the
// numbered spaces, a hazard marker row, then one marker row per
// player. Cells are two characters wide so the rows line up.
func renderBoard(bd game.Board, players []models.Player) string {
	cols := game.PathLength + 1
	shortcuts := make([]string, cols)
	spaces := make([]string, cols)
	hazards := make([]string, cols)
	for i := 0; i < game.PathLength; i++ {
		shortcuts[i], hazards[i] = "  ", "  "
		label := fmt.Sprintf("%02d", i)
		switch bd.Kind(i) {
		case game.SpaceShortcut:
			shortcuts[i] = bright.Render("SC")
			spaces[i] = bright.Render(label)
		case game.SpaceHazard:
			hazards[i] = alert.Render("XX")
			spaces[i] = alert.Render(label)
		default:
			spaces[i] = ember.Render(label)
		}
	}
	shortcuts[cols-1], hazards[cols-1] = "  ", "  "
	spaces[cols-1] = safe.Render("SZ")

	var b strings.Builder
	b.WriteString(boardRow("Shortcuts", shortcuts))
	b.WriteString(boardRow("Spaces", spaces))
	b.WriteString(boardRow("Hazards", hazards))
	for _, p := range players {
		row := make([]string, cols)
		for i := range row {
			row[i] = "  "
		}
		pos := p.Position
		if p.ReachedSafeZone {
			pos = game.SafeZone
		}
		if pos >= 0 && pos < cols {
			row[pos] = safe.Render(marker(p.Name))
		}
		b.WriteString(boardRow(p.Name, row))
	}
	b.WriteString(faint.Render("SZ = Safe Zone. XX draws an action card; SC offers a shortcut gamble.") + "\n")
	return b.String()
}

func boardRow(label string, cells []string) string {
	r := []rune(label)
	if len(r) > 10 {
		label = string(r[:10])
	}
	return fmt.Sprintf("%-10s : %s\n", label, strings.Join(cells, " "))
}

// marker is a player's two-letter board tag, their initial doubled.
func marker(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return "??"
	}
	s := strings.ToUpper(string(r[0]))
	return s + s
}

func renderDecks(decks []game.DeckCount) string {
	rows := make([][]string, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, []string{d.Location, strconv.Itoa(d.Cards)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ember).
		BorderHeader(true).
		BorderRow(false).
		Headers("Location", "Cards Left").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return bright.Bold(true)
			}
			return ember
		})
	return t.Render()
}

func renderPlayers(players []models.Player) string {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		where := fmt.Sprintf("space %02d", p.Position)
		if p.ReachedSafeZone {
			where = "Safe Zone"
		}
		note := ""
		if p.SkipNextTurn {
			note = "skips next"
		}
		rows = append(rows, []string{
			p.Name, strconv.Itoa(p.Tokens), strconv.Itoa(len(p.Hand)), where, note,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ember).
		BorderHeader(true).
		BorderRow(false).
		Headers("Player", "Tokens", "Cards", "Where", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return bright.Bold(true)
			}
			return ember
		})
	return t.Render()
}

// promptView renders the decision waiting for input, or "" when the
// engine is running.
func (m model) promptView() string {
	p := m.prompt
	switch p.kind {
	case promptPrep:
		v := p.prep.view
		var b strings.Builder
		b.WriteString(bright.Render(fmt.Sprintf("%s, round %d of %d. Spend it where?",
			v.Player.Name, v.Round, v.Rounds)) + "\n")
		b.WriteString(faint.Render(fmt.Sprintf("Hand: %s   Tokens: %d",
			handLine(v.Player), v.Player.Tokens)) + "\n")
		if v.Rejected != nil {
			b.WriteString(alert.Render(v.Rejected.Error()) + "\n")
		}
		for i, d := range v.Decks {
			b.WriteString(option(i == p.cursor, fmt.Sprintf("Visit %s (%d cards)", d.Location, d.Cards)))
		}
		b.WriteString(option(p.cursor == len(v.Decks), "Defend home (+1 Neighborly Token)"))
		b.WriteString(faint.Render("up/down choose  Enter confirm") + "\n")
		return b.String()

	case promptToken:
		v := p.token.view
		var b strings.Builder
		b.WriteString(bright.Render(fmt.Sprintf("%s rolled a %d and can move %d.",
			v.Player.Name, v.Roll, v.Movement)) + "\n")
		if v.Limited {
			b.WriteString(faint.Render("A road block capped the roll.") + "\n")
		}
		b.WriteString(option(p.cursor == 0, fmt.Sprintf("Spend a Neighborly Token (+%d movement, %d held)",
			game.TokenBoost, v.Player.Tokens)))
		b.WriteString(option(p.cursor == 1, "Hold on to it"))
		b.WriteString(faint.Render("up/down choose  Enter confirm") + "\n")
		return b.String()

	case promptBlock:
		v := p.block.view
		var b strings.Builder
		b.WriteString(alert.Render(fmt.Sprintf("%s: %s! Unblocked, you %s.",
			v.Player.Name, v.Hazard.Name, effectLine(v.Hazard))) + "\n")
		if v.Rejected != nil {
			b.WriteString(alert.Render(v.Rejected.Error()) + "\n")
		}
		for i := range v.Eligible {
			b.WriteString(option(i == p.cursor,
				fmt.Sprintf("Discard %s (copy %d of %d)", v.Hazard.Blocker, i+1, len(v.Eligible))))
		}
		b.WriteString(option(p.cursor == len(v.Eligible), "Let it happen"))
		b.WriteString(faint.Render("up/down choose  Enter confirm") + "\n")
		return b.String()

	case promptTrade:
		return m.tradePromptView()

	case promptAccept:
		v := p.accept.view
		var b strings.Builder
		b.WriteString(bright.Render(fmt.Sprintf("%s, %s offers you a trade.",
			v.Player.Name, v.Proposer.Name)) + "\n")
		b.WriteString(fmt.Sprintf("You receive %s and give up %s.\n", v.Give, v.Want))
		b.WriteString(option(p.cursor == 0, "Accept"))
		b.WriteString(option(p.cursor == 1, "Decline"))
		b.WriteString(faint.Render("up/down choose  Enter confirm") + "\n")
		return b.String()
	}
	return ""
}

func (m model) tradePromptView() string {
	p := m.prompt
	v := p.trade.view
	gives := resourceNames(v.Player)
	wants := m.tradeWants()
	partner := "(nobody)"
	if len(v.Others) > 0 {
		partner = v.Others[p.partnerIdx%len(v.Others)].Name
	}

	rows := []struct{ label, value string }{
		{"Partner", partner},
		{"You give", pick(gives, p.giveIdx, "(nothing)")},
		{"You want", pick(wants, p.wantIdx, "(nothing)")},
		{"Make the offer", ""},
		{"Pass", ""},
	}

	var b strings.Builder
	b.WriteString(bright.Render(fmt.Sprintf("%s, propose a trade?", v.Player.Name)) + "\n")
	b.WriteString(faint.Render("Hand: "+handLine(v.Player)) + "\n")
	if v.Rejected != nil {
		b.WriteString(alert.Render(v.Rejected.Error()) + "\n")
	}
	for i, row := range rows {
		if row.value == "" {
			b.WriteString(option(i == p.cursor, row.label))
			continue
		}
		b.WriteString(option(i == p.cursor, fmt.Sprintf("%-10s %s", row.label+":", row.value)))
	}
	b.WriteString(faint.Render("up/down move  left/right change  Enter select  Esc pass") + "\n")
	return b.String()
}

func option(selected bool, label string) string {
	if selected {
		return "> " + bright.Render(label) + "\n"
	}
	return "  " + ember.Render(label) + "\n"
}

func pick(options []string, idx int, fallback string) string {
	if len(options) == 0 {
		return fallback
	}
	return options[idx%len(options)]
}

func handLine(p models.Player) string {
	if len(p.Hand) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(p.Hand))
	for _, c := range p.Hand {
		parts = append(parts, fmt.Sprintf("%s(%d)", c.Name, c.Value))
	}
	return strings.Join(parts, ", ")
}

// resourceNames lists the distinct resource card names in a hand, in
// hand order.
func resourceNames(p models.Player) []string {
	seen := map[string]bool{}
	var names []string
	for _, c := range p.Hand {
		if !c.IsResource() || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	return names
}

func effectLine(card models.Card) string {
	switch card.Effect {
	case models.EffectSkipTurn:
		return "lose the next turn"
	case models.EffectLimitMove:
		return fmt.Sprintf("move at most %d next turn", card.Amount)
	case models.EffectLosePoints:
		return fmt.Sprintf("lose %d points at scoring", card.Amount)
	case models.EffectLoseCard:
		return "lose a random card"
	default:
		return "are unharmed"
	}
}

// eventLine renders one event as a log line, or "" for events the log
// does not show.
func eventLine(ev game.Event) string {
	switch ev.Type {
	case game.EventPhaseChanged:
		return bright.Render(fmt.Sprintf("=== %s ===", phaseTitle(ev.Phase)))
	case game.EventRoundStarted:
		return ember.Render(fmt.Sprintf("--- Round %d ---", ev.Round))
	case game.EventTurnStarted:
		return faint.Render(ev.Player + " is up.")
	case game.EventCardDrawn:
		if ev.Card != nil {
			return fmt.Sprintf("%s visits the %s and picks up %s (%d pts).",
				ev.Player, ev.Location, ev.Card.Name, ev.Card.Value)
		}
		return fmt.Sprintf("%s visits the %s.", ev.Player, ev.Location)
	case game.EventTokenEarned:
		return fmt.Sprintf("%s defends home and earns a Neighborly Token (%d held).",
			ev.Player, ev.Amount)
	case game.EventDeckEmpty:
		return faint.Render(fmt.Sprintf("%s finds the %s picked clean.", ev.Player, ev.Location))
	case game.EventTriggerRoll:
		return faint.Render(fmt.Sprintf("Disaster die: %d.", ev.Roll))
	case game.EventDisasterTriggered:
		return alert.Render("The wildfire ignites! This is the last preparation round.")
	case game.EventTurnSkipped:
		return fmt.Sprintf("%s sits this turn out.", ev.Player)
	case game.EventMoveRolled:
		if ev.Amount < ev.Roll {
			return fmt.Sprintf("%s rolls a %d, capped to %d.", ev.Player, ev.Roll, ev.Amount)
		}
		return fmt.Sprintf("%s rolls a %d.", ev.Player, ev.Roll)
	case game.EventTokenSpent:
		return fmt.Sprintf("%s spends a Neighborly Token: +%d movement.", ev.Player, ev.Amount)
	case game.EventMoved:
		if ev.To == game.SafeZone {
			return fmt.Sprintf("%s races off the end of the road!", ev.Player)
		}
		return fmt.Sprintf("%s moves up to space %02d.", ev.Player, ev.To)
	case game.EventShortcutRoll:
		if ev.Amount > 0 {
			return safe.Render(fmt.Sprintf("%s gambles the shortcut, rolls %d: %+d spaces!",
				ev.Player, ev.Roll, ev.Amount))
		}
		return alert.Render(fmt.Sprintf("%s gambles the shortcut, rolls %d, and loses the next turn.",
			ev.Player, ev.Roll))
	case game.EventHazardDrawn:
		if ev.Card != nil {
			return alert.Render(fmt.Sprintf("Trouble for %s: %s.", ev.Player, ev.Card.Name))
		}
	case game.EventHazardBlocked:
		return safe.Render(fmt.Sprintf("%s discards %s and shrugs it off.", ev.Player, ev.Gave))
	case game.EventHazardApplied:
		if ev.Card != nil {
			return fmt.Sprintf("%s takes the hit and will %s.", ev.Player, effectLine(*ev.Card))
		}
	case game.EventCardLost:
		if ev.Card != nil {
			return fmt.Sprintf("%s loses %s.", ev.Player, ev.Card.Name)
		}
	case game.EventPointsLost:
		return fmt.Sprintf("%s is down %d points.", ev.Player, ev.Amount)
	case game.EventDeckReshuffled:
		return faint.Render("The Action Deck is reshuffled from its discards.")
	case game.EventSafeZoneReached:
		return safe.Render(fmt.Sprintf("%s reaches the Safe Zone, arrival #%d!", ev.Player, ev.Rank))
	case game.EventTradeCompleted:
		return fmt.Sprintf("%s trades %s to %s for %s.", ev.Player, ev.Gave, ev.Partner, ev.Got)
	case game.EventGameEnd:
		return bright.Render("Everyone is accounted for. Tallying scores...")
	}
	return ""
}

func phaseTitle(phase string) string {
	switch phase {
	case "preparation":
		return "Preparation Phase"
	case "disaster":
		return "Disaster Phase"
	case "scoring":
		return "Scoring"
	case "done":
		return "Game Over"
	}
	return phase
}

func (m model) viewScores() string {
	var b strings.Builder
	b.WriteString(bright.Render("FINAL SCORES") + "\n")
	b.WriteString(ember.Render(divider) + "\n")
	b.WriteString(renderScores(m.scores) + "\n")

	for _, sc := range m.scores {
		if sc.Tied {
			b.WriteString(faint.Render("Tied players share a rank; house rules settle it by age.") + "\n")
			break
		}
	}
	b.WriteString("\n" + faint.Render("Enter/Q quit   N new game") + "\n")
	return b.String()
}

func renderScores(scores []game.Score) string {
	rows := make([][]string, 0, len(scores))
	for _, sc := range scores {
		rank := strconv.Itoa(sc.Rank)
		if sc.Tied {
			rank += "="
		}
		combo := "-"
		if sc.ComboName != "" {
			combo = fmt.Sprintf("%s +%d", sc.ComboName, sc.ComboBonus)
		}
		first := "-"
		if sc.ArrivalBonus > 0 {
			first = "+" + strconv.Itoa(sc.ArrivalBonus)
		}
		penalty := "-"
		if sc.Penalty > 0 {
			penalty = "-" + strconv.Itoa(sc.Penalty)
		}
		rows = append(rows, []string{
			rank, sc.Player, sc.Character,
			strconv.Itoa(sc.Base), strconv.Itoa(sc.PlusBonus), strconv.Itoa(sc.MultiplierBonus),
			strconv.Itoa(sc.TokenPoints), combo, first, penalty,
			strconv.Itoa(sc.Total),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ember).
		BorderHeader(true).
		BorderRow(false).
		Headers("Rank", "Player", "Character", "Base", "Plus", "x2", "Tokens", "Combo", "First", "Penalty", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return bright.Bold(true)
			}
			if row == 0 {
				return safe
			}
			return ember
		})
	return t.Render()
}
