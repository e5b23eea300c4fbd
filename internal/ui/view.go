package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"unifiedlist/internal/api"
)

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}
	header := m.renderHeader()
	var body string
	switch m.state {
	case stateList, stateSearch:
		body = m.viewList()
	case stateCreate:
		body = m.viewForm("New record", m.create, true)
	case stateDetail:
		body = m.viewForm("Record details", m.detail, m.cfg.Features.Update)
	case stateConfirmDelete:
		body = m.viewList() + "\n" + noticeBoxStyle.Render(
			warnStyle.Render(m.deletePrompt())+"\n\n"+helpStyle.Render("y confirm  |  n cancel"))
	case stateAlert:
		body = m.viewAlert()
	case stateLogin:
		body = m.viewLogin()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) renderHeader() string {
	var b strings.Builder
	title := m.cfg.Title
	if title == "" {
		title = "unifiedlist"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d records", m.page.total)))
	if m.hasClaims {
		b.WriteString("  ")
		b.WriteString(m.renderSession(time.Now()))
	}
	if m.loading {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.width-2))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSession(now time.Time) string {
	who := m.claims.Subject
	if who == "" {
		who = "token"
	}
	switch {
	case m.claims.ExpiresAt.IsZero():
		return okStyle.Render(who)
	case m.claims.Expired(now):
		return warnStyle.Render(who + " (expired)")
	default:
		left := m.claims.ExpiresAt.Sub(now).Round(time.Minute)
		return okStyle.Render(who) + subtleStyle.Render(" expires in "+left.String())
	}
}

func metricsLine(s api.MetricsSnapshot) string {
	return fmt.Sprintf("requests %d (read %d, write %d)  failed %d  5xx %d",
		s.TotalRequests, s.ReadRequests, s.WriteRequests, s.Failures(), s.Status5xx)
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	if m.metrics != nil {
		line := metricsLine(m.metrics.Snapshot())
		if status != "" {
			status += "  |  " + line
		} else {
			status = line
		}
	}
	switch m.state {
	case stateList:
		return renderFooter(status, m.help.View(m.keys))
	case stateSearch:
		return renderFooter(status, "enter search  |  esc back")
	case stateCreate, stateDetail:
		return renderFooter(status, "tab next field  |  ctrl+s save  |  esc close")
	case stateLogin:
		return renderFooter(status, "enter log in  |  esc quit")
	}
	return renderFooter(status)
}

func (m Model) viewAlert() string {
	box := noticeBoxStyle
	text := okStyle.Render(m.alert.msg)
	if m.alert.isErr {
		box = errorBoxStyle
		text = errorStyle.Render(m.alert.msg)
	}
	return box.Render(text + "\n\n" + helpStyle.Render("enter continue"))
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString("Sign in to continue.\n\n")
	if m.cfg.LoginURL != "" {
		b.WriteString(subtleStyle.Render("Get a token from "+m.cfg.LoginURL) + "\n\n")
	}
	b.WriteString(m.loginInput.View() + "\n")
	return noticeBoxStyle.Render(b.String())
}

func (m Model) viewForm(title string, f formState, editable bool) string {
	var b strings.Builder
	b.WriteString(focusStyle.Render(title) + "\n\n")
	if f.id != "" {
		b.WriteString(subtleStyle.Render("ID        ") + f.id + "\n")
	}
	if f.regDate != "" {
		b.WriteString(subtleStyle.Render("Registered ") + f.regDate + "\n")
	}
	if f.id != "" || f.regDate != "" {
		b.WriteString("\n")
	}
	labels := []string{"Title", "Owner"}
	for i, in := range f.inputs {
		marker := "  "
		if i == f.focus && editable {
			marker = cursorBarStyle.Render(" ") + " "
		}
		b.WriteString(marker + fmt.Sprintf("%-6s ", labels[i]) + in.View() + "\n")
	}
	if !editable {
		b.WriteString("\n" + subtleStyle.Render("read only"))
	}
	return formBoxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}
