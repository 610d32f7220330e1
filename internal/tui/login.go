package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/camaragestao/gestao/internal/tui/styles"
)

// loginModel is the credential form.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "usuário"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "senha"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{username: username, password: password}
}

func (m loginModel) init() tea.Cmd {
	return textinput.Blink
}

func (a *App) updateLogin(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			if a.login.focused == 0 {
				a.login.focused = 1
				a.login.username.Blur()
				return a.login.password.Focus()
			}
			a.login.focused = 0
			a.login.password.Blur()
			return a.login.username.Focus()

		case "enter":
			username := strings.TrimSpace(a.login.username.Value())
			password := a.login.password.Value()
			if username == "" || password == "" {
				a.errMsg = "Informe usuário e senha."
				return nil
			}
			a.errMsg = ""
			a.login.busy = true
			return a.doLogin(username, password)
		}
	}

	var cmd tea.Cmd
	if a.login.focused == 0 {
		a.login.username, cmd = a.login.username.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return cmd
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("CâmaraGestão") + "\n")
	b.WriteString(styles.Subtitle.Render("Gestão de ativos e chamados de TI") + "\n\n")
	b.WriteString(a.login.username.View() + "\n")
	b.WriteString(a.login.password.View() + "\n\n")

	if a.login.busy {
		b.WriteString(styles.Muted.Render("Entrando...") + "\n")
	}
	if a.errMsg != "" {
		b.WriteString(styles.ErrorMsg.Render(a.errMsg) + "\n")
	}

	b.WriteString(styles.HelpBar.Render(
		styles.HelpKey.Render("tab") + " alternar campo  " +
			styles.HelpKey.Render("enter") + " entrar  " +
			styles.HelpKey.Render("ctrl+c") + " sair"))
	return b.String()
}
