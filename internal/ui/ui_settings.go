package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
	"github.com/tartampluch/go-lifeweeks/internal/wizard"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect   *widget.Select
	entryExp     *NumericalEntry
	checkReduced *widget.Check
	checkFeed    *widget.Check
	entryPort    *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *LifeWeeksApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// --- 2. Expectancy ---
	sw.entryExp = NewDecimalEntry()
	if app.params.ExpectancyYears != 0 {
		sw.entryExp.SetText(strconv.FormatFloat(app.params.ExpectancyYears, 'f', -1, 64))
	}
	sw.entryExp.PlaceHolder = strconv.FormatFloat(config.DefaultExpectancyYears, 'f', -1, 64)

	// --- 3. Motion ---
	sw.checkReduced = widget.NewCheck(app.GetMsg(config.TKeyLblReduced), nil)
	sw.checkReduced.Checked = app.Preferences.Bool(config.PrefReducedMotion)
	if app.envReduced {
		// The environment override pins the effective value; the persisted
		// preference is still editable underneath it.
		sw.checkReduced.Checked = true
		sw.checkReduced.Disable()
	}

	// --- 4. Milestone Feed ---
	sw.checkFeed = widget.NewCheck(app.GetMsg(config.TKeyLblFeed), nil)
	sw.checkFeed.Checked = app.Preferences.Bool(config.PrefFeedEnabled)

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	// Construct the Form
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemExp := widget.NewFormItem(app.GetMsg(config.TKeyLblExpectancy), sw.entryExp)
	itemExp.HintText = app.GetMsg(config.TKeyHelpExp)

	itemReduced := widget.NewFormItem("", sw.checkReduced)
	itemReduced.HintText = app.GetMsg(config.TKeyHelpReduced)

	itemFeed := widget.NewFormItem("", sw.checkFeed)
	itemFeed.HintText = app.GetMsg(config.TKeyHelpFeed)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemExp, itemReduced, itemFeed, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- Actions ---
	saveAction := func() {
		// Only the Port field has a strict requirement that blocks saving if invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the form and propagates the changes to the running
// wizard and animation.
func (app *LifeWeeksApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)

	if !app.envReduced {
		app.Preferences.SetBool(config.PrefReducedMotion, sw.checkReduced.Checked)
	}
	app.animator.SetReducedMotion(app.reducedMotion())

	// The feed toggle and port take effect at the next launch; the listener
	// binds once at startup.
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.checkFeed.Checked)
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// Expectancy: empty keeps the default; a change restarts the reveal.
	expectancy := 0.0
	if sw.entryExp.Text != "" {
		if f, err := strconv.ParseFloat(sw.entryExp.Text, 64); err == nil {
			expectancy = f
		}
	}
	p := app.params
	p.ExpectancyYears = stats.ClampExpectancy(expectancy)
	app.applyParameters(p)

	app.UpdateLocalizer()
	app.refreshTexts()

	w.Close()
}

// refreshTexts rebuilds the main window content after a language change.
func (app *LifeWeeksApp) refreshTexts() {
	if app.Window == nil {
		return
	}
	current := app.wizard.Step()
	app.buildPages()
	app.prefillEntries()

	app.Window.SetMainMenu(app.buildMainMenu())
	app.Window.SetContent(app.content)
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.showStep(current)
	if current == wizard.StepVisual {
		app.refreshVisual()
	}
}
