package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/milestone"
	"github.com/tartampluch/go-lifeweeks/internal/profile"
	"github.com/tartampluch/go-lifeweeks/internal/reveal"
	"github.com/tartampluch/go-lifeweeks/internal/server"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
	"github.com/tartampluch/go-lifeweeks/internal/wizard"
)

// LifeWeeksApp encapsulates the UI state, preferences, and background logic.
type LifeWeeksApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Feed  *server.FeedServer
	Store profile.Store
	Clock timing.Clock          // Injected clock for testability (e.g. mocking time travel)
	Sched timing.EventScheduler // Drives wizard transitions and the reveal animation

	SupportedLanguages []string

	// envReduced is the environment override; it wins over the preference.
	envReduced bool

	params profile.Parameters

	wizard   *wizard.Controller
	animator *reveal.Animator
	loop     *timing.FrameLoop

	grid      *WeekGrid
	pages     map[wizard.Step]fyne.CanvasObject
	content   *fyne.Container
	prepLabel *widget.Label

	entryYear  *NumericalEntry
	entryMonth *NumericalEntry
	entryDay   *NumericalEntry
	entryExp   *NumericalEntry

	lblAgeValue       *widget.Label
	lblLeftValue      *widget.Label
	lblPercentValue   *widget.Label
	lblRemainingValue *widget.Label
	lblWeeksValue     *widget.Label

	settingsWindow fyne.Window
}

// NewLifeWeeksApp constructs the application and wires dependencies.
// initial carries the profile resolved at startup (keyring, environment,
// deep-link flags); a zero birth date starts the wizard from scratch.
func NewLifeWeeksApp(a fyne.App, ctx context.Context, feed *server.FeedServer, sched timing.EventScheduler, initial profile.Parameters, envReduced bool) *LifeWeeksApp {
	return &LifeWeeksApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Feed:               feed,
		Store:              profile.NewStore(),
		Clock:              timing.RealClock{},
		Sched:              sched,
		SupportedLanguages: config.SupportedLanguages,
		envReduced:         envReduced,
		params:             initial,
	}
}

// Run launches the application services and the main UI loop.
func (app *LifeWeeksApp) Run() {
	app.SetupI18n()

	if app.Feed != nil && app.Preferences.Bool(config.PrefFeedEnabled) {
		app.rebuildFeed()
		go func() {
			if err := app.Feed.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)
			}
		}()
	}

	app.buildMainWindow()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.Window.Show()
	app.App.Run()
}

// reducedMotion resolves the effective preference: the environment override
// wins, otherwise the persisted setting applies.
func (app *LifeWeeksApp) reducedMotion() bool {
	return app.envReduced || app.Preferences.Bool(config.PrefReducedMotion)
}

// buildMainWindow assembles the window, the wizard controller and the
// animation pipeline.
func (app *LifeWeeksApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))
	w.SetMaster()

	app.grid = NewWeekGrid()
	app.animator = reveal.New(app.Sched, app.reducedMotion(), app.onRevealFrame)
	app.loop = timing.NewFrameLoop(app.Sched)

	policy := wizard.PolicyStaged
	if app.reducedMotion() {
		// Reduced motion collapses the staged walk into a single page.
		policy = wizard.PolicyImmediate
	}
	app.wizard = wizard.New(policy, app.Sched, wizard.Callbacks{
		OnLeave:    app.onStepLeave,
		OnEnter:    app.onStepEnter,
		OnSettle:   app.onStepSettle,
		OnPrepFade: app.onPrepFade,
	})

	app.buildPages()
	app.showStep(app.wizard.Step())

	w.SetMainMenu(app.buildMainMenu())
	w.SetContent(app.content)

	w.SetOnClosed(func() {
		app.loop.Stop()
		app.animator.Stop()
		app.wizard.Close()
	})

	// A profile restored at startup skips straight to the grid.
	if app.params.Valid() {
		app.prefillEntries()
		app.wizard.Reset(wizard.StepVisual)
	}
}

// buildMainMenu constructs the application menu.
func (app *LifeWeeksApp) buildMainMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(fyne.NewMenu(config.AppName,
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow),
	))
}

// buildPages constructs one page per step of the active policy and stacks
// them; showStep toggles visibility.
func (app *LifeWeeksApp) buildPages() {
	app.pages = map[wizard.Step]fyne.CanvasObject{}

	if app.wizard.Policy() == wizard.PolicyImmediate {
		app.pages[wizard.StepCollect] = app.buildCollectPage()
	} else {
		app.pages[wizard.StepYear] = app.buildYearPage()
		app.pages[wizard.StepMonth] = app.buildMonthPage()
		app.pages[wizard.StepDay] = app.buildDayPage()
		app.pages[wizard.StepPrep] = app.buildPrepPage()
	}
	app.pages[wizard.StepVisual] = app.buildVisualPage()

	objects := make([]fyne.CanvasObject, 0, len(app.pages))
	for _, page := range app.pages {
		page.Hide()
		objects = append(objects, page)
	}
	app.content = container.NewStack(objects...)
}

// showStep makes the given step's page the only visible one.
func (app *LifeWeeksApp) showStep(s wizard.Step) {
	for step, page := range app.pages {
		if step == s {
			page.Show()
		} else {
			page.Hide()
		}
	}
	app.content.Refresh()
}

// -----------------------------------------------------------------------------
// Wizard callbacks
// -----------------------------------------------------------------------------

func (app *LifeWeeksApp) onStepLeave(from wizard.Step) {
	if from == wizard.StepVisual {
		app.loop.Stop()
		app.animator.Stop()
	}
}

func (app *LifeWeeksApp) onStepEnter(to wizard.Step) {
	if to == wizard.StepPrep && app.prepLabel != nil {
		app.prepLabel.Show()
	}
	app.showStep(to)
	if to == wizard.StepVisual {
		app.enterVisual()
	}
}

func (app *LifeWeeksApp) onStepSettle(to wizard.Step) {
	if app.Window == nil {
		return
	}
	switch to {
	case wizard.StepCollect, wizard.StepYear:
		app.Window.Canvas().Focus(app.entryYear)
	case wizard.StepMonth:
		app.Window.Canvas().Focus(app.entryMonth)
	case wizard.StepDay:
		app.Window.Canvas().Focus(app.entryDay)
	}
}

func (app *LifeWeeksApp) onPrepFade() {
	if app.prepLabel != nil {
		app.prepLabel.Hide()
	}
}

// -----------------------------------------------------------------------------
// Visual step
// -----------------------------------------------------------------------------

// enterVisual primes the grid and starts the reveal plus the live clock loop.
func (app *LifeWeeksApp) enterVisual() {
	if !app.params.Valid() {
		app.showPlaceholders()
		return
	}

	s := stats.Compute(app.params.BirthDate, app.Clock.Now(), app.params.ExpectancyYears)
	app.grid.SetTotal(s.TotalWeeks)
	app.grid.SetFilled(0)
	app.updateStatsLabels(s)

	app.animator.Start(s.LivedWeeks, s.TotalWeeks)
	app.loop.Start(app.onTick)
}

// refreshVisual repopulates the rebuilt grid page without touching the reveal:
// the animator keeps its displayed count and simply lands on the new target if
// it moved. Only a committed parameter change restarts from zero.
func (app *LifeWeeksApp) refreshVisual() {
	if !app.params.Valid() {
		app.showPlaceholders()
		return
	}

	s := stats.Compute(app.params.BirthDate, app.Clock.Now(), app.params.ExpectancyYears)
	app.grid.SetTotal(s.TotalWeeks)
	app.updateStatsLabels(s)
	app.animator.Retarget(s.LivedWeeks, s.TotalWeeks)

	displayed := app.animator.Displayed()
	app.grid.SetFilled(displayed)
	app.lblWeeksValue.SetText(fmt.Sprintf(config.FormatWeeksCount, displayed, app.grid.Total()))
}

// onTick is the per-refresh clock callback: recompute, then retarget. A mere
// clock tick adjusts the target in place and never restarts the animation.
func (app *LifeWeeksApp) onTick(now time.Time) {
	s := stats.Compute(app.params.BirthDate, now, app.params.ExpectancyYears)
	app.updateStatsLabels(s)
	app.grid.SetTotal(s.TotalWeeks)
	app.animator.Retarget(s.LivedWeeks, s.TotalWeeks)
}

// onRevealFrame receives each displayed-count change from the animator.
func (app *LifeWeeksApp) onRevealFrame(displayed int) {
	app.grid.SetFilled(displayed)
	app.lblWeeksValue.SetText(fmt.Sprintf(config.FormatWeeksCount, displayed, app.grid.Total()))
}

func (app *LifeWeeksApp) updateStatsLabels(s stats.Stats) {
	app.lblAgeValue.SetText(strconv.FormatFloat(s.AgeYears, 'f', config.StatsDecimals, 64))
	app.lblLeftValue.SetText(strconv.FormatFloat(s.LeftYears, 'f', config.StatsDecimals, 64))
	app.lblPercentValue.SetText(fmt.Sprintf(config.FormatPercent, s.Percent))
	app.lblRemainingValue.SetText(fmt.Sprintf(config.FormatRemaining,
		s.LeftParts.Days, s.LeftParts.Hours, s.LeftParts.Minutes, s.LeftParts.Seconds))
}

func (app *LifeWeeksApp) showPlaceholders() {
	placeholder := app.GetMsg(config.TKeyNoValue)
	if placeholder == config.TKeyNoValue {
		placeholder = config.FallbackNoValue
	}
	app.lblAgeValue.SetText(placeholder)
	app.lblLeftValue.SetText(placeholder)
	app.lblPercentValue.SetText(placeholder)
	app.lblRemainingValue.SetText(placeholder)
	app.lblWeeksValue.SetText(placeholder)
	app.grid.SetTotal(0)
}

// -----------------------------------------------------------------------------
// Profile changes
// -----------------------------------------------------------------------------

// applyParameters commits a new profile: persists it, refreshes the milestone
// feed, and restarts the reveal from zero if the grid is on screen.
func (app *LifeWeeksApp) applyParameters(p profile.Parameters) {
	if p.Equal(app.params) {
		return
	}
	app.params = p

	if err := app.Store.SaveBirthDate(p.BirthDate); err != nil {
		slog.Warn(config.ErrKeyringSave,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	}
	app.Preferences.SetFloat(config.PrefExpectancy, p.ExpectancyYears)
	slog.Info(config.MsgProfileSaved,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyExp, p.ExpectancyYears)

	app.rebuildFeed()

	if app.wizard.Step() == wizard.StepVisual {
		app.enterVisual()
	}
}

// rebuildFeed regenerates the milestone calendar and pushes it to the server.
func (app *LifeWeeksApp) rebuildFeed() {
	if app.Feed == nil || !app.params.Valid() {
		return
	}
	gen := &milestone.Generator{Clock: app.Clock}
	ics, err := gen.Build(app.params)
	if err != nil {
		slog.Warn(config.ErrICalEncode,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		return
	}
	app.Feed.Update(ics)
}

// -----------------------------------------------------------------------------
// Pages
// -----------------------------------------------------------------------------

func (app *LifeWeeksApp) buildYearPage() fyne.CanvasObject {
	app.entryYear = NewNumericalEntry()
	app.entryYear.Validator = app.yearValidator()

	next := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		if app.entryYear.Validate() != nil {
			return
		}
		app.wizard.GoToStep(wizard.StepMonth)
	})
	next.Importance = widget.HighImportance

	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportVCF), theme.FolderOpenIcon(), app.importVCard)

	return app.questionPage(config.TKeyAskYear, app.entryYear, container.NewHBox(importBtn, next))
}

func (app *LifeWeeksApp) buildMonthPage() fyne.CanvasObject {
	app.entryMonth = NewNumericalEntry()
	app.entryMonth.Validator = rangeValidator(config.MinMonth, config.MaxMonth, app.GetMsg(config.TKeyErrMonth))

	back := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBack), theme.NavigateBackIcon(), func() {
		app.wizard.GoToStep(wizard.StepYear)
	})
	next := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		if app.entryMonth.Validate() != nil {
			return
		}
		app.wizard.GoToStep(wizard.StepDay)
	})
	next.Importance = widget.HighImportance

	return app.questionPage(config.TKeyAskMonth, app.entryMonth, container.NewHBox(back, next))
}

func (app *LifeWeeksApp) buildDayPage() fyne.CanvasObject {
	app.entryDay = NewNumericalEntry()
	app.entryDay.Validator = rangeValidator(1, 31, app.GetMsg(config.TKeyErrDay))

	app.entryExp = NewDecimalEntry()
	app.entryExp.PlaceHolder = strconv.FormatFloat(config.DefaultExpectancyYears, 'f', -1, 64)

	back := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBack), theme.NavigateBackIcon(), func() {
		app.wizard.GoToStep(wizard.StepMonth)
	})
	next := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		if app.entryDay.Validate() != nil {
			return
		}
		app.commitEntries()
		app.wizard.GoToStep(wizard.StepPrep)
	})
	next.Importance = widget.HighImportance

	expRow := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyAskExp), app.entryExp))

	return container.NewCenter(container.NewVBox(
		pageTitle(app.GetMsg(config.TKeyAskDay)),
		app.entryDay,
		expRow,
		container.NewCenter(container.NewHBox(back, next)),
	))
}

// buildCollectPage is the single page of the immediate policy: every input at
// once, no staging.
func (app *LifeWeeksApp) buildCollectPage() fyne.CanvasObject {
	app.entryYear = NewNumericalEntry()
	app.entryYear.Validator = app.yearValidator()
	app.entryMonth = NewNumericalEntry()
	app.entryMonth.Validator = rangeValidator(config.MinMonth, config.MaxMonth, app.GetMsg(config.TKeyErrMonth))
	app.entryDay = NewNumericalEntry()
	app.entryDay.Validator = rangeValidator(1, 31, app.GetMsg(config.TKeyErrDay))
	app.entryExp = NewDecimalEntry()
	app.entryExp.PlaceHolder = strconv.FormatFloat(config.DefaultExpectancyYears, 'f', -1, 64)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyAskYear), app.entryYear),
		widget.NewFormItem(app.GetMsg(config.TKeyAskMonth), app.entryMonth),
		widget.NewFormItem(app.GetMsg(config.TKeyAskDay), app.entryDay),
		widget.NewFormItem(app.GetMsg(config.TKeyAskExp), app.entryExp),
	)

	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportVCF), theme.FolderOpenIcon(), app.importVCard)
	next := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		if app.entryYear.Validate() != nil || app.entryMonth.Validate() != nil || app.entryDay.Validate() != nil {
			return
		}
		app.commitEntries()
		app.wizard.GoToStep(wizard.StepVisual)
	})
	next.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(
		form,
		container.NewCenter(container.NewHBox(importBtn, next)),
	))
}

func (app *LifeWeeksApp) buildPrepPage() fyne.CanvasObject {
	app.prepLabel = widget.NewLabel(app.GetMsg(config.TKeyPrepMessage))
	app.prepLabel.Alignment = fyne.TextAlignCenter
	app.prepLabel.TextStyle = fyne.TextStyle{Italic: true}
	return container.NewCenter(app.prepLabel)
}

func (app *LifeWeeksApp) buildVisualPage() fyne.CanvasObject {
	app.lblAgeValue = widget.NewLabel("")
	app.lblLeftValue = widget.NewLabel("")
	app.lblPercentValue = widget.NewLabel("")
	app.lblRemainingValue = widget.NewLabel("")
	app.lblWeeksValue = widget.NewLabel("")

	statsForm := container.NewGridWithColumns(config.LayoutColumnsDouble,
		widget.NewLabel(app.GetMsg(config.TKeyLblAge)), app.lblAgeValue,
		widget.NewLabel(app.GetMsg(config.TKeyLblLeft)), app.lblLeftValue,
		widget.NewLabel(app.GetMsg(config.TKeyLblPercent)), app.lblPercentValue,
		widget.NewLabel(app.GetMsg(config.TKeyLblRemaining)), app.lblRemainingValue,
		widget.NewLabel(app.GetMsg(config.TKeyLblWeeks)), app.lblWeeksValue,
	)

	share := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnShare), theme.ContentCopyIcon(), app.shareProfile)
	restart := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRestart), theme.ViewRefreshIcon(), func() {
		app.wizard.GoToStep(app.firstStep())
	})

	top := container.NewBorder(nil, nil, statsForm, container.NewVBox(share, restart))
	return container.NewBorder(top, nil, nil, nil,
		container.NewScroll(container.NewCenter(app.grid)))
}

func (app *LifeWeeksApp) firstStep() wizard.Step {
	if app.wizard.Policy() == wizard.PolicyImmediate {
		return wizard.StepCollect
	}
	return wizard.StepYear
}

func (app *LifeWeeksApp) questionPage(titleKey string, entry *NumericalEntry, actions fyne.CanvasObject) fyne.CanvasObject {
	return container.NewCenter(container.NewVBox(
		pageTitle(app.GetMsg(titleKey)),
		entry,
		container.NewCenter(actions),
	))
}

func pageTitle(text string) *widget.Label {
	lbl := widget.NewLabel(text)
	lbl.Alignment = fyne.TextAlignCenter
	lbl.TextStyle = fyne.TextStyle{Bold: true}
	return lbl
}

// -----------------------------------------------------------------------------
// Input handling
// -----------------------------------------------------------------------------

// commitEntries turns the raw entry text into committed parameters. Out of
// range values are clamped, never rejected, past this point.
func (app *LifeWeeksApp) commitEntries() {
	year, _ := strconv.Atoi(app.entryYear.Text)
	month, _ := strconv.Atoi(app.entryMonth.Text)
	day, _ := strconv.Atoi(app.entryDay.Text)

	expectancy := 0.0
	if app.entryExp.Text != "" {
		if f, err := strconv.ParseFloat(app.entryExp.Text, 64); err == nil {
			expectancy = f
		}
	}

	app.applyParameters(profile.New(year, month, day, expectancy))
}

// prefillEntries mirrors the committed parameters back into the wizard
// entries, so going back from the grid shows the current values.
func (app *LifeWeeksApp) prefillEntries() {
	if !app.params.Valid() {
		return
	}
	app.entryYear.SetText(strconv.Itoa(app.params.BirthDate.Year()))
	app.entryMonth.SetText(strconv.Itoa(int(app.params.BirthDate.Month())))
	app.entryDay.SetText(strconv.Itoa(app.params.BirthDate.Day()))
	app.entryExp.SetText(strconv.FormatFloat(app.params.ExpectancyYears, 'f', -1, 64))
}

func (app *LifeWeeksApp) yearValidator() fyne.StringValidator {
	return func(s string) error {
		year, err := strconv.Atoi(s)
		if err != nil || year < config.MinBirthYear || year > app.Clock.Now().Year() {
			return errors.New(app.GetMsg(config.TKeyErrYearRange))
		}
		return nil
	}
}

func rangeValidator(min, max int, msg string) fyne.StringValidator {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < min || v > max {
			return errors.New(msg)
		}
		return nil
	}
}

// shareProfile copies the deep-link query for the current parameters.
func (app *LifeWeeksApp) shareProfile() {
	app.App.Clipboard().SetContent(app.params.ShareQuery())
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifCopied)))
}

// importVCard lets the user pick a vCard export and pre-fills the birth date
// entries from its BDAY field.
func (app *LifeWeeksApp) importVCard() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer r.Close()

		date, err := profile.ImportVCardBirthDate(r)
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		app.entryYear.SetText(strconv.Itoa(date.Year()))
		app.entryMonth.SetText(strconv.Itoa(int(date.Month())))
		app.entryDay.SetText(strconv.Itoa(date.Day()))
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}
