package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Life Weeks"
	AppID             = "com.github.tartampluch.go-lifeweeks"
	KeyringService    = "com.github.tartampluch.go-lifeweeks"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDOB          = "dob"
	FlagExpectancy   = "exp"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescDOB      = "Pre-fill the birth date (YYYY-MM-DD), as in a shared link"
	FlagDescExp      = "Pre-fill the life expectancy in years, as in a shared link"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Life Arithmetic
// -----------------------------------------------------------------------------

const (
	// TropicalYear is the fixed-length year used for all age arithmetic:
	// 365.2425 days, i.e. 365d 5h 49m 12s. Calendar and timezone effects are
	// intentionally ignored: the grid is a statistical visualization, not a
	// calendar.
	TropicalYear = 365*24*time.Hour + 5*time.Hour + 49*time.Minute + 12*time.Second

	WeeksPerYear = 52

	DefaultExpectancyYears = 82.0
	MinExpectancyYears     = 30.0
	MaxExpectancyYears     = 120.0

	MinBirthYear = 1900
	MinMonth     = 1
	MaxMonth     = 12

	HoursPerDay      = 24
	MinutesPerHour   = 60
	SecondsPerMinute = 60
)

// -----------------------------------------------------------------------------
// Wizard Timings
// -----------------------------------------------------------------------------

const (
	// WizardLeaveDuration is how long the outgoing step stays visible while exiting.
	WizardLeaveDuration = 700 * time.Millisecond

	// WizardEnterSettle is the short delay before the incoming step counts as settled.
	WizardEnterSettle = 40 * time.Millisecond

	// PrepFadeDelay fades the interlude message before the grid is revealed.
	PrepFadeDelay = 2200 * time.Millisecond

	// PrepAdvanceDelay auto-advances from the interlude to the visual step.
	PrepAdvanceDelay = 4400 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Reveal Animation
// -----------------------------------------------------------------------------

const (
	// RevealPerWeek scales the animation duration with the number of cells to fill.
	RevealPerWeek = 8 * time.Millisecond

	// RevealMinDuration and RevealMaxDuration bound the animation regardless of target size.
	RevealMinDuration = 1500 * time.Millisecond
	RevealMaxDuration = 4500 * time.Millisecond

	// FramePeriod is the cooperative refresh cadence (~60 Hz).
	FramePeriod = 16 * time.Millisecond
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWinWidth  = 900
	MainWinHeight = 620

	SettingsWindowWidth = 600

	// Week grid layout: one column per week of the year.
	GridColumns  = WeeksPerYear
	GridCellSize = 10
	GridCellGap  = 2

	StatsDecimals = 2

	// Preference Keys
	PrefLanguage      = "language"
	PrefExpectancy    = "expectancy_years"
	PrefReducedMotion = "reduced_motion"
	PrefFeedEnabled   = "feed_enabled"
	PrefServerPort    = "server_port"
	PrefLastRun       = "last_run_version"

	// KeyringUserDOB is the keyring account under which the birth date is stored.
	// Date of birth is personal data and stays out of plaintext preferences.
	KeyringUserDOB = "date_of_birth"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Deep Links & Environment Overrides
// -----------------------------------------------------------------------------

const (
	ParamDOB        = "dob"
	ParamExpectancy = "exp"

	EnvDOB           = "LIFEWEEKS_DOB"
	EnvExpectancy    = "LIFEWEEKS_EXP"
	EnvReducedMotion = "LIFEWEEKS_REDUCED_MOTION"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyMenuSettings = "menu_settings"

	// Wizard
	TKeyAskYear      = "ask_year"
	TKeyAskMonth     = "ask_month"
	TKeyAskDay       = "ask_day"
	TKeyAskExp       = "ask_expectancy"
	TKeyBtnNext      = "btn_next"
	TKeyBtnBack      = "btn_back"
	TKeyBtnRestart   = "btn_restart"
	TKeyPrepMessage  = "prep_message"
	TKeyBtnImportVCF = "btn_import_vcf"

	// Visual step
	TKeyLblAge       = "lbl_age_years"
	TKeyLblLeft      = "lbl_left_years"
	TKeyLblPercent   = "lbl_percent"
	TKeyLblRemaining = "lbl_remaining"
	TKeyLblWeeks     = "lbl_weeks"
	TKeyBtnShare     = "btn_share"
	TKeyNotifCopied  = "notif_link_copied"
	TKeyNoValue      = "lbl_no_value"

	// Settings
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblReduced    = "lbl_reduced_motion"
	TKeyHelpReduced   = "help_reduced_motion"
	TKeyLblFeed       = "lbl_feed_enabled"
	TKeyHelpFeed      = "help_feed"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyLblExpectancy = "lbl_expectancy"
	TKeyHelpExp       = "help_expectancy"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrYearRange = "err_year_range"
	TKeyErrMonth     = "err_month_range"
	TKeyErrDay       = "err_day_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	UIDSalt         = "go-lifeweeks-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Milestone Calendar (iCalendar)
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Lifeweeks//Milestones//EN"
	ICalCalName = "Life Milestones"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "golifeweeks"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"

	DefaultICalRefresh = 24 * time.Hour

	// MilestoneWeekStep marks every N-th lived week as a milestone (1000, 2000, ...).
	MilestoneWeekStep = 1000
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birth dates (deep links, env, vCard BDAY).
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// Display formats for the visual step.
	FormatRemaining  = "%dd %02dh %02dm %02ds"
	FormatWeeksCount = "%d / %d"
	FormatPercent    = "%.2f%%"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrDateParse      = "unable to parse date"
	ErrNoBDAY         = "no BDAY field found in vCard file"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrEnvParse       = "failed to parse environment overrides"
	ErrKeyringLoad    = "failed to read birth date from keyring"
	ErrKeyringSave    = "failed to store birth date in keyring"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrNoProfile      = "no birth date configured"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Milestone feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackNoValue = "—"

	FallbackMilestoneBday = "Birthday: year %d of %d"
	FallbackMilestoneWeek = "Week %d of your life"
	FallbackMilestoneHalf = "Half-life point"
	FallbackMilestoneEnd  = "Expected horizon"

	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Milestone feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgProfileLoaded = "Profile loaded"
	MsgProfileSaved  = "Profile saved"
	MsgDeepLink      = "Deep-link parameters applied"
	MsgEnvOverride   = "Environment overrides applied"
	MsgWizardMove    = "Wizard step transition"
	MsgWizardIgnored = "Wizard transition ignored"
	MsgRevealStart   = "Reveal animation started"
	MsgRevealDone    = "Reveal animation finished"
	MsgRevealSkip    = "Reveal skipped (reduced motion)"
	MsgFeedRebuilt   = "Milestone feed rebuilt"
	MsgVCFImported   = "Birth date imported from vCard"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyTarget    = "target"
	LogKeyFrom      = "from"
	LogKeyReason    = "reason"
	LogKeyDuration  = "duration_ms"
	LogKeyCount     = "count"
	LogKeyDOB       = "date_of_birth"
	LogKeyExp       = "expectancy_years"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeySource    = "source"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompWizard    = "wizard"
	CompReveal    = "reveal"
	CompProfile   = "profile"
	CompMilestone = "milestone"
	CompServer    = "server"
	CompMain      = "main"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
