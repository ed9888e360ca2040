package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON files.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyMenuSettings,
		config.TKeyAskYear,
		config.TKeyAskMonth,
		config.TKeyAskDay,
		config.TKeyAskExp,
		config.TKeyBtnNext,
		config.TKeyBtnBack,
		config.TKeyBtnRestart,
		config.TKeyPrepMessage,
		config.TKeyBtnImportVCF,
		config.TKeyLblAge,
		config.TKeyLblLeft,
		config.TKeyLblPercent,
		config.TKeyLblRemaining,
		config.TKeyLblWeeks,
		config.TKeyBtnShare,
		config.TKeyNotifCopied,
		config.TKeyNoValue,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblGeneral,
		config.TKeyLblReduced,
		config.TKeyHelpReduced,
		config.TKeyLblFeed,
		config.TKeyHelpFeed,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblFooter,
		config.TKeyLblExpectancy,
		config.TKeyHelpExp,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrYearRange,
		config.TKeyErrMonth,
		config.TKeyErrDay,
	}

	definedKeys := make(map[string]bool)
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, locale := range []string{"active.en.json", "active.fr.json"} {
		path := filepath.Join("locales", locale)
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Must load %s", locale)

		var jsonMap map[string]interface{}
		err = json.Unmarshal(content, &jsonMap)
		require.NoError(t, err, "JSON must be valid")

		// Verify consistency
		for key := range definedKeys {
			_, exists := jsonMap[key]
			assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, locale)
		}

		// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
		for jsonKey := range jsonMap {
			if strings.HasPrefix(jsonKey, "_") {
				continue
			}
			if !definedKeys[jsonKey] {
				t.Logf("Warning: Key '%s' exists in %s but is not checked in the test suite (might be unused)", jsonKey, locale)
			}
		}
	}
}
