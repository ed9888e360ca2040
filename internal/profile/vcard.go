package profile

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ImportVCardBirthDate scans a vCard stream and returns the first usable BDAY
// value. Year-less truncated dates (--MM-DD) are skipped: lifespan arithmetic
// needs a full date. Malformed cards are skipped, not fatal, to maximize
// recovery from real-world exports.
func ImportVCardBirthDate(r io.Reader) (time.Time, error) {
	log := slog.With(config.LogKeyComponent, config.CompProfile)
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Debug(config.ErrVCardParse, config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, err := ParseDate(bday.Value)
		if err != nil {
			log.Debug(config.ErrDateParse, config.LogKeyValue, bday.Value)
			continue
		}

		log.Info(config.MsgVCFImported,
			config.LogKeyDOB, date.Format(config.DateFormatFullDash),
		)
		return date, nil
	}

	return time.Time{}, errors.New(config.ErrNoBDAY)
}
