package profile

import (
	"log/slog"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
)

// ParseShareQuery applies deep-link parameters (dob=YYYY-MM-DD, exp=<number>)
// on top of base. Malformed or missing values are ignored silently: they are
// logged at debug level and the base value stays in effect.
func ParseShareQuery(query string, base Parameters) Parameters {
	log := slog.With(config.LogKeyComponent, config.CompProfile)

	values, err := url.ParseQuery(query)
	if err != nil {
		log.Debug(config.ErrDateParse, config.LogKeyValue, query, config.LogKeyError, err)
		return base
	}

	out := base

	if raw := values.Get(config.ParamDOB); raw != "" {
		if d, err := ParseDate(raw); err == nil {
			out.BirthDate = d
		} else {
			log.Debug(config.ErrDateParse,
				config.LogKeyKey, config.ParamDOB,
				config.LogKeyValue, raw,
			)
		}
	}

	if raw := values.Get(config.ParamExpectancy); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			out.ExpectancyYears = stats.ClampExpectancy(f)
		} else {
			log.Debug(config.ErrDateParse,
				config.LogKeyKey, config.ParamExpectancy,
				config.LogKeyValue, raw,
			)
		}
	}

	if !out.Equal(base) {
		log.Info(config.MsgDeepLink,
			config.LogKeyDOB, out.BirthDate.Format(config.DateFormatFullDash),
			config.LogKeyExp, out.ExpectancyYears,
		)
	}
	return out
}

// ShareQuery serializes the parameters as the shareable query string.
// It is the only externally visible serialization of user data.
func (p Parameters) ShareQuery() string {
	values := url.Values{}
	if p.Valid() {
		values.Set(config.ParamDOB, p.BirthDate.Format(config.DateFormatFullDash))
	}
	values.Set(config.ParamExpectancy, strconv.FormatFloat(p.ExpectancyYears, 'f', -1, 64))
	return values.Encode()
}
