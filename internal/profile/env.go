package profile

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
)

// envOverrides mirrors the LIFEWEEKS_* environment variables (see the Env*
// constants in internal/config; struct tags must be literals).
type envOverrides struct {
	DOB           string  `env:"LIFEWEEKS_DOB"`
	Expectancy    float64 `env:"LIFEWEEKS_EXP"`
	ReducedMotion bool    `env:"LIFEWEEKS_REDUCED_MOTION"`
}

// Overrides carries environment-supplied settings. Has* flags distinguish
// "not set" from zero values.
type Overrides struct {
	Parameters    Parameters
	ReducedMotion bool
	HasDOB        bool
	HasExpectancy bool
}

// LoadEnv reads the environment overrides. A malformed variable degrades to
// "not set" rather than failing: the environment is just another untrusted
// input channel, like a deep link.
func LoadEnv() Overrides {
	log := slog.With(config.LogKeyComponent, config.CompProfile)

	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		log.Debug(config.ErrEnvParse, config.LogKeyError, err)
		return Overrides{}
	}

	var out Overrides
	out.ReducedMotion = raw.ReducedMotion

	if raw.DOB != "" {
		if d, err := ParseDate(raw.DOB); err == nil {
			out.Parameters.BirthDate = d
			out.HasDOB = true
		} else {
			log.Debug(config.ErrDateParse,
				config.LogKeyKey, config.EnvDOB,
				config.LogKeyValue, raw.DOB,
			)
		}
	}

	if raw.Expectancy != 0 {
		out.Parameters.ExpectancyYears = stats.ClampExpectancy(raw.Expectancy)
		out.HasExpectancy = true
	}

	if out.HasDOB || out.HasExpectancy || out.ReducedMotion {
		log.Info(config.MsgEnvOverride,
			config.LogKeySource, fmt.Sprintf("%s,%s,%s",
				config.EnvDOB, config.EnvExpectancy, config.EnvReducedMotion),
		)
	}
	return out
}
