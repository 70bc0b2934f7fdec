// Package env provides some rudimentary environment variable parsing.
package env

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const BARBERSHOP_LOG_LEVEL string = "BARBERSHOP_LOG_LEVEL"
const BARBERSHOP_LOG_LEVEL_DEFAULT string = "INFO"
const BARBERSHOP_LOG_OUTPUT_CONSOLE string = "BARBERSHOP_LOG_OUTPUT_CONSOLE"
const BARBERSHOP_LOG_OUTPUT_CONSOLE_DEFAULT bool = true

const BARBERSHOP_METRICS string = "BARBERSHOP_METRICS"
const BARBERSHOP_METRICS_DEFAULT bool = false
const BARBERSHOP_METRICS_PORT string = "BARBERSHOP_METRICS_PORT"
const BARBERSHOP_METRICS_PORT_DEFAULT uint16 = 20000

const BARBERSHOP_MAX_ARRIVAL_DELAY string = "BARBERSHOP_MAX_ARRIVAL_DELAY"
const BARBERSHOP_MAX_ARRIVAL_DELAY_DEFAULT time.Duration = 5 * time.Second
const BARBERSHOP_MAX_SERVICE_TIME string = "BARBERSHOP_MAX_SERVICE_TIME"
const BARBERSHOP_MAX_SERVICE_TIME_DEFAULT time.Duration = 5 * time.Second

// 0 seeds from the clock.
const BARBERSHOP_SEED string = "BARBERSHOP_SEED"
const BARBERSHOP_SEED_DEFAULT int = 0

var ErrMalformed = errors.New("malformed environment variable")

func GetOptionalBool(name string, def bool) (bool, error) {
	if v, e := os.LookupEnv(name); e {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def, errors.Wrapf(ErrMalformed, "%s=%q", name, v)
		}
		return b, nil
	}
	return def, nil
}

func GetOptionalString(name string, def string) (string, error) {
	if v, e := os.LookupEnv(name); e {
		return v, nil
	}
	return def, nil
}

func GetOptionalInteger(name string, def int) (int, error) {
	if v, e := os.LookupEnv(name); e {
		// by setting a base of 0, the base is implied by the string's format
		i64, err := strconv.ParseInt(v, 0, 0)
		if err != nil {
			return def, errors.Wrapf(ErrMalformed, "%s=%q", name, v)
		}
		return int(i64), nil
	}
	return def, nil
}

func GetOptionalUint16(name string, def uint16) (uint16, error) {
	if v, e := os.LookupEnv(name); e {
		// by setting a base of 0, the base is implied by the string's format
		u64, err := strconv.ParseUint(v, 0, 16)
		if err != nil {
			return def, errors.Wrapf(ErrMalformed, "%s=%q", name, v)
		}
		return uint16(u64), nil
	}
	return def, nil
}

// Durations use time.ParseDuration syntax, e.g. "250ms" or "2s".
func GetOptionalDuration(name string, def time.Duration) (time.Duration, error) {
	if v, e := os.LookupEnv(name); e {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return def, errors.Wrapf(ErrMalformed, "%s=%q", name, v)
		}
		return d, nil
	}
	return def, nil
}
