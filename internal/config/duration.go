package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Duration тривалість, яку можна декодувати з HCL рядка
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration must not be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the time.Duration value
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// String returns the string representation
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DecodeCTY декодує cty значення у тривалість
func (d *Duration) DecodeCTY(val cty.Value) error {
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return fmt.Errorf("duration must be a string")
	}

	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// ParseDuration парсить тривалість у форматі конфігурації ("30s", "5m")
func ParseDuration(value string) (time.Duration, error) {
	var d Duration
	if err := d.DecodeCTY(cty.StringVal(value)); err != nil {
		return 0, err
	}
	return d.Duration(), nil
}

func durationOrDefault(name, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := ParseDuration(value)
	if err != nil {
		logrus.WithError(err).WithField("setting", name).Warnf("Invalid duration, using default %s", fallback)
		return fallback
	}
	return parsed
}
