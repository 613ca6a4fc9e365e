package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/openai-cake/backend/config"
)

// New builds the process logger. Production gets JSON output at info level,
// everything else gets the colored development console encoder.
func New(env config.Environment) (*zap.Logger, error) {
	var cfg zap.Config
	if env == config.Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("env", string(env))), nil
}

// Secret masks all but the first few characters of a credential
func Secret(key, value string) zap.Field {
	masked := "?"
	switch {
	case len(value) > 5:
		masked = value[:5] + "***"
	case value != "":
		masked = "***"
	}
	return zap.String(key, masked)
}
