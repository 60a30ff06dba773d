package config

import (
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/logging"
)

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}
