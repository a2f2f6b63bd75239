package spider

import (
	"log/slog"

	"github.com/yeoblyv/spider/pkg/clientip"
	"github.com/yeoblyv/spider/pkg/config"
	"github.com/yeoblyv/spider/pkg/i18n"
	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/requestid"
)

// NewLogger builds the application logger from cfg. The environment picks
// the defaults; Log.Level and Log.Format override them when set. Records
// written with a request context carry request_id, client_ip and lang.
func NewLogger(cfg config.Config, opts ...logger.Option) *slog.Logger {
	base := []logger.Option{
		logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
		logger.WithLevelName(cfg.Log.Level),
		logger.WithFormat(logger.Format(cfg.Log.Format)),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	}
	return logger.New(append(base, opts...)...)
}
