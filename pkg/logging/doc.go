// Package logging builds the zap logger shared by every raven-settings
// component.
//
// Verbosity comes from the explicit level (config or --log-level flag) and
// falls back to the RAVEN_SETTINGS_LOG_LEVEL environment variable. With
// neither set the logger is a no-op, so CLI output stays clean:
//
//	logger, err := logging.New(cfg.LogLevel)
//	if err != nil {
//	    return err
//	}
//	defer logging.Sync(logger)
//
// Components accept a *zap.Logger in their constructors and treat nil as
// zap.NewNop().
package logging
