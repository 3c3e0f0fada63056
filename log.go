package convert

import "go.uber.org/zap"

// log is the package-level logger for warn-and-continue format
// anomalies: unknown control words, text written outside any group,
// unbalanced end-groups, and missing font/color/style references.
// Override with SetLogger; a zap.NewNop() sink is used if the default
// production logger can't be constructed.
var log = newDefaultLogger().Sugar()

func newDefaultLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger overrides the logger used for RTF format warnings and debug
// tracing. Passing nil restores a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		log = zap.NewNop().Sugar()
		return
	}
	log = l.Sugar()
}
