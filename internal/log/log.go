// Package log is a thin wrapper around glog, giving the bind driver and the
// map-zip-with path selector a place to trace decisions without every
// caller importing glog directly.
package log

import "github.com/golang/glog"

// Infof logs at the default verbosity.
func Infof(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// Warningf logs a recoverable anomaly.
func Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// Errorf logs a bind or evaluation failure before it is returned to the
// caller as a TypeCheckResult or error.
func Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// V reports whether verbose logging at the given level is enabled, mirroring
// glog.V so callers can guard expensive trace formatting.
func V(level glog.Level) glog.Verbose {
	return glog.V(level)
}
