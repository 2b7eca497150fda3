package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of the rendering pipeline.
var ProgressLogger = log.New(os.Stdout, "inkwell.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like unsupported
// selectors, malformed declaration values or missing font metrics.
var WarningLogger = log.New(os.Stdout, "inkwell.warning: ", log.Lmsgprefix)
