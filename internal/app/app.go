package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ssp-tools/rnbokit/internal/project"
)

// Context carries app-wide dependencies and metadata.
type Context struct {
	Ctx    context.Context
	Config Config
	Layout project.Layout
	Log    *log.Logger
	Now    time.Time
}
