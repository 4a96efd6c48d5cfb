// Package actions implements each jss-helper command against an injected API
// client. Reports go to Out; progress and warnings go through the logger.
package actions

import (
	"context"
	"fmt"
	"io"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/prompt"
	"github.com/jssimporter/jss-helper/internal/report"
	"github.com/jssimporter/jss-helper/internal/search"
)

// Client is the server access the actions need. *jss.Client implements it.
type Client interface {
	search.Source
	GetAll(ctx context.Context, kind jss.Kind) ([]*jss.Object, error)
	Save(ctx context.Context, obj *jss.Object) error
	URL() string
}

// Browser opens a URL for the user.
type Browser interface {
	Open(ctx context.Context, url string) error
}

// Runner carries the collaborators shared by every action.
type Runner struct {
	Client  Client
	Out     io.Writer
	Chooser prompt.Chooser
	Differ  report.Differ
	Browser Browser
}

// NotFoundError reports that the subject of a command does not exist. Its
// message is meant for the user as-is.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFound(format string, a ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, a...)}
}

// UsageError reports a command invoked with an unusable combination of arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func (r *Runner) print(a ...any) {
	fmt.Fprintln(r.Out, a...)
}

func (r *Runner) printf(format string, a ...any) {
	fmt.Fprintf(r.Out, format, a...)
}
