// Package console is the interactive admin shell of accountctl. Every
// command maps onto one UserService operation and runs under its own
// deadline.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/accountstore/internal/logging"
	"github.com/dmitrijs2005/accountstore/internal/models"
	"golang.org/x/term"
)

// accountService is the command surface the console drives.
// *services.UserService satisfies it; tests can provide a stub.
type accountService interface {
	AddUser(ctx context.Context, user *models.User) (bool, error)
	CreateUserSession(ctx context.Context, userID, jwt string) bool
	GetUser(ctx context.Context, email string) (*models.User, error)
	GetUserSession(ctx context.Context, userID string) (*models.Session, error)
	DeleteUserSessions(ctx context.Context, userID string) bool
	DeleteUser(ctx context.Context, email string) bool
	UpdateUserPreferences(ctx context.Context, email string, updates map[string]string) (bool, error)
}

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type Console struct {
	svc     accountService
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration

	// terminal file descriptor for no-echo password input, or -1
	ttyFd int
}

// New builds a Console reading commands from in and writing to out. When in
// is a terminal, passwords are read without echo; otherwise the next input
// line is taken as the password.
func New(svc accountService, l logging.Logger, in io.Reader, out io.Writer, timeout time.Duration) *Console {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Console{
		svc:     svc,
		logger:  l.With("module", "console"),
		reader:  bufio.NewReader(in),
		out:     out,
		timeout: timeout,
		ttyFd:   fd,
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
