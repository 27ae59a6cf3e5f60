package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errUsage makes the loop print the command's usage line.
var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(c *Console, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"adduser":    {usage: "adduser <email> <name>", run: (*Console).addUser},
	"getuser":    {usage: "getuser <email>", run: (*Console).getUser},
	"login":      {usage: "login <user_id> [jwt]", run: (*Console).login},
	"getsession": {usage: "getsession <user_id>", run: (*Console).getSession},
	"logout":     {usage: "logout <user_id>", run: (*Console).logout},
	"deluser":    {usage: "deluser <email>", run: (*Console).deleteUser},
	"prefs":      {usage: "prefs <email> [key=value...]", run: (*Console).updatePreferences},
}

const helpText = "Available commands: adduser, getuser, login, getsession, logout, deluser, prefs, help, exit"

// Run reads commands until EOF, "exit"/"quit" or ctx is cancelled.
//
// Each command gets a fresh context bounded by the configured timeout.
// Command failures are printed and the loop carries on; only a read error
// other than EOF is returned.
func (c *Console) Run(ctx context.Context) error {
	c.println("accountctl (type 'help' for commands)")

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.printf("acct> ")
		line, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.println()
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			c.println(helpText)
			continue
		case "exit", "quit":
			c.println("Bye!")
			return nil
		}

		cmd, ok := commands[name]
		if !ok {
			c.println("Unknown command:", name)
			continue
		}

		if err := c.exec(ctx, cmd, args); err != nil {
			c.logger.Debug(ctx, "command failed", "command", name, "error", err)
			if errors.Is(err, errUsage) {
				c.println("Usage:", cmd.usage)
			} else {
				c.println("Error:", err.Error())
			}
		}
	}
}

func (c *Console) exec(ctx context.Context, cmd command, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return cmd.run(c, ctx, args)
}
