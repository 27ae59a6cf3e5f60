package console

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrijs2005/accountstore/internal/cryptox"
	"github.com/dmitrijs2005/accountstore/internal/models"
)

var errNotStored = errors.New("store did not acknowledge the write")

func (c *Console) addUser(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	email, name := args[0], strings.Join(args[1:], " ")

	pw, err := c.getPassword()
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pw)

	hash, err := cryptox.HashPassword(pw)
	if err != nil {
		return err
	}

	if _, err := c.svc.AddUser(ctx, &models.User{Email: email, Name: name, Password: string(hash)}); err != nil {
		return err
	}

	c.println("Success!")
	return nil
}

func (c *Console) getUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	user, err := c.svc.GetUser(ctx, args[0])
	if err != nil {
		return err
	}
	if user == nil {
		c.println("No such user")
		return nil
	}

	c.printf("email: %s\nname: %s\n", user.Email, user.Name)
	if len(user.Preferences) > 0 {
		c.println("preferences:")
		keys := make([]string, 0, len(user.Preferences))
		for k := range user.Preferences {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			c.printf("  %s=%s\n", k, user.Preferences[k])
		}
	}
	return nil
}

// login stores a session for user_id. Without a jwt argument an opaque
// random token is issued.
func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	userID := args[0]

	var token string
	if len(args) == 2 {
		token = args[1]
	} else {
		t, err := cryptox.NewToken(32)
		if err != nil {
			return err
		}
		token = t
	}

	if !c.svc.CreateUserSession(ctx, userID, token) {
		return errNotStored
	}

	c.println("Session stored")
	if len(args) == 1 {
		c.println("token:", token)
	}
	return nil
}

func (c *Console) getSession(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	session, err := c.svc.GetUserSession(ctx, args[0])
	if err != nil {
		return err
	}
	if session == nil {
		c.println("No session")
		return nil
	}

	c.printf("user_id: %s\njwt: %s\n", session.UserID, session.JWT)
	return nil
}

func (c *Console) logout(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if !c.svc.DeleteUserSessions(ctx, args[0]) {
		return errNotStored
	}
	c.println("Logged out")
	return nil
}

func (c *Console) deleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if !c.svc.DeleteUser(ctx, args[0]) {
		return errors.New("user was not deleted, see log")
	}
	c.println("Deleted")
	return nil
}

func (c *Console) updatePreferences(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}

	updates, err := parsePairs(args[1:])
	if err != nil {
		return err
	}

	ok, err := c.svc.UpdateUserPreferences(ctx, args[0], updates)
	if err != nil {
		return err
	}
	if !ok {
		return errNotStored
	}

	c.println("Preferences updated")
	return nil
}
