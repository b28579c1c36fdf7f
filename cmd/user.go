package main

import (
	"context"
	"time"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/repositories"
	"github.com/urfave/cli/v3"
)

// UserAdd creates a new user account.
func (r *Runner) UserAdd(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	name := cmd.String("name")

	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	users := repositories.NewUserRepository(db)

	user := &models.User{Email: email, Name: name}
	if err := users.Create(user); err != nil {
		return err
	}

	r.logger.Info("user created", "id", user.ID, "email", user.Email)
	r.writePlain("✓ Created user %s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}

// UserList lists all active users.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	asJSON := cmd.Bool("json")

	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	users := repositories.NewUserRepository(db)

	list, err := users.List()
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(list, true)
	}

	r.writePlainHeader("Users")
	if len(list) == 0 {
		r.writePlain("No users found.\n")
		return nil
	}
	for _, user := range list {
		r.writePlain("%s  %s <%s>  joined %s\n",
			user.ID, user.Name, user.Email, user.CreatedAt.Format(time.DateOnly))
	}
	return nil
}

// userCommand handles user account operations.
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "User email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
				},
				Action: r.UserAdd,
			},
			{
				Name:  "list",
				Usage: "List users",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print users as JSON",
					},
				},
				Action: r.UserList,
			},
		},
	}
}
