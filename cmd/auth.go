package main

import (
	"context"

	"github.com/desertthunder/tunescout/internal/auth"
	"github.com/urfave/cli/v3"
)

// AuthSignup creates an account and persists the session.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	user, err := r.session.SignUp(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	if err := r.persistSession(user.ID(), user.Email()); err != nil {
		return err
	}

	return r.writePlain("✓ Account created, signed in as %s\n", user.Email())
}

// AuthSignin verifies credentials and persists the session.
func (r *Runner) AuthSignin(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	user, err := r.session.SignIn(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	if err := r.persistSession(user.ID(), user.Email()); err != nil {
		return err
	}

	return r.writePlain("✓ Signed in as %s\n", user.Email())
}

// AuthSignout clears the persisted session.
func (r *Runner) AuthSignout(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	r.session.SignOut()
	if err := r.persistSession("", ""); err != nil {
		return err
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami reports the signed-in account, if any.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd); err != nil {
		return err
	}
	defer r.db.Close()

	state, user := r.session.Current()
	if state != auth.StateAuthenticated {
		return r.writePlain("Not signed in\n")
	}

	return r.writePlain("Signed in as %s\n", user.Email())
}
