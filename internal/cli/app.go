// Package cli provides the interactive console front end: a small REPL
// dispatching to the lifecycle, repository, backup and activation services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/callkeeper/internal/app"
	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/models"
	"github.com/dmitrijs2005/callkeeper/internal/storage"
)

const dateLayout = "2006-01-02"

type CLI struct {
	app    *app.App
	reader *bufio.Reader
	out    io.Writer
}

func NewCLI(a *app.App) *CLI {
	return &CLI{app: a, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Run connects to the backend and drives the REPL until exit.
func (c *CLI) Run(ctx context.Context) error {
	res, err := c.app.Connect(ctx)
	if err != nil {
		return err
	}

	if res.NeedsRegistration {
		fmt.Fprintln(c.out, "No users found. Register the first account with 'register'.")
	}
	if res.NeedsActivation {
		fmt.Fprintln(c.out, "This installation is not activated. Run 'activate' to unlock it.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, c, c.status, scanner)

	// The final snapshot must run even when a signal ended the REPL.
	return c.app.Logout(context.WithoutCancel(ctx))
}

func (c *CLI) status() string {
	if s := c.app.Session(); s != nil {
		return "(" + s.Username + ")"
	}
	return ""
}

func (c *CLI) isLoggedIn() bool { return c.app.Session() != nil }

// repo returns the repository manager, or ErrConfiguration after a logout
// has torn the connection down. The REPL keeps running after logout, so
// every repository-backed command goes through this guard.
func (c *CLI) repo() (storage.Manager, error) {
	m := c.app.Repo()
	if m == nil {
		return nil, fmt.Errorf("%w: not connected, restart to reconnect", common.ErrConfiguration)
	}
	return m, nil
}

// ---- auth commands ----

func (c *CLI) Register(ctx context.Context) error {
	username, err := GetSimpleText(c.reader, "Username", c.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(c.out, "Password")
	if err != nil {
		return err
	}

	if _, err := c.app.Auth().Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrConflict) {
			fmt.Fprintln(c.out, "Username already taken.")
			return nil
		}
		return err
	}
	fmt.Fprintln(c.out, "Account created. You can now log in.")
	return nil
}

func (c *CLI) Login(ctx context.Context) error {
	username, err := GetSimpleText(c.reader, "Username", c.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(c.out, "Password")
	if err != nil {
		return err
	}

	session, err := c.app.Auth().Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(c.out, "Invalid username or password.")
			return nil
		}
		return err
	}
	c.app.SetSession(session)
	fmt.Fprintf(c.out, "Logged in as %s.\n", session.Username)
	return nil
}

func (c *CLI) Logout(ctx context.Context) error {
	if err := c.app.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out. A backup of the session was taken.")
	return nil
}

// ---- master directory commands ----

func (c *CLI) AddMaster(ctx context.Context) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}

	rec := &models.MasterRecord{}

	if rec.MobileNo, err = GetSimpleText(c.reader, "Mobile number (required)", c.out); err != nil {
		return err
	}
	if rec.Name, err = GetSimpleText(c.reader, "Contact name", c.out); err != nil {
		return err
	}
	if rec.Project, err = GetSimpleText(c.reader, "Project", c.out); err != nil {
		return err
	}
	if rec.Town, err = GetSimpleText(c.reader, "Town", c.out); err != nil {
		return err
	}
	if s := c.app.Session(); s != nil {
		rec.CreatedBy = s.Username
	}

	id, err := repo.Master().Create(ctx, rec)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			fmt.Fprintln(c.out, "A record with this mobile number already exists.")
			return nil
		}
		return err
	}
	fmt.Fprintf(c.out, "Created master record %s.\n", id)
	return nil
}

func (c *CLI) ListMaster(ctx context.Context) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}

	recs, err := repo.Master().List(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(c.out, "No master records.")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintf(c.out, "%s  %-12s %-20s %s\n", r.ID, r.MobileNo, r.Name, r.Town)
	}
	return nil
}

func (c *CLI) DeleteMaster(ctx context.Context) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}

	id, err := GetSimpleText(c.reader, "Record id", c.out)
	if err != nil {
		return err
	}
	if err := repo.Master().Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(c.out, "No such record.")
			return nil
		}
		return err
	}
	fmt.Fprintln(c.out, "Deleted.")
	return nil
}

// ---- call log commands ----

func (c *CLI) LogCall(ctx context.Context) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}

	entry := &models.CallLogEntry{Date: time.Now().UTC()}

	if entry.MobileNo, err = GetSimpleText(c.reader, "Mobile number", c.out); err != nil {
		return err
	}

	// prefill from the directory when the number is known
	if rec, err := repo.Master().GetByMobile(ctx, entry.MobileNo); err == nil {
		entry.Name = rec.Name
		entry.Project = rec.Project
		entry.Town = rec.Town
		entry.State = rec.State
	}

	if entry.Module, err = GetSimpleText(c.reader, "Module", c.out); err != nil {
		return err
	}
	if entry.Issue, err = GetSimpleText(c.reader, "Issue", c.out); err != nil {
		return err
	}
	if entry.Solution, err = GetSimpleText(c.reader, "Solution", c.out); err != nil {
		return err
	}
	if s := c.app.Session(); s != nil {
		entry.CreatedBy = s.Username
	}

	id, err := repo.CallLogs().Create(ctx, entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Logged call %s.\n", id)
	return nil
}

func (c *CLI) Report(ctx context.Context) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}

	dr, err := c.readDateRange()
	if err != nil {
		return err
	}

	entries, err := repo.CallLogs().List(ctx, dr)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No calls in this range.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s  %-12s %-15s %s\n",
			e.Date.Format(dateLayout), e.MobileNo, e.Module, e.Issue)
	}
	fmt.Fprintf(c.out, "%d call(s).\n", len(entries))
	return nil
}

// readDateRange prompts for optional start and end dates; empty input on
// both means all time.
func (c *CLI) readDateRange() (models.DateRange, error) {
	var dr models.DateRange

	start, err := GetSimpleText(c.reader, "Start date (YYYY-MM-DD, empty for all time)", c.out)
	if err != nil {
		return dr, err
	}
	if start != "" {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return dr, fmt.Errorf("%w: invalid start date", common.ErrValidation)
		}
		dr.Start = &t
	}

	end, err := GetSimpleText(c.reader, "End date (YYYY-MM-DD, empty for open end)", c.out)
	if err != nil {
		return dr, err
	}
	if end != "" {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return dr, fmt.Errorf("%w: invalid end date", common.ErrValidation)
		}
		dr.End = &t
	}
	return dr, nil
}

// ---- backup and activation commands ----

func (c *CLI) Backup(ctx context.Context) error {
	archive, err := c.app.Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Backup written to %s.\n", archive)
	return nil
}

func (c *CLI) Restore(ctx context.Context) error {
	archive, err := GetSimpleText(c.reader, "Archive path", c.out)
	if err != nil {
		return err
	}
	if err := c.app.Restore(ctx, archive); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Restore finished.")
	return nil
}

func (c *CLI) Activate(ctx context.Context) error {
	fmt.Fprintf(c.out, "Serial number of this machine: %s\n", c.app.Activation().HardwareID())

	name, err := GetSimpleText(c.reader, "Full name", c.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(c.reader, "Email address", c.out)
	if err != nil {
		return err
	}
	mobile, err := GetSimpleText(c.reader, "Mobile number", c.out)
	if err != nil {
		return err
	}
	key, err := GetSimpleText(c.reader, "Activation key (XXXX-XXXX-XXXX-XXXX)", c.out)
	if err != nil {
		return err
	}

	ok, err := c.app.Activation().Activate(ctx, name, email, mobile, key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Invalid key for this machine.")
		return nil
	}
	fmt.Fprintln(c.out, "Application activated and locked to this machine.")
	return nil
}
