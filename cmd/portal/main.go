package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/client/clientset"
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/infrastructure/config"
	"github.com/glowbook/salon-booking/internal/portal"
	"github.com/glowbook/salon-booking/pkg/logger"
)

const usage = `usage: portal [flags] <command> [args]

commands:
  login <email> <password>
  logout
  whoami
  upcoming | past
  book <serviceId> <staffId> <start RFC3339> [notes...]
  cancel <appointmentId>
  reschedule <appointmentId> <start RFC3339>
  show <appointmentId>
  services [staffId]
  staff [serviceId]
  shell                 read commands from stdin, one per line
`

func main() {
	storagePath := flag.String("storage", "", "session file (overrides PORTAL_STORAGE_PATH)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	bootLog := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true, Output: os.Stderr, Service: "portal"})
	cfg := config.LoadPortal(bootLog)
	if *storagePath != "" {
		cfg.StoragePath = *storagePath
	}

	var storage portal.Storage = portal.NewMemoryStorage()
	if cfg.StoragePath != "" {
		fs, err := portal.OpenFileStorage(cfg.StoragePath)
		if err != nil {
			bootLog.Fatal().Err(err).Msg("Failed to open session storage")
		}
		storage = fs
	}

	apis := clientset.New(cfg, portal.TokenSource(storage), logger.Component("client"))
	app := &cli{
		p:   portal.New(apis, storage, portal.NewLogNotifier(logger.Component("notify")), portal.OptionsFrom(cfg), logger.Component("portal")),
		out: os.Stdout,
		log: bootLog,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flag.Arg(0) == "shell" {
		app.shell(ctx, os.Stdin)
		return
	}
	if err := app.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	p   *portal.Portal
	out io.Writer
	log zerolog.Logger
}

func (c *cli) shell(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(c.out, "> ")
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		switch {
		case len(args) == 0:
		case args[0] == "exit" || args[0] == "quit":
			return
		default:
			if err := c.run(ctx, args); err != nil {
				fmt.Fprintln(c.out, "error:", err)
			}
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(c.out, "> ")
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "login":
		if len(args) != 2 {
			return errors.New("login <email> <password>")
		}
		redirect, err := c.p.Auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, "signed in, landing page", redirect)
		return nil

	case "logout":
		c.p.Auth.Logout(ctx)
		fmt.Fprintln(c.out, "signed out")
		return nil

	case "whoami":
		u, err := c.p.Auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if u == nil {
			fmt.Fprintln(c.out, "not signed in")
			return nil
		}
		fmt.Fprintf(c.out, "%s <%s> role=%s business=%s\n", u.Name(), u.Email, u.Role, u.BusinessID)
		return nil

	case "upcoming", "past":
		u, err := c.requireUser(ctx, "/dashboard")
		if err != nil {
			return err
		}
		if _, err := c.p.Appointments.Load(ctx, u.ID); err != nil {
			return err
		}
		list := c.p.Appointments.Upcoming(u.ID)
		if cmd == "past" {
			list = c.p.Appointments.Past(u.ID)
		}
		c.printAppointments(list)
		return nil

	case "book":
		if len(args) < 3 {
			return errors.New("book <serviceId> <staffId> <start RFC3339> [notes...]")
		}
		u, err := c.requireUser(ctx, "/book")
		if err != nil {
			return err
		}
		start, err := time.Parse(time.RFC3339, args[2])
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		if _, err := c.p.Appointments.Load(ctx, u.ID); err != nil {
			return err
		}
		apt, err := c.p.Appointments.Create(ctx, u.ID, client.NewAppointment{
			ServiceID: args[0],
			StaffID:   args[1],
			StartTime: start,
			Notes:     strings.Join(args[3:], " "),
		})
		if err != nil {
			return err
		}
		c.printAppointments([]domain.Appointment{*apt})
		return nil

	case "cancel", "reschedule":
		if len(args) < 1 || (cmd == "reschedule" && len(args) != 2) {
			return errors.New("cancel <id> | reschedule <id> <start RFC3339>")
		}
		u, err := c.requireUser(ctx, "/appointments")
		if err != nil {
			return err
		}
		if _, err := c.p.Appointments.Load(ctx, u.ID); err != nil {
			return err
		}
		var apt *domain.Appointment
		if cmd == "cancel" {
			apt, err = c.p.Appointments.Cancel(ctx, u.ID, args[0])
		} else {
			var start time.Time
			if start, err = time.Parse(time.RFC3339, args[1]); err != nil {
				return fmt.Errorf("start: %w", err)
			}
			apt, err = c.p.Appointments.Reschedule(ctx, u.ID, args[0], start)
		}
		if err != nil {
			return err
		}
		c.printAppointments([]domain.Appointment{*apt})
		return nil

	case "show":
		if len(args) != 1 {
			return errors.New("show <appointmentId>")
		}
		if _, err := c.requireUser(ctx, "/appointments"); err != nil {
			return err
		}
		d, err := c.p.Detail.Get(ctx, args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "id\t%s\nstatus\t%s\nwhen\t%s - %s\n", d.ID, d.Status, d.StartTime.Format(time.RFC1123), d.EndTime.Format("15:04"))
		fmt.Fprintf(w, "service\t%s (%d min, %s)\n\t%s\n", d.ServiceName, d.DurationMinutes, d.Price.StringFixed(2), d.ServiceDescription)
		fmt.Fprintf(w, "with\t%s, %s\n\t%s %s\n", d.StaffName, strings.Join(d.StaffSpecialties, ", "), d.StaffEmail, d.StaffPhone)
		if d.Notes != "" {
			fmt.Fprintf(w, "notes\t%s\n", d.Notes)
		}
		return w.Flush()

	case "services":
		var (
			list []domain.Service
			err  error
		)
		if len(args) == 1 {
			list, err = c.p.Services.ByStaff(ctx, args[0])
		} else {
			list, err = c.p.Services.List(ctx)
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMIN\tPRICE")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.DurationMinutes, s.Price.StringFixed(2))
		}
		return w.Flush()

	case "staff":
		var (
			list []domain.StaffMember
			err  error
		)
		if len(args) == 1 {
			list, err = c.p.Staff.ByService(ctx, args[0])
		} else {
			list, err = c.p.Staff.List(ctx)
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSPECIALTIES\tSERVICES\tACTIVE")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", s.ID, s.Name, strings.Join(s.Specialties, ", "), strings.Join(s.ServiceIDs, ","), s.Active)
		}
		return w.Flush()
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// requireUser runs the route guard for path and returns the signed-in user.
func (c *cli) requireUser(ctx context.Context, path string) (*domain.User, error) {
	d, err := c.p.Guard.Check(ctx, path)
	if err != nil {
		return nil, err
	}
	if !d.Allowed() {
		return nil, fmt.Errorf("not allowed here, go to %s", d.Redirect)
	}
	return c.p.Auth.CurrentUser(ctx)
}

func (c *cli) printAppointments(list []domain.Appointment) {
	if len(list) == 0 {
		fmt.Fprintln(c.out, "no appointments")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tSERVICE\tSTAFF\tSTATUS")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.StartTime.Format("2006-01-02 15:04"), a.EndTime.Format("15:04"), a.Service.Name, a.Staff.Name, a.Status)
	}
	_ = w.Flush()
}
