package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushover-notification-service/internal/client"
	"github.com/koungkub/pushover-notification-service/pushover"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

const usage = "usage: pushover [-v] <send|emergency|group|sounds> [options] [message]"

var errUsage = errors.New(usage)

// Command runs one subcommand against the Pushover API.
type Command struct {
	client *pushover.Client
	out    io.Writer
}

type cliConfig struct {
	client.PushoverConfig

	Timeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("pushover", flag.ContinueOnError)
	verbose := global.Bool("v", false, "log requests to stderr")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		return errUsage
	}

	subcommand, rest := global.Arg(0), global.Args()[1:]
	if !slices.Contains([]string{"send", "emergency", "group", "sounds"}, subcommand) {
		return fmt.Errorf("unknown command: %s\n%s", subcommand, usage)
	}

	var cfg cliConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()
	}

	pc, err := pushover.New(
		cfg.UserKey,
		cfg.APIToken,
		pushover.WithBaseURL(cfg.BaseURL),
		pushover.WithTimeout(cfg.Timeout),
		pushover.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	cmd := &Command{client: pc, out: out}
	switch subcommand {
	case "send":
		return cmd.Send(ctx, rest)
	case "emergency":
		return cmd.Emergency(ctx, rest)
	case "group":
		return cmd.Group(ctx, rest)
	default:
		return cmd.Sounds(ctx, rest)
	}
}

// contentFlags are accepted by every send command.
type contentFlags struct {
	title     string
	url       string
	urlTitle  string
	sound     string
	device    string
	html      bool
	monospace bool
	timestamp int64
}

func (f *contentFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "message title")
	fs.StringVar(&f.url, "url", "", "supplementary URL")
	fs.StringVar(&f.urlTitle, "url-title", "", "label for the supplementary URL")
	fs.StringVar(&f.sound, "sound", "", "notification sound, see the sounds command")
	fs.StringVar(&f.device, "device", "", "deliver to this device only")
	fs.BoolVar(&f.html, "html", false, "enable HTML formatting")
	fs.BoolVar(&f.monospace, "monospace", false, "render in a monospace font")
	fs.Int64Var(&f.timestamp, "timestamp", 0, "unix time shown for the message")
}

// options returns only the options whose flags were given.
func (f *contentFlags) options(set map[string]bool) []pushover.Option {
	var opts []pushover.Option
	if set["title"] {
		opts = append(opts, pushover.WithTitle(f.title))
	}
	if set["url"] {
		opts = append(opts, pushover.WithURL(f.url))
	}
	if set["url-title"] {
		opts = append(opts, pushover.WithURLTitle(f.urlTitle))
	}
	if set["sound"] {
		opts = append(opts, pushover.WithSound(f.sound))
	}
	if set["device"] {
		opts = append(opts, pushover.WithDevice(f.device))
	}
	if set["html"] && f.html {
		opts = append(opts, pushover.WithHTML())
	}
	if set["monospace"] && f.monospace {
		opts = append(opts, pushover.WithMonospace())
	}
	if set["timestamp"] {
		opts = append(opts, pushover.WithTimestamp(time.Unix(f.timestamp, 0)))
	}
	return opts
}

type messageFlags struct {
	contentFlags

	priority   int
	ttl        time.Duration
	attachment string
}

func (f *messageFlags) register(fs *flag.FlagSet) {
	f.contentFlags.register(fs)
	fs.IntVar(&f.priority, "priority", pushover.PriorityNormal, "priority from -2 to 2")
	fs.DurationVar(&f.ttl, "ttl", 0, "delete the message from devices after this long")
	fs.StringVar(&f.attachment, "attachment", "", "path of an image to attach")
}

func (f *messageFlags) options(set map[string]bool) []pushover.MessageOption {
	var opts []pushover.MessageOption
	for _, opt := range f.contentFlags.options(set) {
		opts = append(opts, opt)
	}
	if set["priority"] {
		opts = append(opts, pushover.WithPriority(f.priority))
	}
	if set["ttl"] {
		opts = append(opts, pushover.WithTTL(f.ttl))
	}
	if set["attachment"] {
		opts = append(opts, pushover.WithAttachment(f.attachment))
	}
	return opts
}

// parse parses args and returns the message built from the remaining
// arguments together with the names of the flags that were given.
func parse(fs *flag.FlagSet, args []string) (string, map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return strings.Join(fs.Args(), " "), set, nil
}

// Send sends a message to the configured user.
func (c *Command) Send(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	var flags messageFlags
	flags.register(fs)

	message, set, err := parse(fs, args)
	if err != nil {
		return err
	}

	resp, err := c.client.SendMessage(ctx, message, flags.options(set)...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "sent, request %s\n", resp.Request())
	return nil
}

// Emergency sends a priority 2 message that repeats until acknowledged.
func (c *Command) Emergency(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("emergency", flag.ContinueOnError)
	var flags contentFlags
	flags.register(fs)
	retry := fs.Int("retry", pushover.DefaultRetry, "seconds between repeats, at least 30")
	expire := fs.Int("expire", pushover.DefaultExpire, "seconds to keep repeating, at most 10800")

	message, set, err := parse(fs, args)
	if err != nil {
		return err
	}

	var opts []pushover.EmergencyOption
	for _, opt := range flags.options(set) {
		opts = append(opts, opt)
	}
	if set["retry"] {
		opts = append(opts, pushover.WithRetry(*retry))
	}
	if set["expire"] {
		opts = append(opts, pushover.WithExpire(*expire))
	}

	resp, err := c.client.SendEmergencyMessage(ctx, message, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "sent, receipt %s\n", resp.Receipt())
	return nil
}

// Group sends a message to a delivery group.
func (c *Command) Group(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	var flags messageFlags
	flags.register(fs)
	group := fs.String("group", "", "delivery group key (required)")

	message, set, err := parse(fs, args)
	if err != nil {
		return err
	}
	if !set["group"] {
		return errors.New("group: --group is required")
	}

	resp, err := c.client.SendGroupMessage(ctx, message, *group, flags.options(set)...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "sent, request %s\n", resp.Request())
	return nil
}

// Sounds prints the sounds available to the application.
func (c *Command) Sounds(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sounds", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := c.client.ListSounds(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		return c.outputJSON(resp.Sounds())
	}
	return c.outputTable(resp.Sounds())
}

func (c *Command) outputTable(sounds pushover.SoundCatalog) error {
	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Name", "Description"})
	for _, name := range slices.Sorted(maps.Keys(sounds)) {
		table.Append([]string{name, sounds[name]})
	}

	table.Render()
	return nil
}

func (c *Command) outputJSON(sounds pushover.SoundCatalog) error {
	data, err := json.MarshalIndent(sounds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}
