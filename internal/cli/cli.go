package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/keybinds"
	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/seed"
	"github.com/studiowebux/keydeck/internal/types"
)

// ErrCheckFailed is returned by Check when the seed file would not load
// as written
var ErrCheckFailed = errors.New("seed file has issues")

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

// openStore seeds a scratch store from path and logs what the load skipped
func openStore(path string, log logrus.FieldLogger) (*profile.Store, error) {
	store, report, err := seed.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	for _, issue := range report.Issues() {
		log.WithField("file", path).Warn(issue)
	}
	return store, nil
}

// ProfilesOptions contains options for printing the resolved profiles
type ProfilesOptions struct {
	File   string
	Format string // text, json, yaml
	Out    io.Writer
	Log    logrus.FieldLogger
}

// Profiles prints every profile the seed file resolves to
func Profiles(opts ProfilesOptions) error {
	store, err := openStore(opts.File, opts.Log)
	if err != nil {
		return err
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		fmt.Fprint(opts.Out, formatProfiles(store.SeedFile()))
		return nil
	default:
		format, err := seed.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		data, err := seed.Encode(store.SeedFile(), format)
		if err != nil {
			return err
		}
		_, err = opts.Out.Write(data)
		return err
	}
}

// formatProfiles renders profiles as an aligned listing, marking the
// active one
func formatProfiles(file types.SeedFile) string {
	var sb strings.Builder
	for _, p := range file.Profiles {
		marker := "  "
		name := p.Name
		if p.Name == file.Active {
			marker = "* "
			name = colorGreen + p.Name + colorReset
		}
		suffix := ""
		if p.Name == profile.DefaultProfileName {
			suffix = " (read-only)"
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\n", marker, name, suffix))

		if len(p.Bindings) == 0 {
			sb.WriteString("    (no bindings)\n")
			continue
		}

		width := 0
		for _, b := range p.Bindings {
			if len(b.Name) > width {
				width = len(b.Name)
			}
		}
		for _, b := range p.Bindings {
			key := b.Key
			if key == "" {
				key = "-"
			}
			sb.WriteString(fmt.Sprintf("    %-*s  %-12s %s\n", width, b.Name, key, b.Type))
		}
	}
	return sb.String()
}

// Check validates a seed file and prints what a load would skip or ignore.
// It returns ErrCheckFailed when anything was reported.
func Check(path string, out io.Writer) error {
	file, err := seed.Load(path)
	if err != nil {
		return err
	}

	report := seed.Check(file)
	fmt.Fprintf(out, "%s: %d profiles loaded", path, len(report.Loaded))
	if report.Active != "" {
		fmt.Fprintf(out, ", active '%s'", report.Active)
	}
	fmt.Fprintln(out)

	if !report.HasIssues() {
		fmt.Fprintf(out, "%sNo issues found%s\n", colorGreen, colorReset)
		return nil
	}

	for _, issue := range report.Issues() {
		fmt.Fprintf(out, "%s  - %s%s\n", colorYellow, issue, colorReset)
	}
	return fmt.Errorf("%w: %d issues in %s", ErrCheckFailed, len(report.Issues()), path)
}

// ExportOptions contains options for writing the resolved profiles
type ExportOptions struct {
	File    string // seed file to read
	Format  string // yaml or json; defaults to the extension of OutPath
	OutPath string // empty writes to Out
	Out     io.Writer
	Log     logrus.FieldLogger
}

// Export writes the resolved snapshot of every profile. Latent duplicates
// of the input stay in the binding lists; the snapshot is what the store
// holds after loading.
func Export(opts ExportOptions) error {
	store, err := openStore(opts.File, opts.Log)
	if err != nil {
		return err
	}

	if opts.OutPath != "" && opts.Format == "" {
		return seed.Save(opts.OutPath, store.SeedFile())
	}

	format := seed.FormatYAML
	if opts.Format != "" {
		if format, err = seed.ParseFormat(opts.Format); err != nil {
			return err
		}
	}

	data, err := seed.Encode(store.SeedFile(), format)
	if err != nil {
		return err
	}

	if opts.OutPath == "" {
		_, err = opts.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.OutPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	opts.Log.WithField("file", opts.OutPath).Info("profiles exported")
	return nil
}

// SwitchOptions contains options for changing the active profile of a
// seed file
type SwitchOptions struct {
	File    string
	Profile string // empty prompts when interactive
	Journal *history.Manager
	Out     io.Writer
	Log     logrus.FieldLogger
}

// Switch makes a profile the active one in the seed file
func Switch(opts SwitchOptions) error {
	store, err := openStore(opts.File, opts.Log)
	if err != nil {
		return err
	}
	if opts.Journal != nil {
		store.Subscribe(history.Recorder(opts.Journal, opts.Log))
	}

	name := opts.Profile
	if name == "" {
		if !isInteractive() {
			return errors.New("no profile given")
		}
		name, err = promptForProfile(store.ListProfiles(), store.ActiveProfile())
		if err != nil {
			return err
		}
	}

	if err := store.SwitchTo(name); err != nil {
		return err
	}
	if err := seed.Save(opts.File, store.SeedFile()); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Switched to %s\n", name)
	return nil
}

// HistoryOptions contains options for reading or clearing the journal
type HistoryOptions struct {
	Journal *history.Manager
	Profile string
	Limit   int
	Clear   bool
	JSON    bool
	Out     io.Writer
}

// History prints the journal newest first, or clears it
func History(opts HistoryOptions) error {
	if opts.Clear {
		n, err := opts.Journal.Clear(opts.Profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "Deleted %d journal entries\n", n)
		return nil
	}

	entries, err := opts.Journal.Load(opts.Profile, opts.Limit)
	if err != nil {
		return err
	}

	if opts.JSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(opts.Out, "No journal entries")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(opts.Out, formatEntry(e))
	}
	return nil
}

func formatEntry(e types.JournalEntry) string {
	color := colorGreen
	if e.Error != "" {
		color = colorRed
	}
	line := fmt.Sprintf("%s %s%-17s%s", e.Timestamp.Format("2006-01-02 15:04:05"), color, e.Kind, colorReset)
	if e.Profile != "" {
		line += " [" + e.Profile + "]"
	}
	if e.Detail != "" {
		line += " " + e.Detail
	}
	if e.Error != "" {
		line += " (" + e.Error + ")"
	}
	return line
}

// InitKeybinds writes the example controls file. An existing file is kept
// unless force is set.
func InitKeybinds(path string, force bool, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := keybinds.CreateExampleConfig(path); err != nil {
		return fmt.Errorf("failed to write keybinds: %w", err)
	}
	fmt.Fprintf(out, "Keybinds written to %s\n", path)
	return nil
}

// CheckKeybinds validates a controls file and prints the result
func CheckKeybinds(path string, out io.Writer) error {
	config, err := keybinds.LoadConfig(path)
	if err != nil {
		return err
	}

	result := keybinds.NewValidator().ValidateConfig(config)
	fmt.Fprintln(out, result.String())
	if result.HasErrors() {
		return fmt.Errorf("%s has %d errors", path, len(result.Errors))
	}
	return nil
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
