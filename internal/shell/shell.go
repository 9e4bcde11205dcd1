package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
)

const (
	menuText = "Menu\n\n[l] load Inventory from file\n[a] Add CD\n[i] Display Current Inventory\n" +
		"[d] delete CD from Inventory\n[s] Save Inventory to file\n[x] exit\n\n"
	menuPrompt = "Which operation would you like to perform? [l, a, i, d, s or x]: "

	loadWarning   = "WARNING: If you continue, all unsaved data will be lost and the Inventory re-loaded from file."
	loadPrompt    = "type 'yes' to continue and reload from file. otherwise reload will be canceled: "
	loadCancelled = "canceling... Inventory data NOT reloaded. Press [ENTER] to continue to the menu."

	promptID     = "Enter ID: "
	promptTitle  = "What is the CD's title? "
	promptArtist = "What is the Artist's name? "

	deletePrompt = "Which ID would you like to delete? "
	removedMsg   = "The CD was removed"
	notFoundMsg  = "Could not find this CD!"

	savePrompt    = "Save this inventory to file? [y/n] "
	saveCancelled = "The inventory was NOT saved to file. Press [ENTER] to return to the menu."
)

// Menu choices.
const (
	CommandLoad    = "l"
	CommandAdd     = "a"
	CommandDisplay = "i"
	CommandDelete  = "d"
	CommandSave    = "s"
	CommandExit    = "x"
)

// DisplayFunc renders the inventory after each command.
type DisplayFunc func(w io.Writer, records []inventory.Record) error

// bootstrapper is implemented by backends that can create their storage on
// first use.
type bootstrapper interface {
	Bootstrap() error
}

// Shell is the interactive menu loop over one Store and one Backend.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	store    *inventory.Store
	backend  inventory.Backend
	logger   *slog.Logger
	display  DisplayFunc
	tolerant bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger attaches a logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithDisplay replaces the classic inventory layout.
func WithDisplay(display DisplayFunc) Option {
	return func(s *Shell) {
		if display != nil {
			s.display = display
		}
	}
}

// WithTolerateBadInput keeps the session alive when an ID typed at the add
// or delete prompt is not numeric. The error is printed and the menu shown
// again.
func WithTolerateBadInput(enabled bool) Option {
	return func(s *Shell) {
		s.tolerant = enabled
	}
}

// New builds a shell reading commands from in and writing prompts to out.
func New(in io.Reader, out io.Writer, store *inventory.Store, backend inventory.Backend, opts ...Option) *Shell {
	s := &Shell{
		in:      bufio.NewReader(in),
		out:     out,
		store:   store,
		backend: backend,
		display: inventory.WriteInventory,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "shell")
	return s
}

// Run bootstraps the backend, loads it into the store, and serves menu
// commands until the user exits or input ends. Format and backend errors end
// the session and are returned to the caller.
func (s *Shell) Run(ctx context.Context) error {
	if b, ok := s.backend.(bootstrapper); ok {
		if err := b.Bootstrap(); err != nil {
			return err
		}
	}
	if err := s.reload(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := s.menuChoice()
		if errors.Is(err, io.EOF) {
			s.logger.Debug("input closed at menu, ending session")
			return nil
		}
		if err != nil {
			return err
		}
		s.logger.Debug("menu command", logging.String(logging.FieldCommand, choice))
		if choice == CommandExit {
			return nil
		}
		if err := s.dispatch(ctx, choice); err != nil {
			if s.tolerates(choice, err) {
				s.logger.Warn("rejected input",
					logging.String(logging.FieldCommand, choice),
					logging.Error(err),
					logging.String(logging.FieldEventType, "bad_input"))
				s.printf("Invalid input: %v\n\n", err)
				continue
			}
			return err
		}
	}
}

// tolerates reports whether err is bad user input from add or delete that the
// session may report and survive. Load and save failures always end it.
func (s *Shell) tolerates(choice string, err error) bool {
	if !s.tolerant || !inventory.IsFormatError(err) {
		return false
	}
	return choice == CommandAdd || choice == CommandDelete
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case CommandLoad:
		return s.handleLoad(ctx)
	case CommandAdd:
		return s.handleAdd()
	case CommandDisplay:
		return s.show()
	case CommandDelete:
		return s.handleDelete()
	case CommandSave:
		return s.handleSave(ctx)
	default:
		return fmt.Errorf("unknown command %q", choice)
	}
}

func (s *Shell) menuChoice() (string, error) {
	s.printf("%s", menuText)
	for {
		line, err := s.readLine(menuPrompt)
		if err != nil {
			return "", err
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		switch choice {
		case CommandLoad, CommandAdd, CommandDisplay, CommandDelete, CommandSave, CommandExit:
			s.printf("\n")
			return choice, nil
		}
	}
}

func (s *Shell) handleLoad(ctx context.Context) error {
	s.printf("%s\n", loadWarning)
	answer, err := s.ask(loadPrompt)
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		if _, err := s.ask(loadCancelled); err != nil {
			return err
		}
		return s.show()
	}
	s.printf("reloading...\n")
	if err := s.reload(ctx); err != nil {
		return err
	}
	return s.show()
}

func (s *Shell) handleAdd() error {
	id, err := s.ask(promptID)
	if err != nil {
		return err
	}
	title, err := s.ask(promptTitle)
	if err != nil {
		return err
	}
	artist, err := s.ask(promptArtist)
	if err != nil {
		return err
	}
	rec, err := s.store.Add(strings.TrimSpace(id), strings.TrimSpace(title), strings.TrimSpace(artist))
	if err != nil {
		return err
	}
	s.logger.Info("added record", logging.Int(logging.FieldRecordID, rec.ID))
	return s.show()
}

func (s *Shell) handleDelete() error {
	if err := s.show(); err != nil {
		return err
	}
	raw, err := s.ask(deletePrompt)
	if err != nil {
		return err
	}
	id, err := inventory.ParseID(raw)
	if err != nil {
		return err
	}
	if s.store.Remove(id) {
		s.logger.Info("removed record", logging.Int(logging.FieldRecordID, id))
		s.printf("%s\n", removedMsg)
	} else {
		s.printf("%s\n", notFoundMsg)
	}
	return s.show()
}

func (s *Shell) handleSave(ctx context.Context) error {
	if err := s.show(); err != nil {
		return err
	}
	answer, err := s.ask(savePrompt)
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		_, err := s.ask(saveCancelled)
		return err
	}
	records := s.store.Snapshot()
	if err := s.backend.Save(ctx, records); err != nil {
		logging.ErrorWithContext(s.logger, "save failed", "save_failed",
			logging.String(logging.FieldPath, s.backend.Location()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the inventory location is writable"))
		return err
	}
	s.logger.Info("saved inventory",
		logging.String(logging.FieldPath, s.backend.Location()),
		logging.Int(logging.FieldRecordCount, len(records)))
	return nil
}

func (s *Shell) reload(ctx context.Context) error {
	records, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	s.store.Replace(records)
	s.logger.Info("loaded inventory",
		logging.String(logging.FieldPath, s.backend.Location()),
		logging.Int(logging.FieldRecordCount, len(records)))
	return nil
}

func (s *Shell) show() error {
	return s.display(s.out, s.store.Snapshot())
}

// ask reads the answer to a dialog prompt. Input ending mid-dialog is an
// error rather than a clean exit.
func (s *Shell) ask(prompt string) (string, error) {
	line, err := s.readLine(prompt)
	if errors.Is(err, io.EOF) {
		return "", io.ErrUnexpectedEOF
	}
	return line, err
}

// readLine prints prompt and returns the next input line without its
// terminator. A final unterminated line is returned before io.EOF.
func (s *Shell) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
