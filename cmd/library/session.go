package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/library"
)

const sessionHelp = `Commands:
  search <title>        Search for a book
  borrow <id> <title>   Borrow a book
  return <id> <title>   Return a book
  books <id>            View a reader's borrowed books
  register <name>       Register a new reader
  list                  List the catalog
  exit                  Exit`

// maxSessionLineBytes bounds one input line. Longer lines end the session with bufio.ErrTooLong.
const maxSessionLineBytes = 1 << 20

// Session is the line-oriented circulation desk. All console I/O of the program lives here.
type Session struct {
	library *library.Library
	in      io.Reader
	out     io.Writer
}

// NewSession creates a Session reading commands from in and writing replies to out.
func NewSession(lib *library.Library, in io.Reader, out io.Writer) *Session {
	return &Session{library: lib, in: in, out: out}
}

// Run handles commands until exit, end of input or an infrastructure error.
func (s *Session) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxSessionLineBytes)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Titles are catalog keys and are passed on verbatim after the first separator.
		command, args, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

		var err error

		switch strings.ToLower(strings.TrimSpace(command)) {
		case "search":
			s.search(args)
		case "borrow":
			err = s.borrow(ctx, args)
		case "return":
			err = s.giveBack(ctx, args)
		case "books":
			s.borrowedBooks(args)
		case "register":
			err = s.register(ctx, args)
		case "list":
			printCatalog(s.out, s.library.Books())
		case "help":
			s.say(sessionHelp)
		case "exit", "quit":
			s.say("Exiting...")
			return nil
		default:
			s.say("Invalid choice. Please enter a valid option.")
		}

		if err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Session) search(title string) {
	book, found := s.library.Search(title)
	if !found {
		s.say(fmt.Sprintf("Book with title %s not found.", title))
		return
	}

	s.say("Book found:")
	fmt.Fprint(s.out, book)
}

func (s *Session) borrow(ctx context.Context, args string) error {
	readerID, title, ok := readerAndTitle(args)
	if !ok {
		s.say(library.OutcomeNotFound.BorrowMessage())
		return nil
	}

	outcome, err := s.library.Borrow(ctx, readerID, title)
	if err != nil {
		return err
	}

	s.say(outcome.BorrowMessage())

	return nil
}

func (s *Session) giveBack(ctx context.Context, args string) error {
	readerID, title, ok := readerAndTitle(args)
	if !ok {
		s.say(library.OutcomeNotFound.ReturnMessage())
		return nil
	}

	outcome, err := s.library.Return(ctx, readerID, title)
	if err != nil {
		return err
	}

	s.say(outcome.ReturnMessage())

	return nil
}

func (s *Session) borrowedBooks(args string) {
	readerID, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		s.say(fmt.Sprintf("User with library ID %s not found.", args))
		return
	}

	reader, found := s.library.FindReader(readerID)
	if !found {
		s.say(fmt.Sprintf("User with library ID %d not found.", readerID))
		return
	}

	books, _ := s.library.BorrowedBooks(readerID)

	s.say(fmt.Sprintf("Borrowed books for user %s:", reader.Name()))
	for _, book := range books {
		fmt.Fprint(s.out, book)
	}
}

func (s *Session) register(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		s.say("Please enter a name.")
		return nil
	}

	reader, err := s.library.Register(ctx, name)
	if err != nil {
		return err
	}

	s.say(fmt.Sprintf("New user registered successfully! User ID is: %d", reader.ID()))

	return nil
}

func (s *Session) say(message string) {
	fmt.Fprintln(s.out, message)
}

func readerAndTitle(args string) (int, string, bool) {
	idText, title, _ := strings.Cut(args, " ")

	readerID, err := strconv.Atoi(idText)
	if err != nil {
		return 0, "", false
	}

	return readerID, title, true
}
