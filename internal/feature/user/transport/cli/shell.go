// Package cli implements the interactive console for managing users.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"user_manager/internal/feature/user/domain/entity"
	"user_manager/internal/feature/user/usecase"
)

// UserService is the service surface the shell drives.
// Following Go convention: interfaces are defined by the consumer, not the provider.
type UserService interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uint) (*entity.User, bool, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
}

const (
	choiceCreate = iota + 1
	choiceRead
	choiceUpdate
	choiceDelete
	choiceList
	choiceExit
)

const (
	msgInvalidNumber = "Invalid input. Please enter a number."
	msgInvalidID     = "Invalid input. Please enter a positive number."
	msgInvalidChoice = "Invalid choice. Please try again."
	msgNotFound      = "User not found!"
	msgLineTooLong   = "Invalid input. Line is too long."
	msgNotChanged    = "Nothing was changed."
)

// maxLineBytes caps a single input line; longer lines are discarded and re-prompted.
const maxLineBytes = 64 * 1024

var errLineTooLong = errors.New("input line too long")

// Shell reads menu choices line by line and runs one user action at a time.
type Shell struct {
	in    *bufio.Reader
	out   io.Writer
	users UserService
}

// NewShell creates a shell reading from in and writing to out.
func NewShell(in io.Reader, out io.Writer, users UserService) *Shell {
	return &Shell{
		in:    bufio.NewReader(in),
		out:   out,
		users: users,
	}
}

// Run shows the menu until the user chooses Exit or the input ends.
// A failed action is reported and the menu is shown again; only a broken
// input stream or a cancelled context ends Run with an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()
		choice, err := s.readInt("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case choiceCreate:
			err = s.createUser(ctx)
		case choiceRead:
			err = s.readUser(ctx)
		case choiceUpdate:
			err = s.updateUser(ctx)
		case choiceDelete:
			err = s.deleteUser(ctx)
		case choiceList:
			s.listUsers(ctx)
		case choiceExit:
			s.println("Goodbye!")
			return nil
		default:
			s.println(msgInvalidChoice)
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (s *Shell) printMenu() {
	s.println("")
	s.println("=== User Management System ===")
	s.println("1. Create User")
	s.println("2. Read User")
	s.println("3. Update User")
	s.println("4. Delete User")
	s.println("5. List All Users")
	s.println("6. Exit")
}

func (s *Shell) createUser(ctx context.Context) error {
	s.println("\n=== Create User ===")
	name, err := s.prompt("Enter name: ")
	if err != nil {
		return err
	}
	email, err := s.prompt("Enter email: ")
	if err != nil {
		return err
	}
	age, err := s.readInt("Enter age: ")
	if err != nil {
		return err
	}

	user, err := s.users.CreateUser(ctx, &entity.User{Name: name, Email: email, Age: entity.IntPtr(age)})
	if err != nil {
		s.reportError("creating", err)
		return nil
	}
	s.printf("User created successfully! ID: %d\n", user.ID)
	return nil
}

func (s *Shell) readUser(ctx context.Context) error {
	s.println("\n=== Read User ===")
	id, err := s.readID("Enter user ID: ")
	if err != nil {
		return err
	}

	user, found, err := s.users.GetUserByID(ctx, id)
	switch {
	case err != nil:
		s.reportError("reading", err)
	case !found:
		s.println(msgNotFound)
	default:
		s.println(user.String())
	}
	return nil
}

// updateUser merges non-empty inputs into the current record and submits the full record.
func (s *Shell) updateUser(ctx context.Context) error {
	s.println("\n=== Update User ===")
	id, err := s.readID("Enter user ID to update: ")
	if err != nil {
		return err
	}

	user, found, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		s.reportError("updating", err)
		return nil
	}
	if !found {
		s.println(msgNotFound)
		return nil
	}

	name, err := s.prompt(fmt.Sprintf("Enter new name (current: %s): ", user.Name))
	if err != nil {
		return err
	}
	email, err := s.prompt(fmt.Sprintf("Enter new email (current: %s): ", user.Email))
	if err != nil {
		return err
	}
	age, err := s.readOptionalInt(fmt.Sprintf("Enter new age (current: %s): ", user.AgeString()))
	if err != nil {
		return err
	}

	merged := *user
	if name != "" {
		merged.Name = name
	}
	if email != "" {
		merged.Email = email
	}
	if age != nil {
		merged.Age = age
	}

	if _, err := s.users.UpdateUser(ctx, &merged); err != nil {
		s.reportError("updating", err)
		return nil
	}
	s.println("User updated successfully!")
	return nil
}

func (s *Shell) deleteUser(ctx context.Context) error {
	s.println("\n=== Delete User ===")
	id, err := s.readID("Enter user ID to delete: ")
	if err != nil {
		return err
	}

	deleted, err := s.users.DeleteUser(ctx, id)
	switch {
	case err != nil:
		s.reportError("deleting", err)
	case !deleted:
		s.println(msgNotFound)
	default:
		s.println("User deleted successfully!")
	}
	return nil
}

func (s *Shell) listUsers(ctx context.Context) {
	s.println("\n=== All Users ===")
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		s.reportError("listing", err)
		return
	}
	if len(users) == 0 {
		s.println("No users found!")
		return
	}
	for _, u := range users {
		s.println(u.String())
	}
}

// reportError prints the failure of one action. A user that vanished between
// read and update is reported like any other missing user.
func (s *Shell) reportError(action string, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		s.println(msgNotFound)
		return
	}
	noun := "user"
	if action == "listing" {
		noun = "users"
	}
	s.printf("Error %s %s: %v\n", action, noun, err)
	if usecase.IsStorageError(err) && action != "reading" && action != "listing" {
		s.println(msgNotChanged)
	}
}

// prompt prints label and returns the next line with surrounding spaces removed.
// Over-long lines are rejected and the label is shown again.
func (s *Shell) prompt(label string) (string, error) {
	for {
		fmt.Fprint(s.out, label)
		line, err := s.readLine()
		if errors.Is(err, errLineTooLong) {
			s.println(msgLineTooLong)
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// readLine returns the next line without its line ending. A line longer than
// maxLineBytes is consumed in full and reported as errLineTooLong.
func (s *Shell) readLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, more, err := s.in.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(line), nil
}

// readInt prompts until the line parses as an integer.
func (s *Shell) readInt(label string) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.println(msgInvalidNumber)
	}
}

// readOptionalInt prompts until the line is empty or an integer. Empty yields nil.
func (s *Shell) readOptionalInt(label string) (*int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return &n, nil
		}
		s.println(msgInvalidNumber)
	}
}

// readID prompts until the line is a positive integer.
func (s *Shell) readID(label string) (uint, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseUint(line, 10, strconv.IntSize)
		if err == nil && n > 0 {
			return uint(n), nil
		}
		s.println(msgInvalidID)
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// endOfInput turns io.EOF into a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
