package registration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

type Kind uint8

const (
	InvalidName Kind = iota
	InvalidAge
	InvalidEmail
	Database
)

func (k Kind) String() string {
	switch k {
	case InvalidName:
		return "invalid name"
	case InvalidAge:
		return "invalid age"
	case InvalidEmail:
		return "invalid email"
	case Database:
		return "database"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

const MinAge = 13

type User struct {
	ID    int
	Name  string
	Age   int
	Email string
}

// Validators report plain messages; Register lifts them into *Error.

func ValidateName(name string) rop.Outcome[string, string] {
	name = strings.TrimSpace(name)
	if name == "" {
		return rop.Failure[string]("name cannot be empty")
	}
	return rop.Success[string, string](name)
}

func ValidateAge(age string) rop.Outcome[int, string] {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return rop.Failure[int](fmt.Sprintf("%q is not a number", age))
	}
	if n < MinAge {
		return rop.Failure[int](fmt.Sprintf("must be at least %d", MinAge))
	}
	return rop.Success[int, string](n)
}

func ValidateEmail(email string) rop.Outcome[string, string] {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return rop.Failure[string](fmt.Sprintf("%q is not an email address", email))
	}
	return rop.Success[string, string](email)
}

func as(kind Kind) rop.Converter[string, *Error] {
	return func(msg string) *Error {
		return &Error{Kind: kind, Msg: msg}
	}
}

func fromFault(f *fault.Fault) *Error {
	return &Error{Kind: Database, Msg: "save failed", Cause: f}
}

// Register validates the form and saves the user. The first invalid field
// wins.
func Register(store *Store, name, age, email string) rop.Outcome[User, *Error] {
	user := rop.Map(rop.Convert(ValidateName(name), as(InvalidName)), func(n string) User {
		return User{Name: n}
	})
	user = rop.AndThenConv(user, func(u User) rop.Outcome[User, string] {
		return rop.Map(ValidateAge(age), func(a int) User {
			u.Age = a
			return u
		})
	}, as(InvalidAge))
	user = rop.AndThenConv(user, func(u User) rop.Outcome[User, string] {
		return rop.Map(ValidateEmail(email), func(e string) User {
			u.Email = e
			return u
		})
	}, as(InvalidEmail))
	return rop.AndThenConv(user, store.Save, fromFault)
}
