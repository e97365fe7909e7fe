package services

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%&*"
	passwordLength = 12
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// UserImportResult aggregates the outcome of one account import.
type UserImportResult struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// CredentialSender delivers generated credentials to a fresh account.
// Dispatch is fire-and-forget: delivery failures never affect the import.
type CredentialSender interface {
	SendCredentials(email, password string)
}

// UserImportService creates accounts from a newline-delimited list of email
// addresses, generating a password for each and mailing it out.
type UserImportService struct {
	tx     repositories.TxManager
	sender CredentialSender
}

// NewUserImportService creates a new UserImportService.
func NewUserImportService(tx repositories.TxManager, sender CredentialSender) *UserImportService {
	return &UserImportService{
		tx:     tx,
		sender: sender,
	}
}

type createdCredential struct {
	email    string
	password string
}

// ImportUsers processes one email address per line. Blank lines, comment
// lines starting with '#', and an optional first-line "email" header are
// skipped without counting. All account writes share one transaction;
// credential mail goes out only after that transaction commits, so a rolled
// back import never leaks passwords for accounts that do not exist.
func (s *UserImportService) ImportUsers(file io.Reader) (*UserImportResult, error) {
	result := &UserImportResult{Errors: []string{}}
	var credentials []createdCredential

	err := s.tx.InTransaction(func(repos *repositories.RepoSet) error {
		scanner := bufio.NewScanner(file)
		lineNumber := 0
		for scanner.Scan() {
			lineNumber++
			email := strings.TrimSpace(scanner.Text())

			if email == "" || strings.HasPrefix(email, "#") {
				continue
			}
			if lineNumber == 1 && strings.EqualFold(email, "email") {
				continue
			}

			result.Processed++
			credential, rowErr := s.importRow(repos, email)
			switch {
			case rowErr == nil:
				result.Created++
				credentials = append(credentials, *credential)
			case apperrors.KindOf(rowErr) == apperrors.KindConflict:
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", lineNumber, rowErr.Error()))
			default:
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", lineNumber, rowErr.Error()))
			}
		}
		if scanErr := scanner.Err(); scanErr != nil {
			return apperrors.Internal("failed to read import file", scanErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, credential := range credentials {
		s.sender.SendCredentials(credential.email, credential.password)
	}

	return result, nil
}

// importRow creates one account. A Conflict return means the address already
// has an account and the row counts as skipped, not failed.
func (s *UserImportService) importRow(repos *repositories.RepoSet, email string) (*createdCredential, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validationf("invalid email format '%s'", email)
	}

	if _, err := repos.Users.GetByEmail(email); err == nil {
		return nil, apperrors.Conflictf("email already exists '%s'", email)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	rawPassword, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.AppUser{
		Email:              email,
		Password:           string(hash),
		Role:               models.RoleUser,
		NeedsPasswordReset: true,
	}
	if err := repos.Users.Create(user); err != nil {
		return nil, err
	}

	return &createdCredential{email: email, password: rawPassword}, nil
}

// generatePassword draws a fixed-length password from the allowed character
// set using crypto/rand.
func generatePassword() (string, error) {
	var sb strings.Builder
	sb.Grow(passwordLength)
	max := big.NewInt(int64(len(passwordChars)))
	for i := 0; i < passwordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", apperrors.Internal("failed to generate password", err)
		}
		sb.WriteByte(passwordChars[n.Int64()])
	}
	return sb.String(), nil
}
