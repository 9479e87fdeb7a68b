package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	errs := ValidateRegister("alice", "alice@x.com", "Sup3rSecret")
	require.False(t, errs.HasErrors())

	errs = ValidateRegister("al", "not-an-email", "short")
	require.True(t, errs.HasErrors())
	require.Contains(t, errs, "username")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")

	errs = ValidateRegister("has space", "alice@x.com", "Sup3rSecret")
	require.Contains(t, errs, "username")
}

func TestValidateLogin(t *testing.T) {
	require.False(t, ValidateLogin("alice", "", "pw").HasErrors())
	require.False(t, ValidateLogin("", "alice@x.com", "pw").HasErrors())

	errs := ValidateLogin("", "", "pw")
	require.Contains(t, errs, "username")

	errs = ValidateLogin("alice", "", "")
	require.Contains(t, errs, "password")
}

func TestValidatePasswordComposition(t *testing.T) {
	errs := ValidateRegister("alice", "alice@x.com", "alllowercase1")
	require.Contains(t, errs["password"], "uppercase")

	errs = ValidateRegister("alice", "alice@x.com", "NoDigitsHere")
	require.Contains(t, errs["password"], "number")
}

func TestValidateJob(t *testing.T) {
	require.False(t, ValidateJob("Go Developer", "Build services").HasErrors())

	errs := ValidateJob("", "")
	require.Contains(t, errs, "title")
	require.Contains(t, errs, "description")
}
