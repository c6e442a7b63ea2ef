package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/clubmerch-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse_Club(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "club-1", pkgjwt.RoleClub, "club-1", "clubmerch-test", 10)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "club-1", claims.Subject)
	assert.Equal(t, pkgjwt.RoleClub, claims.Role)
	assert.Equal(t, "club-1", claims.ClubID)
	assert.Equal(t, "clubmerch-test", claims.Issuer)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "admin", pkgjwt.RoleAdmin, "", "clubmerch-test", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "admin", pkgjwt.RoleAdmin, "", "clubmerch-test", 10)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "admin", pkgjwt.RoleAdmin, "", "x", 10)
	assert.Error(t, err)
}
