package token_test

import (
	"testing"

	"github.com/jrsteele09/go-access-server/token"
	"github.com/jrsteele09/go-access-server/users"
	"github.com/stretchr/testify/require"
)

func TestECDSAKeyPairRoundTrip(t *testing.T) {
	keyPair, err := token.GenerateECDSAKeyPair("test-key-1")
	require.NoError(t, err)

	svc, err := token.New(token.NewKeyPairSigner(keyPair))
	require.NoError(t, err)

	user := &users.User{
		ID:        "user-1",
		RoleID:    "role-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Roe",
	}

	signed, err := svc.Mint(user)
	require.NoError(t, err)

	claims, err := svc.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "role-1", claims.RoleID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "Jane Roe", claims.Name)
}

func TestKeyPairRejectsForeignSignature(t *testing.T) {
	mintKeys, err := token.GenerateECDSAKeyPair("mint-key")
	require.NoError(t, err)
	verifyKeys, err := token.GenerateECDSAKeyPair("verify-key")
	require.NoError(t, err)

	minter, err := token.New(token.NewKeyPairSigner(mintKeys))
	require.NoError(t, err)
	verifier, err := token.New(token.NewKeyPairSigner(verifyKeys))
	require.NoError(t, err)

	signed, err := minter.Mint(&users.User{ID: "u", RoleID: "r", Email: "e@example.com"})
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	require.ErrorIs(t, err, token.InvalidTokenErr)
}

func TestKeyPairPEMRoundTrip(t *testing.T) {
	keyPair, err := token.GenerateECDSAKeyPair("pem-key")
	require.NoError(t, err)

	pemData, err := keyPair.ExportPrivateKeyPEM()
	require.NoError(t, err)

	loaded, err := token.LoadKeyPairFromPEM("pem-key", pemData)
	require.NoError(t, err)
	require.Equal(t, "ES256", loaded.Algorithm)

	// A token minted with the original key parses with the loaded one.
	minter, err := token.New(token.NewKeyPairSigner(keyPair))
	require.NoError(t, err)
	verifier, err := token.New(token.NewKeyPairSigner(loaded))
	require.NoError(t, err)

	signed, err := minter.Mint(&users.User{ID: "u", RoleID: "r", Email: "e@example.com"})
	require.NoError(t, err)
	claims, err := verifier.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "r", claims.RoleID)
}

func TestLoadKeyPairFromPEMRejectsGarbage(t *testing.T) {
	_, err := token.LoadKeyPairFromPEM("bad", "not pem at all")
	require.Error(t, err)
}
