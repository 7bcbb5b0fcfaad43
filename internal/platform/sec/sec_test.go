// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identra/identra/internal/platform/sec"
)

// newTokenService builds a TokenService with a throwaway RSA key pair.
func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(privateKey, &privateKey.PublicKey, "identra.io")
}

/*
TestHashPassword_RoundTrip verifies hashing and verification of a password.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	// The stored value must never equal the plaintext.
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_UniqueSalts verifies two hashes of the same input differ.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("same-input")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestTokenService_RoundTrip verifies a generated token carries the claims back.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "alice", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "identra.io", claims.Issuer)
}

/*
TestTokenService_Expired verifies an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "alice", -1*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Tampered verifies a modified token fails signature checks.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "alice", 30*time.Minute)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)
}

/*
TestTokenService_WrongKey verifies a token signed by another key pair is rejected.
*/
func TestTokenService_WrongKey(t *testing.T) {
	issuerService := newTokenService(t)
	verifierService := newTokenService(t)

	token, err := issuerService.GenerateAccessToken("user-1", "alice", 30*time.Minute)
	require.NoError(t, err)

	_, err = verifierService.VerifyToken(token)
	assert.Error(t, err)
}
