package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://testuser@localhost:5432/testdb"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestJWTSecretIsSeparateFromConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://u@localhost/db"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := SetJWTSecret("s3cret"); err != nil {
		t.Fatalf("SetJWTSecret() failed: %v", err)
	}

	secret, err := GetJWTSecret()
	if err != nil {
		t.Fatalf("GetJWTSecret() failed: %v", err)
	}
	if secret != "s3cret" {
		t.Errorf("GetJWTSecret() = %q, want %q", secret, "s3cret")
	}

	if err := DeleteJWTSecret(); err != nil {
		t.Fatalf("DeleteJWTSecret() failed: %v", err)
	}
	if _, err := GetConnectionString(); err != nil {
		t.Errorf("connection string should survive JWT secret deletion: %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring, want true")
	}
}
