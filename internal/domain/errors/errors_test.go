package errors

import (
	"net/http"
	"testing"
)

func TestFromCodeReplicatesMessage(t *testing.T) {
	err := FromCode(CodeInvalidCredentials, "email", "password")
	if err.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.Status)
	}
	if len(err.Details) != 2 {
		t.Fatalf("expected 2 field entries, got %d", len(err.Details))
	}
	if err.Details["email"] != err.Details["password"] {
		t.Error("expected the same message under every field path")
	}
	if err.Details["email"] == "" {
		t.Error("expected a catalog message, got empty string")
	}
}

func TestSchemaStatus(t *testing.T) {
	err := Schema(map[string]string{"page": "Trebuie sa fie un numar intreg"})
	if err.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", err.Status)
	}
}

func TestCatalogComplete(t *testing.T) {
	codes := []string{
		CodeInvalidMasterPassword,
		CodeEmailInUse,
		CodeInvalidCredentials,
		CodeProjectNotFound,
		CodePhotoNotFound,
	}
	for _, code := range codes {
		if messages[code] == "" {
			t.Errorf("missing catalog message for %s", code)
		}
	}
}
