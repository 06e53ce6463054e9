package tracker

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserPage(t *testing.T) {
	cl, mock, _ := newTestBackend(t)

	mock.ExpectQuery(sqlPatternSelectUser).WithArgs("cleopatra").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	var body []byte
	status, header, err := cl.RawGetWithHeader("/u/cleopatra", nil, &body)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if contentType := header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/html") {
		t.Fatalf("expected an html page, got %s", contentType)
	}
	if !strings.Contains(string(body), "EnergyTrack") {
		t.Fatalf("expected the page, got %s", string(body))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserPageUnknownUser(t *testing.T) {
	cl, mock, _ := newTestBackend(t)

	mock.ExpectQuery(sqlPatternSelectUser).WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	status, _ := cl.RawGet("/u/nobody", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, status)
	}
}

func TestStaticAssets(t *testing.T) {
	cl, _, _ := newTestBackend(t)

	var body []byte
	status, header, err := cl.RawGetWithHeader("/static/styles.css", nil, &body)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if contentType := header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/css") {
		t.Fatalf("expected a stylesheet, got %s", contentType)
	}
	if !strings.Contains(string(body), "font-family") {
		t.Fatalf("expected the stylesheet, got %s", string(body))
	}

	status, _ = cl.RawGet("/static/missing.css", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, status)
	}
}
