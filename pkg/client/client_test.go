package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinebook/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Output: io.Discard})
}

func TestFindMovieFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/movie-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"movie-1","title":"Creed","director":"Ryan Coogler","rating":8.8}`))
	}))
	defer server.Close()

	c := NewMovieClient(server.URL, time.Second, testLogger())
	movie, found := c.FindMovie(context.Background(), "movie-1")
	if !found {
		t.Fatal("expected the movie to be found")
	}
	if movie.Title != "Creed" || movie.Rating != 8.8 {
		t.Errorf("unexpected movie: %+v", movie)
	}
}

func TestFindMovieNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Movie not found"}`))
	}))
	defer server.Close()

	c := NewMovieClient(server.URL, time.Second, testLogger())
	if _, found := c.FindMovie(context.Background(), "no-such-movie"); found {
		t.Error("expected absent on a 404")
	}
}

func TestFindMovieMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	c := NewMovieClient(server.URL, time.Second, testLogger())
	if _, found := c.FindMovie(context.Background(), "movie-1"); found {
		t.Error("expected absent on a malformed body")
	}
}

func TestFindMovieServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := NewMovieClient(server.URL, time.Second, testLogger())
	if _, found := c.FindMovie(context.Background(), "movie-1"); found {
		t.Error("expected absent when the service is unreachable")
	}
}

func TestFindScreeningEscapesPathSegments(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"movieid":"movie one","date":"20151201","time":"20:00"}`))
	}))
	defer server.Close()

	c := NewScheduleClient(server.URL, time.Second, testLogger())
	screening, found := c.FindScreening(context.Background(), "movie one", "20151201")
	if !found {
		t.Fatal("expected the screening to be found")
	}
	if screening.Time != "20:00" {
		t.Errorf("unexpected screening: %+v", screening)
	}
	if gotPath != "/schedule/movie%20one/20151201" {
		t.Errorf("expected escaped path, got %s", gotPath)
	}
}

func TestFindScreeningAbsentOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewScheduleClient(server.URL, time.Second, testLogger())
	if _, found := c.FindScreening(context.Background(), "movie-1", "20151201"); found {
		t.Error("expected absent on a 500")
	}
}

func TestFindUserFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/the_boss" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"the_boss","name":"The Boss","role":"admin"}`))
	}))
	defer server.Close()

	c := NewUserClient(server.URL, time.Second, testLogger())
	user, found := c.FindUser(context.Background(), "the_boss")
	if !found {
		t.Fatal("expected the user to be found")
	}
	if !user.IsAdmin() {
		t.Errorf("expected an admin, got %+v", user)
	}
}

func TestFindUserRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewUserClient(server.URL, time.Second, testLogger())
	if _, found := c.FindUser(ctx, "the_boss"); found {
		t.Error("expected absent when the context expires")
	}
}
