package sessioninfra

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
)

// fakeRedis answers GET, SET and DEL over RESP2; HELLO is refused and any
// other command is acknowledged.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]string
}

func startFakeRedis(t *testing.T) (*fakeRedis, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	f := &fakeRedis{data: map[string]string{}, ttl: map[string]string{}}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f, ln.Addr().String()
}

func (f *fakeRedis) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, f.exec(args)); err != nil {
			return
		}
	}
}

func (f *fakeRedis) exec(args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch strings.ToUpper(args[0]) {
	case "HELLO":
		return "-ERR unknown command 'HELLO'\r\n"
	case "GET":
		v, ok := f.data[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	case "SET":
		f.data[args[1]] = args[2]
		if len(args) >= 5 {
			f.ttl[args[1]] = strings.ToLower(args[3]) + " " + args[4]
		}
		return "+OK\r\n"
	case "DEL":
		n := 0
		for _, k := range args[1:] {
			if _, ok := f.data[k]; ok {
				delete(f.data, k)
				n++
			}
		}
		return fmt.Sprintf(":%d\r\n", n)
	default:
		return "+OK\r\n"
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, n)
	for range n {
		header, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(header[1:]))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func sampleState() session.State {
	return session.ReduceAll(session.Initial(),
		session.Login("u1", "u1@example.com", "student"),
		session.Action{Type: session.ActionSetField, Field: "status", Values: []string{"active"}},
		session.Action{Type: session.ActionSetPage, Page: 3},
	)
}

func stores(t *testing.T) map[string]session.Store {
	t.Helper()
	_, addr := startFakeRedis(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]session.Store{
		"memory": NewMemoryStore(time.Hour),
		"redis":  NewRedisStore(client, "session:", time.Hour),
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Load(ctx, "u1"); !errx.IsCode(err, session.CodeSessionNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}

			want := sampleState()
			if err := store.Save(ctx, "u1", want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.Load(ctx, "u1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.Auth != want.Auth || got.Jobs.Page != 3 || got.JobsQuery() != want.JobsQuery() {
				t.Fatalf("round trip = %+v, want %+v", got, want)
			}

			if err := store.Delete(ctx, "u1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Load(ctx, "u1"); !errx.IsCode(err, session.CodeSessionNotFound) {
				t.Fatalf("expected not found after delete, got %v", err)
			}
		})
	}
}

func TestRedisStoreSetsExpiry(t *testing.T) {
	fake, addr := startFakeRedis(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "session:", 90*time.Second)
	if err := store.Save(context.Background(), "u9", session.Initial()); err != nil {
		t.Fatalf("save: %v", err)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if got := fake.ttl["session:u9"]; got != "ex 90" {
		t.Fatalf("expiry = %q", got)
	}
}

func TestRedisStoreCorruptValue(t *testing.T) {
	fake, addr := startFakeRedis(t)
	client := redis.NewClient(&redis.Options{Addr: addr, Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })

	fake.mu.Lock()
	fake.data["session:u1"] = "{not json"
	fake.mu.Unlock()

	_, err := NewRedisStore(client, "session:", time.Hour).Load(context.Background(), "u1")
	if !errx.IsCode(err, session.CodeSessionCorrupted) {
		t.Fatalf("expected corrupted, got %v", err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return current }

	if err := store.Save(context.Background(), "u1", sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	current = current.Add(time.Minute)
	if _, err := store.Load(context.Background(), "u1"); !errx.IsCode(err, session.CodeSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	store := NewMemoryStore(0)
	state := sampleState()
	_ = store.Save(context.Background(), "u1", state)
	state.Jobs.Filters.Selections["status"][0] = "closed"

	got, _ := store.Load(context.Background(), "u1")
	if got.Jobs.Filters.Selections["status"][0] != "active" {
		t.Fatalf("stored state mutated: %+v", got.Jobs.Filters)
	}
}
