package app

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/strata/app/context"
	"go.hackfix.me/strata/db"
)

var timeNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func timeNowFn() time.Time {
	return timeNow
}

type testApp struct {
	*App
	stdin          *bytes.Buffer
	stdout, stderr *bytes.Buffer
	env            *mockEnv
}

func newTestApp(ctx context.Context) (*testApp, error) {
	// A unique name per app, to avoid clashing of in-memory SQLite DBs.
	rndName := make([]byte, 12)
	_, err := rand.Read(rndName)
	if err != nil {
		return nil, err
	}

	// Not using just :memory: to avoid 'no such table' issue.
	// See https://github.com/mattn/go-sqlite3#faq
	d, err := db.Open(ctx,
		fmt.Sprintf("file:strata-%x?mode=memory&cache=shared", rndName), timeNowFn)
	if err != nil {
		return nil, err
	}

	var stdin, stdout, stderr bytes.Buffer

	env := &mockEnv{env: map[string]string{}}
	opts := []Option{
		WithTimeNow(timeNowFn),
		WithEnv(env),
		WithDB(d),
		WithContext(ctx),
		WithFDs(&stdin, &stdout, &stderr),
		WithFS(memoryfs.New()),
		WithLogger(false, false),
	}
	app, err := New("strata", "/config.json", "/data", opts...)
	if err != nil {
		return nil, err
	}

	return &testApp{
		App: app, stdin: &stdin, stdout: &stdout, stderr: &stderr, env: env,
	}, nil
}

// Run executes the given command with fresh output buffers, logging only
// errors to keep stderr assertions simple.
func (ta *testApp) Run(args ...string) error {
	ta.stdout.Reset()
	ta.stderr.Reset()
	args = append([]string{"--log-level=ERROR"}, args...)
	return ta.App.Run(args)
}

// writeMigration writes a pair of up/down migration files to the app's
// filesystem.
func (ta *testApp) writeMigration(dir, version, name, up, down string) error {
	if err := ta.ctx.FS.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := map[string]string{
		fmt.Sprintf("%s/%s-%s.up.sql", dir, version, name):   up,
		fmt.Sprintf("%s/%s-%s.down.sql", dir, version, name): down,
	}
	for path, content := range files {
		if err := vfs.WriteFile(ta.ctx.FS, path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type mockEnv struct {
	mx  sync.RWMutex
	env map[string]string
}

var _ actx.Environment = (*mockEnv)(nil)

func (me *mockEnv) Get(key string) string {
	me.mx.RLock()
	defer me.mx.RUnlock()
	return me.env[key]
}

func (me *mockEnv) Set(key, val string) error {
	me.mx.Lock()
	defer me.mx.Unlock()
	me.env[key] = val
	return nil
}
