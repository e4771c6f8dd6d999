package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"batchtrace/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

// recQ records statements
type recQ struct {
	stmts []string
}

func (r *recQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return nil, nil
}
func (r *recQ) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r *recQ) QueryRow(context.Context, string, ...any) Row       { return nil }

type recTx struct {
	recQ
	txs int
}

func (r *recTx) Tx(_ context.Context, fn func(Queryer) error) error {
	r.txs++
	return fn(&r.recQ)
}

func TestBeginHooksRunBeforeFn(t *testing.T) {
	inner := &recTx{}
	tx := WithBeginHooks(inner, LockTimeout(1500*time.Millisecond))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "UPDATE kv_store SET value = $1")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	want := []string{"SET LOCAL lock_timeout = '1500ms'", "UPDATE kv_store SET value = $1"}
	if diff := cmp.Diff(want, inner.stmts); diff != "" {
		t.Fatalf("statements (-want +got):\n%s", diff)
	}
}

func TestBeginHookErrorSkipsFn(t *testing.T) {
	boom := errors.New("boom")
	tx := WithBeginHooks(&recTx{}, func(context.Context, Queryer) error { return boom })
	ran := false
	err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

func TestWithBeginHooksNoHooksIsIdentity(t *testing.T) {
	inner := &recTx{}
	if WithBeginHooks(inner) != TxRunner(inner) {
		t.Fatalf("expected inner runner back")
	}
}

func TestMustBind(t *testing.T) {
	b := BindFunc[string](func(Queryer) string { return "repo" })
	testkit.MustPanic(t, func() { _ = MustBind[string](b, nil) })
	if got := MustBind[string](b, &recQ{}); got != "repo" {
		t.Fatalf("got %q", got)
	}
}

type pinger struct {
	err      error
	deadline bool
}

func (p *pinger) Ping(ctx context.Context) error {
	_, p.deadline = ctx.Deadline()
	return p.err
}

func TestMustPing(t *testing.T) {
	p := &pinger{}
	MustPing(context.Background(), "store", p)
	if !p.deadline {
		t.Fatalf("expected default deadline")
	}

	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.Contains(msg, "store ping failed: down") {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustPing(context.Background(), "store", &pinger{err: errors.New("down")})
}
