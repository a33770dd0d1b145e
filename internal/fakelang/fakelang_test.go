package fakelang_test

import (
	"testing"
	"time"

	"github.com/mouse-blink/gooze-repair/internal/fakelang"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string) fakelang.Value {
	t.Helper()

	expr, err := fakelang.ParseExpr(src)
	require.NoError(t, err)

	v, err := fakelang.Eval(expr, fakelang.NewEnv(nil))
	require.NoError(t, err)

	return v
}

func TestEval_Arithmetic(t *testing.T) {
	require.Equal(t, int64(3), eval(t, "1 + 2"))
	require.Equal(t, int64(6), eval(t, "2 * 3"))
	require.Equal(t, true, eval(t, "1 < 2"))
}

func TestEval_FuncLitAndCall(t *testing.T) {
	v := eval(t, "func(a, b int) int { return a + b }(2, 3)")
	require.Equal(t, int64(5), v)
}

func TestEval_FoldlSum(t *testing.T) {
	v := eval(t, "foldl(func(acc, x int) int { return acc + x }, 0, []int{1, 2, 3})")
	require.Equal(t, int64(6), v)
}

func TestEval_SelfReferentialClosure_Gcd(t *testing.T) {
	src := `func() int {
		var gcd func(int, int) int
		gcd = func(a, b int) int {
			if a == 0 {
				return b
			}
			return gcd(b%a, a)
		}
		return gcd(1071, 1029)
	}()`

	v := eval(t, src)
	require.Equal(t, int64(21), v)
}

func TestEval_InfiniteLoopHangs(t *testing.T) {
	done := make(chan struct{})

	go func() {
		_, _ = eval2(t, "func() int { x := 0; for { x = x + 1 }; return x }()")
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("expected the infinite loop to never return")
	case <-time.After(50 * time.Millisecond):
	}
}

func eval2(t *testing.T, src string) (fakelang.Value, error) {
	t.Helper()

	expr, err := fakelang.ParseExpr(src)
	if err != nil {
		return nil, err
	}

	return fakelang.Eval(expr, fakelang.NewEnv(nil))
}

func TestRender_RoundTrips(t *testing.T) {
	expr, err := fakelang.ParseExpr("foldl(add, 0, []int{1, 2, 3})")
	require.NoError(t, err)

	text, err := fakelang.Render(expr)
	require.NoError(t, err)
	require.Equal(t, "foldl(add, 0, []int{1, 2, 3})", text)
}
