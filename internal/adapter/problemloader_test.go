package adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/gooze-repair/internal/adapter"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
	"github.com/stretchr/testify/require"
)

// fakeFS is an in-memory FSAdapter stand-in, used so problem-loader tests
// never touch the real disk.
type fakeFS struct {
	files map[string][]byte
}

func newFakeFS(files map[string]string) *fakeFS {
	raw := make(map[string][]byte, len(files))
	for k, v := range files {
		raw[k] = []byte(v)
	}

	return &fakeFS{files: raw}
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return content, nil
}

func (f *fakeFS) WriteFile(path string, content []byte, perm os.FileMode) error {
	f.files[path] = content

	return nil
}

func (f *fakeFS) CreateTempDir(pattern string) (string, error) { return "/tmp/fake", nil }
func (f *fakeFS) RemoveAll(path string) error                  { return nil }
func (f *fakeFS) Walk(root string, fn filepath.WalkFunc) error { return nil }

func TestLocalProblemLoader_ParsesProgramPropertiesAndContext(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": `target: func([]int) int
program: foldl(sub, zero, xs)
prop_isSum: candidate([]int{1, 2, 3}) == sum([]int{1, 2, 3})

-- context:
zero: int = 0
add: func(int, int) int = func(a, b int) int { return a + b }
`,
	})

	loader := adapter.NewLocalProblemLoader(fs)

	problem, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.NoError(t, err)

	require.Equal(t, "func([]int) int", problem.Type)
	require.Equal(t, "foldl(sub, zero, xs)", problem.Program.Render())
	require.Len(t, problem.Properties, 1)
	require.Equal(t, "prop_isSum", problem.Properties[0].Name)
	require.Equal(t, "candidate([]int{1, 2, 3}) == sum([]int{1, 2, 3})", problem.Properties[0].Source)

	require.Len(t, problem.Context, 2)
	require.Equal(t, "zero", problem.Context[0].Name)
	require.Equal(t, "int", problem.Context[0].Type)
	require.Equal(t, "add", problem.Context[1].Name)
	require.Equal(t, "func(int, int) int", problem.Context[1].Type)
}

// identityOracle overrides FakeOracle's ParseExpr to hand back program text
// verbatim, isolating this test from fakelang's gofmt-based rendering so it
// exercises only the loader's own "join program: lines with a space" logic.
type identityOracle struct {
	*oracle.FakeOracle
}

func (o identityOracle) ParseExpr(ctx context.Context, cfg oracle.Config, text string) (model.Expression, error) {
	return model.NewExpression(text), nil
}

func TestLocalProblemLoader_MultilineProgramIsJoined(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": `target: int
program: func() int {
program:   return 1 + 1
program: }()
prop_isTwo: candidate == 2
`,
	})

	loader := adapter.NewLocalProblemLoader(fs)

	problem, err := loader.Load(context.Background(), identityOracle{oracle.NewFakeOracle()}, oracle.Config{}, "p.problem")
	require.NoError(t, err)
	require.Equal(t, "func() int { return 1 + 1 }()", problem.Program.Render())
}

func TestLocalProblemLoader_MissingTargetLine(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": "program: 1\nprop_x: candidate == 1\n",
	})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.Error(t, err)
}

func TestLocalProblemLoader_MissingProgramLine(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": "target: int\nprop_x: candidate == 1\n",
	})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.Error(t, err)
}

func TestLocalProblemLoader_NoProperties(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": "target: int\nprogram: 1\n",
	})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.Error(t, err)
}

func TestLocalProblemLoader_MalformedContextLine(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": "target: int\nprogram: 1\nprop_x: candidate == 1\n\n-- context:\nnotabinding\n",
	})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.Error(t, err)
}

func TestLocalProblemLoader_UnrecognizedLine(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"p.problem": "target: int\nprogram: 1\nprop_x: candidate == 1\nbogus line\n",
	})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "p.problem")
	require.Error(t, err)
}

func TestLocalProblemLoader_ReadFileError(t *testing.T) {
	fs := newFakeFS(map[string]string{})

	loader := adapter.NewLocalProblemLoader(fs)

	_, err := loader.Load(context.Background(), oracle.NewFakeOracle(), oracle.Config{}, "missing.problem")
	require.Error(t, err)
}
