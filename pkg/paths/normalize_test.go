package paths_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/sift/pkg/paths"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`k:\driplo\src\lib\a.ts`, "K:/driplo/src/lib/a.ts"},
		{`K:/driplo/src/lib/a.ts`, "K:/driplo/src/lib/a.ts"},
		{`k:\driplo\[32msrc\lib\a.ts[39m`, "K:/driplo/src/lib/a.ts"},
		{"k:\\driplo\\\x1b[32msrc\\lib\\a.ts\x1b[39m", "K:/driplo/src/lib/a.ts"},
		{`src\\lib\\\\a.ts`, "src/lib/a.ts"},
		{"./src/./lib/../lib/a.ts", "src/lib/a.ts"},
		{"/abs/path.ts", "/abs/path.ts"},
		{"  spaced.ts  ", "spaced.ts"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paths.Normalize(tt.input), "input %q", tt.input)
	}
}

func TestNormalize_SameFileDifferentCaptures(t *testing.T) {
	t.Parallel()

	a := paths.Normalize(`k:\proj\[32msrc\routes\+page.svelte[39m`)
	b := paths.Normalize(`K:/proj/src/routes/+page.svelte`)
	assert.Equal(t, a, b)
}

func TestNormalizer_Root(t *testing.T) {
	t.Parallel()

	n := paths.NewNormalizer(`K:\driplo.bg-main\`)

	assert.Equal(t, "src/lib/a.ts", n.Normalize(`k:\driplo.bg-main\src\lib\a.ts`))
	assert.Equal(t, "K:/other/a.ts", n.Normalize(`k:\other\a.ts`))
	assert.Equal(t, "K:/driplo.bg-mainx/a.ts", n.Normalize(`k:\driplo.bg-mainx\a.ts`))
}

func TestExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "svelte", paths.Ext("src/App.svelte"))
	assert.Equal(t, "ts", paths.Ext("a/b.TS"))
	assert.Equal(t, "(none)", paths.Ext("Makefile"))
}

func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lib/a.ts", paths.Short("K:/p/src/lib/a.ts"))
	assert.Equal(t, "a.ts", paths.Short("a.ts"))
}
